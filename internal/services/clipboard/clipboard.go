// Package clipboard delivers the rendered artifact to the system clipboard,
// which is the default sink when no output file is requested.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier places the rendered artifact on the system clipboard. The CLI layer
// depends on this interface so tests can substitute a recording fake.
type Copier interface {
	Copy(artifactText string) error
}

// Service is the production Copier backed by github.com/atotto/clipboard.
type Service struct{}

// NewService constructs the clipboard sink.
func NewService() *Service {
	return &Service{}
}

// Copy replaces the clipboard contents with the artifact text.
func (service *Service) Copy(artifactText string) error {
	return clipboard.WriteAll(artifactText)
}

var _ Copier = (*Service)(nil)
