// Package commands contains the core pipeline composing the matcher, the tree
// builder, and the serializer.
package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/git2text/internal/matcher"
	"github.com/temirov/git2text/internal/output"
	"github.com/temirov/git2text/internal/tree"
	"github.com/temirov/git2text/internal/types"
)

// Result carries the rendered artifact together with traversal statistics.
type Result struct {
	Text         string
	WarningCount int
}

// Generate runs the engine once: it compiles the filter configuration, builds
// the filtered tree rooted at rootDirectoryPath, and renders it. Fatal errors
// from either stage propagate to the caller unchanged; recoverable per-file
// problems are absorbed by the builder and surface only in WarningCount.
func Generate(rootDirectoryPath string, filterConfig types.FilterConfig, logger *zap.Logger) (Result, error) {
	pathMatcher, matcherError := matcher.New(filterConfig)
	if matcherError != nil {
		return Result{}, matcherError
	}

	treeBuilder := tree.NewBuilder(pathMatcher, filterConfig.SkipEmptyFiles, logger)
	rootNode, buildError := treeBuilder.Build(rootDirectoryPath)
	if buildError != nil {
		return Result{}, buildError
	}

	return Result{
		Text:         output.Render(rootNode),
		WarningCount: treeBuilder.WarningCount(),
	}, nil
}
