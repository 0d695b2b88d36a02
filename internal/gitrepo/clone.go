// Package gitrepo acquires remote repositories so they can be processed like
// local directories.
package gitrepo

import (
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
)

const (
	temporaryDirectoryPattern = "git2text-*"

	errorCreateTempDirFormat = "creating temporary clone directory: %w"
	errorCloneFormat         = "cloning repository %s: %w"
)

// remoteURLPrefixes lists the schemes recognized as git repository URLs.
var remoteURLPrefixes = []string{"http://", "https://", "git@", "ssh://", "git://"}

// IsRemoteURL reports whether the provided path names a remote git repository
// rather than a local directory.
func IsRemoteURL(path string) bool {
	for _, urlPrefix := range remoteURLPrefixes {
		if strings.HasPrefix(path, urlPrefix) {
			return true
		}
	}
	return false
}

// CloneTemporary performs a shallow clone of repositoryURL into a fresh
// temporary directory and returns its path together with a cleanup function.
// The cleanup function is safe to call exactly once, including after a clone
// failure has already been returned.
func CloneTemporary(repositoryURL string) (string, func(), error) {
	temporaryDirectory, tempDirError := os.MkdirTemp("", temporaryDirectoryPattern)
	if tempDirError != nil {
		return "", nil, fmt.Errorf(errorCreateTempDirFormat, tempDirError)
	}
	cleanup := func() {
		os.RemoveAll(temporaryDirectory)
	}

	_, cloneError := git.PlainClone(temporaryDirectory, false, &git.CloneOptions{
		URL:   repositoryURL,
		Depth: 1,
	})
	if cloneError != nil {
		cleanup()
		return "", nil, fmt.Errorf(errorCloneFormat, repositoryURL, cloneError)
	}
	return temporaryDirectory, cleanup, nil
}
