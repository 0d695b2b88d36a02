// Package utils contains general helper functions used across the git2text tool.
package utils

import (
	"path/filepath"
	"strings"
)

// Well-known file and directory names used across the project.
const (
	// GitIgnoreFileName is the name of the per-directory ignore file.
	GitIgnoreFileName = ".gitignore"
	// GlobalIgnoreFileName is the name of the user-global ignore file.
	GlobalIgnoreFileName = ".globalignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = ".git2text.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".git2text"
)

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal CLI errors.
const ApplicationExecutionFailedMessage = "application failed"

// serviceFiles are filter-machinery files hidden from the rendered output.
var serviceFiles = map[string]struct{}{
	GitIgnoreFileName: {},
}

// IsServiceFile reports whether the entry name belongs to the filter machinery
// rather than the project content.
func IsServiceFile(entryName string) bool {
	_, isServiceFile := serviceFiles[entryName]
	return isServiceFile
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the slash-separated relative path from root to
// fullPath. Returns the cleaned fullPath if relative calculation fails and "."
// if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath string, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// SplitPathSegments splits a slash-separated relative path into its segments.
func SplitPathSegments(relativePath string) []string {
	normalized := strings.ReplaceAll(relativePath, "\\", "/")
	return strings.Split(normalized, "/")
}
