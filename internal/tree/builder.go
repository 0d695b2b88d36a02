// Package tree walks a directory and produces the filtered node tree that the
// serializer renders.
package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/git2text/internal/language"
	"github.com/temirov/git2text/internal/matcher"
	"github.com/temirov/git2text/internal/types"
	"github.com/temirov/git2text/internal/utils"
)

const (
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorRootMissingFormat  = "path %s does not exist"
	errorRootStatFormat     = "stat failed for %s: %w"
	errorRootNotDirectory   = "path %s is not a directory"
	errorReadDirectory      = "reading directory %s: %w"

	warningSkipSubdirFormat  = "Warning: skipping subdirectory %s due to error: %v"
	warningReadFileFormat    = "Warning: failed to read file %s: %v"
	warningBinaryFileFormat  = "Warning: could not decode %s as text, skipping file"
	warningSkipEmptyFormat   = "Skipping empty file: %s"
	currentDirectoryRelative = "."
)

// Builder performs the depth-first traversal. It consults the path matcher for
// every entry and records per-file problems as warnings without aborting.
type Builder struct {
	pathMatcher    *matcher.Matcher
	skipEmptyFiles bool
	logger         *zap.Logger
	warningCount   int
}

// NewBuilder constructs a Builder over the given matcher.
func NewBuilder(pathMatcher *matcher.Matcher, skipEmptyFiles bool, logger *zap.Logger) *Builder {
	return &Builder{
		pathMatcher:    pathMatcher,
		skipEmptyFiles: skipEmptyFiles,
		logger:         logger,
	}
}

// WarningCount returns the number of recoverable problems encountered during
// the last Build call.
func (builder *Builder) WarningCount() int {
	return builder.warningCount
}

// Build validates the root and returns the filtered tree. A root that does not
// exist or is not a directory is a fatal configuration error raised before any
// traversal happens. Per-file read failures never abort the walk.
func (builder *Builder) Build(rootDirectoryPath string) (*types.Node, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInformation, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return nil, fmt.Errorf(errorRootMissingFormat, rootDirectoryPath)
		}
		return nil, fmt.Errorf(errorRootStatFormat, rootDirectoryPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectory, rootDirectoryPath)
	}

	builder.warningCount = 0
	rootNode := &types.Node{
		Path: currentDirectoryRelative,
		Name: filepath.Base(absoluteRootPath),
		Type: types.NodeTypeDirectory,
	}
	children, buildError := builder.buildChildren(absoluteRootPath, "")
	if buildError != nil {
		return nil, buildError
	}
	rootNode.Children = children
	return rootNode, nil
}

// buildChildren lists the immediate entries of a directory in deterministic
// name order and attaches the surviving nodes. os.ReadDir already returns
// entries sorted by name, which makes repeated runs byte-identical.
func (builder *Builder) buildChildren(currentDirectoryPath string, relativePrefix string) ([]*types.Node, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectory, currentDirectoryPath, readDirectoryError)
	}

	var nodes []*types.Node
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() && entryName == utils.GitDirectoryName {
			continue
		}
		relativeEntryPath := entryName
		if relativePrefix != "" {
			relativeEntryPath = relativePrefix + "/" + entryName
		}
		childPath := filepath.Join(currentDirectoryPath, entryName)

		if directoryEntry.IsDir() {
			if directoryNode := builder.buildDirectoryNode(childPath, relativeEntryPath, entryName); directoryNode != nil {
				nodes = append(nodes, directoryNode)
			}
			continue
		}
		if fileNode := builder.buildFileNode(childPath, relativeEntryPath, entryName); fileNode != nil {
			nodes = append(nodes, fileNode)
		}
	}
	return nodes, nil
}

// buildDirectoryNode applies the directory policy: in ignore mode an excluded
// directory is pruned without descending, and an included directory is kept
// even when all of its contents are filtered away; in include-only mode every
// directory is descended into and kept only when its subtree contains a match.
func (builder *Builder) buildDirectoryNode(directoryPath string, relativePath string, entryName string) *types.Node {
	if !builder.pathMatcher.IncludeOnly() {
		if builder.pathMatcher.Decide(relativePath, true) == matcher.DecisionExclude {
			return nil
		}
	}

	childNodes, buildError := builder.buildChildren(directoryPath, relativePath)
	if buildError != nil {
		builder.warn(fmt.Sprintf(warningSkipSubdirFormat, directoryPath, buildError))
		childNodes = nil
	}
	if builder.pathMatcher.IncludeOnly() && len(childNodes) == 0 {
		return nil
	}

	return &types.Node{
		Path:     relativePath,
		Name:     entryName,
		Type:     types.NodeTypeDirectory,
		Children: childNodes,
	}
}

// buildFileNode reads an included file and wraps it in a node. Unreadable and
// binary files are logged and skipped; zero-byte files are skipped when the
// configuration asks for it.
func (builder *Builder) buildFileNode(filePath string, relativePath string, entryName string) *types.Node {
	if builder.pathMatcher.Decide(relativePath, false) == matcher.DecisionExclude {
		return nil
	}

	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		builder.warn(fmt.Sprintf(warningReadFileFormat, filePath, fileReadError))
		return nil
	}
	if utils.IsBinary(fileBytes) {
		builder.warn(fmt.Sprintf(warningBinaryFileFormat, filePath))
		return nil
	}
	if builder.skipEmptyFiles && len(fileBytes) == 0 {
		if builder.logger != nil {
			builder.logger.Info(fmt.Sprintf(warningSkipEmptyFormat, filePath))
		}
		return nil
	}

	return &types.Node{
		Path:     relativePath,
		Name:     entryName,
		Type:     types.NodeTypeFile,
		Language: language.TagForPath(relativePath),
		Content:  string(fileBytes),
	}
}

func (builder *Builder) warn(message string) {
	builder.warningCount++
	if builder.logger != nil {
		builder.logger.Warn(message)
	}
}
