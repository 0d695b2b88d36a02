// Package config resolves command line input, ignore files, and the
// application configuration file into the immutable settings a run uses.
package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/git2text/internal/matcher"
	"github.com/temirov/git2text/internal/types"
	"github.com/temirov/git2text/internal/utils"
)

const (
	negationPrefix = "!"
	commentPrefix  = "#"

	errorLoadIgnoreFileFormat = "loading %s from %s: %w"
	warningCloseFileFormat    = "Warning: failed to close %s: %v\n"
	warningIgnoreScanFormat   = "Warning: skipping %s during ignore scan: %v"
)

// FilterInput carries the raw filter settings supplied by the CLI layer.
type FilterInput struct {
	ExcludeFileGlobs   []string
	ExcludeDirGlobs    []string
	IncludeGlobs       []string
	SkipEmptyFiles     bool
	DisableIgnoreRules bool
}

// BuildFilterConfig resolves the run's FilterConfig. Ignore rules are loaded
// from the user-global ignore file and from every ignore file nested under the
// root, each rule scoped to its originating directory. When ignore processing
// is disabled no ignore files are read at all.
func BuildFilterConfig(rootPath string, input FilterInput, logger *zap.Logger) (types.FilterConfig, error) {
	filterConfig := types.FilterConfig{
		ExcludeFileGlobs:   trimPatterns(input.ExcludeFileGlobs),
		ExcludeDirGlobs:    trimPatterns(input.ExcludeDirGlobs),
		IncludeGlobs:       trimPatterns(input.IncludeGlobs),
		SkipEmptyFiles:     input.SkipEmptyFiles,
		DisableIgnoreRules: input.DisableIgnoreRules,
	}

	if input.DisableIgnoreRules {
		return filterConfig, nil
	}

	globalRules, globalLoadError := loadGlobalIgnoreRules()
	if globalLoadError != nil {
		return types.FilterConfig{}, globalLoadError
	}
	nestedRules, nestedLoadError := loadNestedIgnoreRules(rootPath, globalRules, filterConfig.ExcludeDirGlobs, logger)
	if nestedLoadError != nil {
		return types.FilterConfig{}, nestedLoadError
	}

	filterConfig.IgnoreRules = append(globalRules, nestedRules...)
	return filterConfig, nil
}

// loadNestedIgnoreRules walks rootPath and aggregates the patterns of every
// ignore file, recording the originating directory of each rule so matching is
// relative to that directory. The scan prunes the same way the traversal does:
// a directory excluded by the rules collected so far, or by an explicit
// directory glob, is skipped without descending, so ignore files inside
// excluded subtrees are never read. Parents are visited before their children,
// which guarantees the gating rules are already loaded when a subtree is
// reached. Unreadable directories and ignore files are logged and skipped.
func loadNestedIgnoreRules(rootPath string, seedRules []types.Rule, excludeDirGlobs []string, logger *zap.Logger) ([]types.Rule, error) {
	var aggregatedRules []types.Rule
	gateRules := append([]types.Rule{}, seedRules...)
	pathGate, gateError := newIgnoreGate(gateRules, excludeDirGlobs)
	if gateError != nil {
		return nil, gateError
	}

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			warnIgnoreScan(logger, currentDirectoryPath, walkError)
			return nil
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if directoryEntry.Name() == utils.GitDirectoryName {
			return filepath.SkipDir
		}

		relativeDirectory := utils.RelativePathOrSelf(currentDirectoryPath, rootPath)
		if relativeDirectory != "." && pathGate.Decide(relativeDirectory, true) == matcher.DecisionExclude {
			return filepath.SkipDir
		}

		ignoreFilePath := filepath.Join(currentDirectoryPath, utils.GitIgnoreFileName)
		patternLines, loadError := readIgnorePatternLines(ignoreFilePath)
		if loadError != nil {
			warnIgnoreScan(logger, ignoreFilePath, loadError)
			return nil
		}
		if len(patternLines) == 0 {
			return nil
		}

		var originSegments []string
		if relativeDirectory != "." {
			originSegments = utils.SplitPathSegments(relativeDirectory)
		}
		for _, patternLine := range patternLines {
			newRule := newIgnoreRule(patternLine, originSegments)
			aggregatedRules = append(aggregatedRules, newRule)
			gateRules = append(gateRules, newRule)
		}
		pathGate, gateError = newIgnoreGate(gateRules, excludeDirGlobs)
		return gateError
	}

	if walkError := filepath.WalkDir(rootPath, walkFunction); walkError != nil {
		return nil, walkError
	}
	return aggregatedRules, nil
}

// newIgnoreGate compiles the rules collected so far into the matcher that
// gates descent during the scan.
func newIgnoreGate(rules []types.Rule, excludeDirGlobs []string) (*matcher.Matcher, error) {
	return matcher.New(types.FilterConfig{
		IgnoreRules:     rules,
		ExcludeDirGlobs: excludeDirGlobs,
	})
}

func warnIgnoreScan(logger *zap.Logger, path string, problem error) {
	if logger != nil {
		logger.Warn(fmt.Sprintf(warningIgnoreScanFormat, path, problem))
	}
}

// loadGlobalIgnoreRules reads the user-global ignore file from the
// configuration directory. Its rules apply from the traversal root.
func loadGlobalIgnoreRules() ([]types.Rule, error) {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil || homeDirectory == "" {
		return nil, nil
	}
	globalIgnorePath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalIgnoreFileName)
	patternLines, loadError := readIgnorePatternLines(globalIgnorePath)
	if loadError != nil {
		return nil, fmt.Errorf(errorLoadIgnoreFileFormat, utils.GlobalIgnoreFileName, globalIgnorePath, loadError)
	}
	rules := make([]types.Rule, 0, len(patternLines))
	for _, patternLine := range patternLines {
		rules = append(rules, newIgnoreRule(patternLine, nil))
	}
	return rules, nil
}

// readIgnorePatternLines returns the non-empty, non-comment lines of an ignore
// file. A missing file yields no patterns and no error.
func readIgnorePatternLines(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseFileFormat, ignoreFilePath, closeError)
		}
	}()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patternLines = append(patternLines, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patternLines, nil
}

func newIgnoreRule(patternLine string, originSegments []string) types.Rule {
	return types.Rule{
		Pattern:        patternLine,
		Provenance:     types.ProvenanceIgnoreFile,
		Negated:        strings.HasPrefix(patternLine, negationPrefix),
		OriginSegments: originSegments,
	}
}

func trimPatterns(patterns []string) []string {
	var trimmed []string
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		trimmed = append(trimmed, trimmedPattern)
	}
	return utils.DeduplicatePatterns(trimmed)
}
