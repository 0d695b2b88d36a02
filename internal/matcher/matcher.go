// Package matcher decides, for every path under the traversal root, whether it
// is part of the rendered output.
package matcher

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/temirov/git2text/internal/types"
	"github.com/temirov/git2text/internal/utils"
)

// Decision is the per-path outcome of the matcher.
type Decision int

const (
	// DecisionInclude keeps the path in the output.
	DecisionInclude Decision = iota
	// DecisionExclude removes the path; for directories the whole subtree is pruned.
	DecisionExclude
)

const errorInvalidPatternFormat = "invalid %s pattern %q"

// Matcher evaluates relative paths against a layered rule set. Instances are
// immutable after construction and safe to share across a traversal.
type Matcher struct {
	includeGlobs     []string
	excludeFileGlobs []string
	excludeDirGlobs  []string
	ignoreMatcher    gitignore.Matcher
	includeOnly      bool
}

// New compiles the filter configuration into a Matcher. Every include and
// exclude glob is validated; an unparseable pattern is a fatal configuration
// error rather than a silently dropped rule.
func New(filterConfig types.FilterConfig) (*Matcher, error) {
	if validationError := validateGlobs(filterConfig.IncludeGlobs, types.ProvenanceInclude); validationError != nil {
		return nil, validationError
	}
	if validationError := validateGlobs(filterConfig.ExcludeFileGlobs, types.ProvenanceExcludeFile); validationError != nil {
		return nil, validationError
	}
	if validationError := validateGlobs(filterConfig.ExcludeDirGlobs, types.ProvenanceExcludeDir); validationError != nil {
		return nil, validationError
	}

	var ignoreMatcher gitignore.Matcher
	if !filterConfig.DisableIgnoreRules && len(filterConfig.IgnoreRules) > 0 {
		compiledPatterns := make([]gitignore.Pattern, 0, len(filterConfig.IgnoreRules))
		for _, ignoreRule := range filterConfig.IgnoreRules {
			compiledPatterns = append(compiledPatterns, gitignore.ParsePattern(ignoreRule.Pattern, ignoreRule.OriginSegments))
		}
		ignoreMatcher = gitignore.NewMatcher(compiledPatterns)
	}

	return &Matcher{
		includeGlobs:     filterConfig.IncludeGlobs,
		excludeFileGlobs: filterConfig.ExcludeFileGlobs,
		excludeDirGlobs:  filterConfig.ExcludeDirGlobs,
		ignoreMatcher:    ignoreMatcher,
		includeOnly:      filterConfig.IncludeOnly(),
	}, nil
}

// IncludeOnly reports whether include-only mode is active. In that mode the
// tree builder must descend into every directory because a deeper path may
// still match an include glob.
func (pathMatcher *Matcher) IncludeOnly() bool {
	return pathMatcher.includeOnly
}

// Decide evaluates a slash-separated path relative to the traversal root.
//
// Precedence, highest first: include globs (when include-only mode is active
// they override everything else), explicit exclude globs, then ignore-file
// rules with gitignore semantics where the last matching rule wins and
// negation re-includes. The default is include.
func (pathMatcher *Matcher) Decide(relativePath string, isDirectory bool) Decision {
	if pathMatcher.includeOnly {
		if isDirectory {
			// Directory retention in include-only mode is decided by the
			// builder based on whether the subtree contains a match.
			return DecisionInclude
		}
		if matchesAnyGlob(pathMatcher.includeGlobs, relativePath) {
			return DecisionInclude
		}
		return DecisionExclude
	}

	pathSegments := utils.SplitPathSegments(relativePath)
	if !isDirectory && utils.IsServiceFile(pathSegments[len(pathSegments)-1]) {
		return DecisionExclude
	}

	if isDirectory {
		if matchesNameOrPath(pathMatcher.excludeDirGlobs, relativePath) {
			return DecisionExclude
		}
	} else {
		if matchesNameOrPath(pathMatcher.excludeFileGlobs, relativePath) {
			return DecisionExclude
		}
	}

	if pathMatcher.ignoreMatcher != nil {
		if pathMatcher.ignoreMatcher.Match(pathSegments, isDirectory) {
			return DecisionExclude
		}
	}

	return DecisionInclude
}

// validateGlobs rejects configurations containing an unparseable glob.
func validateGlobs(globPatterns []string, provenance string) error {
	for _, globPattern := range globPatterns {
		if !doublestar.ValidatePattern(globPattern) {
			return fmt.Errorf(errorInvalidPatternFormat, provenance, globPattern)
		}
	}
	return nil
}

// matchesAnyGlob reports whether the relative path matches at least one glob.
// Patterns support recursive ** segments.
func matchesAnyGlob(globPatterns []string, relativePath string) bool {
	for _, globPattern := range globPatterns {
		if matched, matchError := doublestar.Match(globPattern, relativePath); matchError == nil && matched {
			return true
		}
	}
	return false
}

// matchesNameOrPath reports whether either the relative path or its final
// segment matches one of the globs. Matching the basename lets a bare pattern
// such as "*.log" exclude entries at any depth.
func matchesNameOrPath(globPatterns []string, relativePath string) bool {
	pathSegments := utils.SplitPathSegments(relativePath)
	baseName := pathSegments[len(pathSegments)-1]
	for _, globPattern := range globPatterns {
		if matched, matchError := doublestar.Match(globPattern, relativePath); matchError == nil && matched {
			return true
		}
		if matched, matchError := doublestar.Match(globPattern, baseName); matchError == nil && matched {
			return true
		}
	}
	return false
}
