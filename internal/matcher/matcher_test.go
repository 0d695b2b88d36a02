package matcher

import (
	"strings"
	"testing"

	"github.com/temirov/git2text/internal/types"
)

// ignoreRules builds ignore-file rules rooted at the traversal root from raw pattern lines.
func ignoreRules(patternLines ...string) []types.Rule {
	rules := make([]types.Rule, 0, len(patternLines))
	for _, patternLine := range patternLines {
		rules = append(rules, types.Rule{
			Pattern:    patternLine,
			Provenance: types.ProvenanceIgnoreFile,
			Negated:    strings.HasPrefix(patternLine, "!"),
		})
	}
	return rules
}

// TestDecideIgnoreRules verifies gitignore-style evaluation: basename matching
// at any depth, directory-only patterns, anchored patterns, and last-match-wins
// negation.
func TestDecideIgnoreRules(testingHandle *testing.T) {
	testCases := []struct {
		name         string
		rules        []types.Rule
		relativePath string
		isDirectory  bool
		expected     Decision
	}{
		{"basename pattern matches at depth", ignoreRules("*.log"), "b/ignored.log", false, DecisionExclude},
		{"basename pattern leaves others alone", ignoreRules("*.log"), "a.py", false, DecisionInclude},
		{"directory pattern matches the directory", ignoreRules("build/"), "build", true, DecisionExclude},
		{"directory pattern matches descendants", ignoreRules("build/"), "build/main.o", false, DecisionExclude},
		{"directory pattern skips same-named file", ignoreRules("build/"), "build", false, DecisionInclude},
		{"anchored pattern matches only at root", ignoreRules("docs/readme.md"), "docs/readme.md", false, DecisionExclude},
		{"anchored pattern skips nested copy", ignoreRules("docs/readme.md"), "sub/docs/readme.md", false, DecisionInclude},
		{"negation re-includes a later match", ignoreRules("*.log", "!keep.log"), "nested/keep.log", false, DecisionInclude},
		{"negation only affects matching paths", ignoreRules("*.log", "!keep.log"), "nested/other.log", false, DecisionExclude},
		{"later rule overrides earlier verdict", ignoreRules("!keep.log", "*.log"), "keep.log", false, DecisionExclude},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			pathMatcher, matcherError := New(types.FilterConfig{IgnoreRules: testCase.rules})
			if matcherError != nil {
				subTest.Fatalf("New failed: %v", matcherError)
			}
			decision := pathMatcher.Decide(testCase.relativePath, testCase.isDirectory)
			if decision != testCase.expected {
				subTest.Fatalf("Decide(%q, %v) = %v, want %v", testCase.relativePath, testCase.isDirectory, decision, testCase.expected)
			}
		})
	}
}

// TestDecideIgnoreRuleOrigin verifies that rules from a nested ignore file are
// evaluated relative to their originating directory.
func TestDecideIgnoreRuleOrigin(testingHandle *testing.T) {
	nestedRule := types.Rule{
		Pattern:        "*.tmp",
		Provenance:     types.ProvenanceIgnoreFile,
		OriginSegments: []string{"sub"},
	}
	pathMatcher, matcherError := New(types.FilterConfig{IgnoreRules: []types.Rule{nestedRule}})
	if matcherError != nil {
		testingHandle.Fatalf("New failed: %v", matcherError)
	}

	if decision := pathMatcher.Decide("sub/cache.tmp", false); decision != DecisionExclude {
		testingHandle.Fatalf("expected sub/cache.tmp to be excluded, got %v", decision)
	}
	if decision := pathMatcher.Decide("cache.tmp", false); decision != DecisionInclude {
		testingHandle.Fatalf("expected cache.tmp outside the origin directory to be included, got %v", decision)
	}
}

// TestDecideExplicitExcludes verifies that exclude globs match either the
// relative path or the basename and take effect independent of ignore rules.
func TestDecideExplicitExcludes(testingHandle *testing.T) {
	pathMatcher, matcherError := New(types.FilterConfig{
		ExcludeFileGlobs: []string{"*.md", "src/generated.go"},
		ExcludeDirGlobs:  []string{"vendor"},
	})
	if matcherError != nil {
		testingHandle.Fatalf("New failed: %v", matcherError)
	}

	testCases := []struct {
		relativePath string
		isDirectory  bool
		expected     Decision
	}{
		{"notes/readme.md", false, DecisionExclude},
		{"src/generated.go", false, DecisionExclude},
		{"src/handwritten.go", false, DecisionInclude},
		{"vendor", true, DecisionExclude},
		{"deep/vendor", true, DecisionExclude},
		{"vendor", false, DecisionInclude},
	}
	for _, testCase := range testCases {
		decision := pathMatcher.Decide(testCase.relativePath, testCase.isDirectory)
		if decision != testCase.expected {
			testingHandle.Fatalf("Decide(%q, %v) = %v, want %v", testCase.relativePath, testCase.isDirectory, decision, testCase.expected)
		}
	}
}

// TestDecideIncludeOnlyMode verifies that a non-empty include list overrides
// every other rule category and supports recursive glob segments.
func TestDecideIncludeOnlyMode(testingHandle *testing.T) {
	pathMatcher, matcherError := New(types.FilterConfig{
		IncludeGlobs:     []string{"**/*.md"},
		ExcludeFileGlobs: []string{"*.md"},
		IgnoreRules:      ignoreRules("*.md"),
	})
	if matcherError != nil {
		testingHandle.Fatalf("New failed: %v", matcherError)
	}
	if !pathMatcher.IncludeOnly() {
		testingHandle.Fatal("expected include-only mode to be active")
	}

	if decision := pathMatcher.Decide("docs/readme.md", false); decision != DecisionInclude {
		testingHandle.Fatalf("expected docs/readme.md to be included, got %v", decision)
	}
	if decision := pathMatcher.Decide("readme.md", false); decision != DecisionInclude {
		testingHandle.Fatalf("expected top-level readme.md to be included, got %v", decision)
	}
	if decision := pathMatcher.Decide("x.py", false); decision != DecisionExclude {
		testingHandle.Fatalf("expected x.py to be excluded, got %v", decision)
	}
}

// TestDecideIgnoreRulesDisabled verifies that disabling ignore processing
// skips ignore rules entirely while explicit excludes still apply.
func TestDecideIgnoreRulesDisabled(testingHandle *testing.T) {
	pathMatcher, matcherError := New(types.FilterConfig{
		IgnoreRules:        ignoreRules("*.log"),
		ExcludeFileGlobs:   []string{"*.bak"},
		DisableIgnoreRules: true,
	})
	if matcherError != nil {
		testingHandle.Fatalf("New failed: %v", matcherError)
	}

	if decision := pathMatcher.Decide("service.log", false); decision != DecisionInclude {
		testingHandle.Fatalf("expected ignore rules to be skipped, got %v", decision)
	}
	if decision := pathMatcher.Decide("old.bak", false); decision != DecisionExclude {
		testingHandle.Fatalf("expected explicit exclude to still apply, got %v", decision)
	}
}

// TestDecideServiceFilesHidden verifies that the ignore file itself never
// appears in the output.
func TestDecideServiceFilesHidden(testingHandle *testing.T) {
	pathMatcher, matcherError := New(types.FilterConfig{})
	if matcherError != nil {
		testingHandle.Fatalf("New failed: %v", matcherError)
	}
	if decision := pathMatcher.Decide(".gitignore", false); decision != DecisionExclude {
		testingHandle.Fatalf("expected .gitignore to be excluded, got %v", decision)
	}
	if decision := pathMatcher.Decide("sub/.gitignore", false); decision != DecisionExclude {
		testingHandle.Fatalf("expected nested .gitignore to be excluded, got %v", decision)
	}
}

// TestNewRejectsMalformedGlob verifies that an unparseable glob pattern is a
// fatal configuration error.
func TestNewRejectsMalformedGlob(testingHandle *testing.T) {
	malformedPattern := "[unclosed"
	testCases := []types.FilterConfig{
		{IncludeGlobs: []string{malformedPattern}},
		{ExcludeFileGlobs: []string{malformedPattern}},
		{ExcludeDirGlobs: []string{malformedPattern}},
	}
	for _, filterConfig := range testCases {
		if _, matcherError := New(filterConfig); matcherError == nil {
			testingHandle.Fatalf("expected error for malformed pattern in %+v", filterConfig)
		}
	}
}

// TestDecideDefaultIncludes verifies the default verdict when no rule matches.
func TestDecideDefaultIncludes(testingHandle *testing.T) {
	pathMatcher, matcherError := New(types.FilterConfig{})
	if matcherError != nil {
		testingHandle.Fatalf("New failed: %v", matcherError)
	}
	if decision := pathMatcher.Decide("any/path.go", false); decision != DecisionInclude {
		testingHandle.Fatalf("expected default include, got %v", decision)
	}
}
