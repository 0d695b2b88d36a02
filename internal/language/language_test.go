package language

import "testing"

// TestTagForPath verifies extension lookup, case folding, and the fallback tag.
func TestTagForPath(testingHandle *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"main.go", "go"},
		{"script.py", "python"},
		{"notes/readme.md", "markdown"},
		{"UPPER.RS", "rust"},
		{"archive.tar.gz", "text"},
		{"Makefile", "text"},
		{"config.yml", "yaml"},
		{"", "text"},
	}
	for _, testCase := range testCases {
		if actual := TagForPath(testCase.path); actual != testCase.expected {
			testingHandle.Fatalf("TagForPath(%q) = %q, want %q", testCase.path, actual, testCase.expected)
		}
	}
}
