package utils

import (
	"path/filepath"
	"reflect"
	"testing"
)

// TestIsBinary verifies the text/binary classification.
func TestIsBinary(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{"empty", nil, false},
		{"ascii text", []byte("package main"), false},
		{"utf8 text", []byte("héllo wörld"), false},
		{"invalid utf8", []byte{0xFF, 0xFE, 0x00}, true},
		{"nul byte", []byte("text\x00more"), true},
	}
	for _, testCase := range testCases {
		if actual := IsBinary(testCase.data); actual != testCase.expected {
			testingHandle.Fatalf("IsBinary(%s) = %v, want %v", testCase.name, actual, testCase.expected)
		}
	}
}

// TestIsServiceFile verifies that the ignore file is treated as filter
// machinery while regular entries are not.
func TestIsServiceFile(testingHandle *testing.T) {
	if !IsServiceFile(".gitignore") {
		testingHandle.Fatal("expected .gitignore to be a service file")
	}
	if IsServiceFile("main.go") {
		testingHandle.Fatal("expected main.go not to be a service file")
	}
}

// TestDeduplicatePatterns verifies order-preserving deduplication.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	input := []string{"*.log", "*.md", "*.log", "*.txt", "*.md"}
	expected := []string{"*.log", "*.md", "*.txt"}
	if actual := DeduplicatePatterns(input); !reflect.DeepEqual(actual, expected) {
		testingHandle.Fatalf("DeduplicatePatterns(%v) = %v, want %v", input, actual, expected)
	}
}

// TestRelativePathOrSelf verifies relative path derivation against a root.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	if actual := RelativePathOrSelf(rootDirectory, rootDirectory); actual != "." {
		testingHandle.Fatalf("expected %q for the root itself, got %q", ".", actual)
	}
	nestedPath := filepath.Join(rootDirectory, "sub", "file.txt")
	if actual := RelativePathOrSelf(nestedPath, rootDirectory); actual != "sub/file.txt" {
		testingHandle.Fatalf("expected %q, got %q", "sub/file.txt", actual)
	}
}

// TestSplitPathSegments verifies separator normalization.
func TestSplitPathSegments(testingHandle *testing.T) {
	testCases := []struct {
		path     string
		expected []string
	}{
		{"a/b/c.txt", []string{"a", "b", "c.txt"}},
		{`a\b\c.txt`, []string{"a", "b", "c.txt"}},
		{"single", []string{"single"}},
	}
	for _, testCase := range testCases {
		if actual := SplitPathSegments(testCase.path); !reflect.DeepEqual(actual, testCase.expected) {
			testingHandle.Fatalf("SplitPathSegments(%q) = %v, want %v", testCase.path, actual, testCase.expected)
		}
	}
}
