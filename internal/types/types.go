// Package types defines every cross-package data structure used by the git2text CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// Rule provenance values, ordered by evaluation precedence.
const (
	ProvenanceInclude     = "include"
	ProvenanceExcludeFile = "exclude-file"
	ProvenanceExcludeDir  = "exclude-dir"
	ProvenanceIgnoreFile  = "ignore-file"
)

// Rule is a single immutable filter pattern together with its origin.
// For ignore-file rules OriginSegments holds the slash-separated path of the
// directory containing the ignore file, relative to the traversal root, so the
// pattern is matched against paths relative to that directory. Slice order is
// evaluation order; for ignore-file rules a later rule overrides an earlier
// one's verdict on the same path.
type Rule struct {
	Pattern        string
	Provenance     string
	Negated        bool
	OriginSegments []string
}

// FilterConfig is the resolved, read-only bundle of filter rules and flags for
// one run. It is constructed once by the configuration layer and never mutated
// during traversal, which makes it safe to share across components.
type FilterConfig struct {
	IgnoreRules        []Rule
	ExcludeFileGlobs   []string
	ExcludeDirGlobs    []string
	IncludeGlobs       []string
	SkipEmptyFiles     bool
	DisableIgnoreRules bool
}

// IncludeOnly reports whether the configuration activates include-only mode.
func (filterConfig FilterConfig) IncludeOnly() bool {
	return len(filterConfig.IncludeGlobs) > 0
}

// Node is one entry of the filtered directory tree. A directory node owns an
// ordered list of children with unique names; a file node carries its content
// and the language tag used for the fenced output block. Path is always
// relative to the traversal root and slash-separated. Nodes are immutable once
// the tree is fully built.
type Node struct {
	Path     string
	Name     string
	Type     string
	Language string
	Content  string
	Children []*Node
}

// IsDir reports whether the node represents a directory.
func (node *Node) IsDir() bool {
	return node.Type == NodeTypeDirectory
}
