// Package output renders the filtered tree into the final text artifact and
// delivers it to the configured sink.
package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/temirov/git2text/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"

	fileHeaderFormat = "# File: %s\n"
	fileFooterFormat = "# End of file: %s\n\n"

	fenceRune        = '`'
	minimumFenceSize = 3
)

// Render serializes the tree into the output text: the branch-drawing diagram
// of every node followed, after a blank line, by one fenced content block per
// file in the same depth-first order.
func Render(rootNode *types.Node) string {
	var artifactBuffer bytes.Buffer

	var diagramBuffer bytes.Buffer
	writeTreeDiagram(&diagramBuffer, rootNode.Children, "")
	artifactBuffer.WriteString(strings.TrimRight(diagramBuffer.String(), "\r\n"))
	artifactBuffer.WriteString("\n\n")

	writeContentBlocks(&artifactBuffer, rootNode.Children)
	return artifactBuffer.String()
}

// writeTreeDiagram emits one line per node. The root itself is not printed;
// its children start at depth zero, each directory line carries a trailing
// separator, and padding grows by one connector width per level.
func writeTreeDiagram(buffer *bytes.Buffer, nodes []*types.Node, padding string) {
	lastIndex := len(nodes) - 1
	for nodeIndex, node := range nodes {
		connector := treeBranchConnector
		childPadding := padding + treeBranchPadding
		if nodeIndex == lastIndex {
			connector = treeLastConnector
			childPadding = padding + treeLastPadding
		}
		if node.IsDir() {
			buffer.WriteString(padding + connector + node.Name + directorySuffix + "\n")
			writeTreeDiagram(buffer, node.Children, childPadding)
		} else {
			buffer.WriteString(padding + connector + node.Name + "\n")
		}
	}
}

// writeContentBlocks emits the fenced block of every file node in depth-first
// order, matching the diagram ordering exactly.
func writeContentBlocks(buffer *bytes.Buffer, nodes []*types.Node) {
	for _, node := range nodes {
		if node.IsDir() {
			writeContentBlocks(buffer, node.Children)
			continue
		}
		writeFileBlock(buffer, node)
	}
}

// writeFileBlock wraps one file's content between a header and footer naming
// its path. The fence length adapts to the content so an embedded fence
// sequence can never terminate the block early.
func writeFileBlock(buffer *bytes.Buffer, fileNode *types.Node) {
	fence := fenceFor(fileNode.Content)
	fmt.Fprintf(buffer, fileHeaderFormat, fileNode.Path)
	buffer.WriteString(fence + fileNode.Language + "\n")
	buffer.WriteString(fileNode.Content)
	buffer.WriteString("\n" + fence + "\n")
	fmt.Fprintf(buffer, fileFooterFormat, fileNode.Path)
}

// fenceFor returns a backtick fence at least three characters long and always
// longer than the longest backtick run inside the content.
func fenceFor(content string) string {
	longestRun := 0
	currentRun := 0
	for _, contentRune := range content {
		if contentRune == fenceRune {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
		} else {
			currentRun = 0
		}
	}
	fenceSize := minimumFenceSize
	if longestRun >= fenceSize {
		fenceSize = longestRun + 1
	}
	return strings.Repeat(string(fenceRune), fenceSize)
}
