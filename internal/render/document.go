package render

import (
	"fmt"
	"strings"
)

// documentPreamble is the fixed instructional sentence opening every
// aggregated document.
const documentPreamble = "This document contains the structure and selected file contents of a project folder, aggregated so the whole codebase can be reviewed in a single pass."

const rootHeadingFormat = "# %s\n\n"

// ComposeDocument assembles the aggregated document in its fixed order:
// preamble, level-1 heading naming the root folder, the rendered tree
// fragment, a blank-line separator, then the concatenated file blocks.
func ComposeDocument(rootFolderName string, treeFragment string, fileBlocks []string) string {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(documentPreamble + "\n\n")
	fmt.Fprintf(&documentBuilder, rootHeadingFormat, rootFolderName)
	documentBuilder.WriteString(treeFragment)
	documentBuilder.WriteString("\n")
	for _, fileBlock := range fileBlocks {
		documentBuilder.WriteString(fileBlock)
	}
	return documentBuilder.String()
}
