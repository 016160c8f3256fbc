// Package scan implements the recursive directory traversals: markdown
// tree rendering and flat file collection.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"aimd/internal/utils"
)

const (
	branchGlyph        = "├── "
	lastBranchGlyph    = "└── "
	continuationIndent = "│   "
	finalIndent        = "    "

	// directoryLineFormat renders a directory entry linked to its own
	// root-relative path.
	directoryLineFormat = "📁 [%s](%s)"
	// fileLineFormat renders a file entry with its bare name.
	fileLineFormat = "📄 %s"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// TreeRenderer renders a directory subtree as an indented markdown fragment.
// Entries at every level are ordered directories first, then files, each
// group in case-aware collated name order.
type TreeRenderer struct {
	IgnorePatterns []string

	collator *collate.Collator
}

// NewTreeRenderer constructs a TreeRenderer honoring the provided ignore patterns.
func NewTreeRenderer(ignorePatterns []string) *TreeRenderer {
	return &TreeRenderer{
		IgnorePatterns: ignorePatterns,
		collator:       collate.New(language.Und),
	}
}

// Render walks rootDirectoryPath recursively and returns the rendered tree
// fragment. No intermediate tree structure is retained; the fragment is
// produced and consumed as text during the same recursive pass. A listing
// failure at any level propagates to the caller.
func (renderer *TreeRenderer) Render(rootDirectoryPath string) (string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	var fragmentBuilder strings.Builder
	if renderError := renderer.renderLevel(absoluteRootPath, absoluteRootPath, "", &fragmentBuilder); renderError != nil {
		return "", renderError
	}
	return fragmentBuilder.String(), nil
}

// renderLevel emits one line per visible entry of currentDirectoryPath and
// recurses into subdirectories, extending indentPrefix with a continuation
// bar under non-final ancestors and blank indentation under final ones.
func (renderer *TreeRenderer) renderLevel(currentDirectoryPath string, rootDirectoryPath string, indentPrefix string, fragmentBuilder *strings.Builder) error {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var visibleEntries []os.DirEntry
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		relativeChildPath := utils.RelativePathOrSelf(childPath, rootDirectoryPath)
		if utils.ShouldIgnoreByPath(relativeChildPath, renderer.IgnorePatterns) {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}

	// Sorting is local to this level; every recursion sorts its own children.
	sort.SliceStable(visibleEntries, func(firstIndex, secondIndex int) bool {
		firstEntry := visibleEntries[firstIndex]
		secondEntry := visibleEntries[secondIndex]
		if firstEntry.IsDir() != secondEntry.IsDir() {
			return firstEntry.IsDir()
		}
		return renderer.collator.CompareString(firstEntry.Name(), secondEntry.Name()) < 0
	})

	entryCount := len(visibleEntries)
	for entryIndex, directoryEntry := range visibleEntries {
		isLastEntry := entryIndex == entryCount-1
		glyph := branchGlyph
		childIndentPrefix := indentPrefix + continuationIndent
		if isLastEntry {
			glyph = lastBranchGlyph
			childIndentPrefix = indentPrefix + finalIndent
		}

		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		if directoryEntry.IsDir() {
			relativeChildPath := utils.RelativePathOrSelf(childPath, rootDirectoryPath)
			fmt.Fprintf(fragmentBuilder, "%s%s"+directoryLineFormat+"\n", indentPrefix, glyph, directoryEntry.Name(), relativeChildPath)
			if renderError := renderer.renderLevel(childPath, rootDirectoryPath, childIndentPrefix, fragmentBuilder); renderError != nil {
				return renderError
			}
		} else {
			fmt.Fprintf(fragmentBuilder, "%s%s"+fileLineFormat+"\n", indentPrefix, glyph, directoryEntry.Name())
		}
	}
	return nil
}
