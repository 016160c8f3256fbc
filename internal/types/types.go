// Package types defines the cross-package data structures used by the aimd CLI.
package types

// OutputFileName is the fixed name of the aggregated document written
// into the target folder.
const OutputFileName = "ai.md"

// FileRecord identifies one file collected beneath the scan root.
type FileRecord struct {
	// AbsolutePath is the host-native absolute path used for reads.
	AbsolutePath string
	// RelativePath is forward-slash joined from the scan root,
	// independent of the host path separator.
	RelativePath string
	// Extension is the lowercased suffix after the final dot, without
	// the dot, or empty when the name contains none.
	Extension string
}

// DocumentSummary captures aggregate information about one generated document.
type DocumentSummary struct {
	OutputPath string
	TotalFiles int
	TotalSize  string
	Tokens     int
	Model      string
}
