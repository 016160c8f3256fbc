package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"aimd/internal/types"
	"aimd/internal/utils"
)

// Collector enumerates every file beneath a root directory in pre-order.
// Unlike the tree renderer, no secondary sort is applied: records appear
// in directory-listing order, interleaved across recursive calls. The
// flat list only needs to be complete, not human-ordered.
type Collector struct {
	IgnorePatterns []string
}

// NewCollector constructs a Collector honoring the provided ignore patterns.
func NewCollector(ignorePatterns []string) *Collector {
	return &Collector{IgnorePatterns: ignorePatterns}
}

// Collect returns one FileRecord per file beneath rootDirectoryPath.
// Relative paths are joined with forward slashes regardless of the host
// separator. A listing failure anywhere aborts the whole collection.
func (collector *Collector) Collect(rootDirectoryPath string) ([]types.FileRecord, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	return collector.collectFrom(filepath.Clean(absoluteRootPath), "")
}

// collectFrom lists currentDirectoryPath and appends a record per file,
// recursing into subdirectories with the forward-slash-extended relative path.
func (collector *Collector) collectFrom(currentDirectoryPath string, currentRelativePath string) ([]types.FileRecord, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var fileRecords []types.FileRecord
	for _, directoryEntry := range directoryEntries {
		entryRelativePath := directoryEntry.Name()
		if currentRelativePath != "" {
			entryRelativePath = currentRelativePath + "/" + directoryEntry.Name()
		}
		if utils.ShouldIgnoreByPath(entryRelativePath, collector.IgnorePatterns) {
			continue
		}

		entryAbsolutePath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		if directoryEntry.IsDir() {
			childRecords, collectError := collector.collectFrom(entryAbsolutePath, entryRelativePath)
			if collectError != nil {
				return nil, collectError
			}
			fileRecords = append(fileRecords, childRecords...)
			continue
		}

		fileRecords = append(fileRecords, types.FileRecord{
			AbsolutePath: entryAbsolutePath,
			RelativePath: entryRelativePath,
			Extension:    utils.FileExtension(directoryEntry.Name()),
		})
	}
	return fileRecords, nil
}
