package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"aimd/internal/scan"
	"aimd/internal/types"
)

const (
	subDirectoryName    = "sub"
	typescriptFileName  = "x.ts"
	upperCaseFileName   = "Data.JSON"
	extensionlessName   = "Makefile"
	collectorIgnoreName = "vendor"
)

// TestCollectNestedRelativePath verifies forward-slash relative joining
// and lowercase extension extraction for a nested file.
func TestCollectNestedRelativePath(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	subDirectoryPath := filepath.Join(rootDirectory, subDirectoryName)
	if makeDirError := os.MkdirAll(subDirectoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}
	nestedFilePath := filepath.Join(subDirectoryPath, typescriptFileName)
	if writeError := os.WriteFile(nestedFilePath, []byte("export {}"), 0o644); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}

	collector := scan.NewCollector(nil)
	fileRecords, collectError := collector.Collect(rootDirectory)
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	if len(fileRecords) != 1 {
		testingHandle.Fatalf("expected 1 record, got %d", len(fileRecords))
	}

	record := fileRecords[0]
	if record.RelativePath != subDirectoryName+"/"+typescriptFileName {
		testingHandle.Fatalf("unexpected relative path %q", record.RelativePath)
	}
	if record.Extension != "ts" {
		testingHandle.Fatalf("unexpected extension %q", record.Extension)
	}
	if record.AbsolutePath != nestedFilePath {
		testingHandle.Fatalf("unexpected absolute path %q", record.AbsolutePath)
	}
}

// TestCollectExtensionHandling verifies lowercasing and the empty
// extension for names without a dot.
func TestCollectExtensionHandling(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	for _, fileName := range []string{upperCaseFileName, extensionlessName} {
		if writeError := os.WriteFile(filepath.Join(rootDirectory, fileName), []byte("x"), 0o644); writeError != nil {
			testingHandle.Fatalf("write %s: %v", fileName, writeError)
		}
	}

	collector := scan.NewCollector(nil)
	fileRecords, collectError := collector.Collect(rootDirectory)
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}

	extensionsByName := make(map[string]string)
	for _, record := range fileRecords {
		extensionsByName[record.RelativePath] = record.Extension
	}
	if extensionsByName[upperCaseFileName] != "json" {
		testingHandle.Fatalf("expected lowercased json extension, got %q", extensionsByName[upperCaseFileName])
	}
	if extensionsByName[extensionlessName] != "" {
		testingHandle.Fatalf("expected empty extension, got %q", extensionsByName[extensionlessName])
	}
}

// TestCollectHonorsIgnorePatterns verifies that ignored directories are
// pruned from collection.
func TestCollectHonorsIgnorePatterns(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignoredDirectoryPath := filepath.Join(rootDirectory, collectorIgnoreName)
	if makeDirError := os.MkdirAll(ignoredDirectoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}
	if writeError := os.WriteFile(filepath.Join(ignoredDirectoryPath, typescriptFileName), []byte("x"), 0o644); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, typescriptFileName), []byte("x"), 0o644); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}

	collector := scan.NewCollector([]string{collectorIgnoreName + "/"})
	fileRecords, collectError := collector.Collect(rootDirectory)
	if collectError != nil {
		testingHandle.Fatalf("Collect error: %v", collectError)
	}
	if len(fileRecords) != 1 {
		testingHandle.Fatalf("expected 1 record, got %d", len(fileRecords))
	}
	if fileRecords[0].RelativePath != typescriptFileName {
		testingHandle.Fatalf("unexpected record %+v", fileRecords[0])
	}
}

// TestCollectMissingRootFails verifies that collection is all-or-nothing
// when the root cannot be listed.
func TestCollectMissingRootFails(testingHandle *testing.T) {
	collector := scan.NewCollector(nil)
	missingPath := filepath.Join(testingHandle.TempDir(), "missing")
	var fileRecords []types.FileRecord
	fileRecords, collectError := collector.Collect(missingPath)
	if collectError == nil {
		testingHandle.Fatalf("expected error, got %d records", len(fileRecords))
	}
}
