package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"aimd/internal/render"
	"aimd/internal/types"
)

const (
	typescriptRelativePath = "src/app.ts"
	typescriptContent      = "const answer = 42\n"
	binaryRelativePath     = "assets/blob.bin"
	unreadableRelative     = "broken/entry.ts"
)

// TestDisplayTagForExtension verifies the fixed extension lookup table
// and its generic fallback.
func TestDisplayTagForExtension(testingHandle *testing.T) {
	testCases := []struct {
		extension string
		expected  string
	}{
		{"ts", "typescript"},
		{"js", "javascript"},
		{"html", "html"},
		{"json", "json"},
		{"css", "css"},
		{"py", "python"},
		{"go", "text"},
		{"", "text"},
	}
	for _, testCase := range testCases {
		resolvedTag := render.DisplayTagForExtension(testCase.extension)
		if resolvedTag != testCase.expected {
			testingHandle.Fatalf("extension %q: expected %q, got %q", testCase.extension, testCase.expected, resolvedTag)
		}
	}
}

// TestFormatTextFile verifies the heading, fence tag, and verbatim content
// of a successful block.
func TestFormatTextFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	absolutePath := filepath.Join(rootDirectory, "app.ts")
	if writeError := os.WriteFile(absolutePath, []byte(typescriptContent), 0o644); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}

	formatter := render.NewBlockFormatter(zap.NewNop())
	block := formatter.Format(types.FileRecord{
		AbsolutePath: absolutePath,
		RelativePath: typescriptRelativePath,
		Extension:    "ts",
	})

	expectedBlock := "### " + typescriptRelativePath + "\n\n```typescript\n" + typescriptContent + "```\n\n"
	if block != expectedBlock {
		testingHandle.Fatalf("unexpected block:\n%q\nwant:\n%q", block, expectedBlock)
	}
}

// TestFormatUnreadableFile verifies that a read failure yields a
// placeholder block naming the relative path instead of an error.
func TestFormatUnreadableFile(testingHandle *testing.T) {
	// Reading a directory fails regardless of process privileges.
	unreadablePath := testingHandle.TempDir()

	formatter := render.NewBlockFormatter(zap.NewNop())
	block := formatter.Format(types.FileRecord{
		AbsolutePath: unreadablePath,
		RelativePath: unreadableRelative,
		Extension:    "ts",
	})

	if !strings.HasPrefix(block, "### "+unreadableRelative+" (unreadable)\n") {
		testingHandle.Fatalf("missing unreadable heading: %q", block)
	}
	if !strings.Contains(block, "could not be read") {
		testingHandle.Fatalf("missing placeholder body: %q", block)
	}
	if strings.Contains(block, "```") {
		testingHandle.Fatalf("unexpected fence in placeholder block: %q", block)
	}
}

// TestFormatBinaryFile verifies that binary content is replaced with a
// placeholder instead of raw bytes.
func TestFormatBinaryFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	absolutePath := filepath.Join(rootDirectory, "blob.bin")
	if writeError := os.WriteFile(absolutePath, []byte{0x00, 0xff, 0x01}, 0o644); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}

	formatter := render.NewBlockFormatter(zap.NewNop())
	block := formatter.Format(types.FileRecord{
		AbsolutePath: absolutePath,
		RelativePath: binaryRelativePath,
		Extension:    "bin",
	})

	if !strings.HasPrefix(block, "### "+binaryRelativePath+" (binary)\n") {
		testingHandle.Fatalf("missing binary heading: %q", block)
	}
	if strings.Contains(block, "\x00") {
		testingHandle.Fatalf("raw binary bytes leaked into block")
	}
}
