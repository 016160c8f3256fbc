package render

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"aimd/internal/types"
	"aimd/internal/utils"
)

const (
	blockHeadingFormat           = "### %s\n\n"
	unreadableBlockHeadingFormat = "### %s (unreadable)\n\n"
	binaryBlockHeadingFormat     = "### %s (binary)\n\n"

	unreadablePlaceholder   = "_Content could not be read._\n\n"
	binaryPlaceholderFormat = "_Binary content omitted (%s)._\n\n"

	fenceDelimiter = "```"
)

// BlockFormatter renders one collected file as a labeled fenced markdown
// block. Formatting is total: a read failure yields a placeholder block
// instead of an error, so one unreadable file never aborts the run.
type BlockFormatter struct {
	logger *zap.Logger
}

// NewBlockFormatter constructs a BlockFormatter that logs read failures
// through the provided logger.
func NewBlockFormatter(logger *zap.Logger) *BlockFormatter {
	return &BlockFormatter{logger: logger}
}

// Format reads the record's file and returns its markdown block: a heading
// naming the relative path followed by a fenced block tagged with the
// extension's display tag. Binary content is replaced with a placeholder
// naming the detected MIME type; a read failure is logged and replaced
// with an unreadable placeholder.
func (formatter *BlockFormatter) Format(record types.FileRecord) string {
	fileBytes, readError := os.ReadFile(record.AbsolutePath)
	if readError != nil {
		formatter.logger.Warn("failed to read file",
			zap.String("path", record.AbsolutePath),
			zap.Error(readError))
		return fmt.Sprintf(unreadableBlockHeadingFormat, record.RelativePath) + unreadablePlaceholder
	}

	if utils.IsBinary(fileBytes) {
		mimeType := utils.DetectMimeType(record.AbsolutePath)
		if mimeType == "" {
			mimeType = "unknown type"
		}
		return fmt.Sprintf(binaryBlockHeadingFormat, record.RelativePath) +
			fmt.Sprintf(binaryPlaceholderFormat, mimeType)
	}

	displayTag := DisplayTagForExtension(record.Extension)
	var blockBuilder strings.Builder
	fmt.Fprintf(&blockBuilder, blockHeadingFormat, record.RelativePath)
	blockBuilder.WriteString(fenceDelimiter + displayTag + "\n")
	blockBuilder.Write(fileBytes)
	if len(fileBytes) > 0 && !strings.HasSuffix(string(fileBytes), "\n") {
		blockBuilder.WriteString("\n")
	}
	blockBuilder.WriteString(fenceDelimiter + "\n\n")
	return blockBuilder.String()
}
