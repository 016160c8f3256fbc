// Package commands contains the core logic for each aimd command.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aimd/internal/config"
	"aimd/internal/render"
	"aimd/internal/scan"
	"aimd/internal/services/clipboard"
	"aimd/internal/tokenizer"
	"aimd/internal/types"
	"aimd/internal/utils"
)

const (
	// markdownExtension identifies the tool's own prior output together
	// with the fixed output file name.
	markdownExtension = "md"

	outputFileMode = 0o644

	// errorTargetMissingFormat reports a target folder that does not exist.
	errorTargetMissingFormat = "target folder '%s' does not exist"
	// errorTargetNotDirectoryFormat reports a target path that is not a directory.
	errorTargetNotDirectoryFormat = "target path '%s' is not a directory"
	// errorStatTargetFormat reports a failure to stat the target folder.
	errorStatTargetFormat = "stat failed for '%s': %w"
	// errorAbsoluteTargetFormat reports a failure to resolve the target folder.
	errorAbsoluteTargetFormat = "getting absolute path for '%s': %w"
	// errorWriteDocumentFormat reports a failure to write the aggregated document.
	errorWriteDocumentFormat = "writing %s: %w"
	// errorClipboardFormat reports a failure to copy the document to the clipboard.
	errorClipboardFormat = "copying document to clipboard: %w"

	warningTokenCountMessage = "failed to count document tokens"
)

// GenerateOptions configures one aggregation run.
type GenerateOptions struct {
	// IncludeExtensions is the allow-list of bare lowercase extensions
	// whose content is aggregated. Empty means the built-in default.
	IncludeExtensions []string
	// IgnorePatterns excludes matching paths from both traversals.
	IgnorePatterns []string
	// CopyToClipboard places the composed document on the system
	// clipboard in addition to writing it.
	CopyToClipboard bool
	// Clipboard performs the copy when CopyToClipboard is set.
	Clipboard clipboard.Copier
	// TokenCounter, when non-nil, adds a token total to the summary.
	TokenCounter tokenizer.Counter
	// Logger receives per-file diagnostics. Nil defaults to a no-op logger.
	Logger *zap.Logger
}

// Generate validates targetFolderPath, renders its tree, collects and
// filters its files, formats each survivor as a fenced block, composes
// the aggregated document, and writes it to the fixed output file inside
// the target folder, overwriting any previous run. All traversal I/O is
// strictly sequential; only the final write and the optional clipboard
// copy run concurrently, after the document string is complete.
func Generate(targetFolderPath string, options GenerateOptions) (types.DocumentSummary, error) {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	absoluteTargetPath, validationError := validateTargetFolder(targetFolderPath)
	if validationError != nil {
		return types.DocumentSummary{}, validationError
	}

	treeRenderer := scan.NewTreeRenderer(options.IgnorePatterns)
	treeFragment, renderError := treeRenderer.Render(absoluteTargetPath)
	if renderError != nil {
		return types.DocumentSummary{}, renderError
	}

	collector := scan.NewCollector(options.IgnorePatterns)
	fileRecords, collectError := collector.Collect(absoluteTargetPath)
	if collectError != nil {
		return types.DocumentSummary{}, collectError
	}

	includeExtensions := options.IncludeExtensions
	if len(includeExtensions) == 0 {
		includeExtensions = config.DefaultIncludeExtensions
	}

	blockFormatter := render.NewBlockFormatter(options.Logger)
	var fileBlocks []string
	for _, fileRecord := range fileRecords {
		if fileRecord.RelativePath == types.OutputFileName && fileRecord.Extension == markdownExtension {
			continue
		}
		if !utils.ContainsString(includeExtensions, fileRecord.Extension) {
			continue
		}
		fileBlocks = append(fileBlocks, blockFormatter.Format(fileRecord))
	}

	document := render.ComposeDocument(filepath.Base(absoluteTargetPath), treeFragment, fileBlocks)
	outputPath := filepath.Join(absoluteTargetPath, types.OutputFileName)

	var writeGroup errgroup.Group
	writeGroup.Go(func() error {
		if writeError := os.WriteFile(outputPath, []byte(document), outputFileMode); writeError != nil {
			return fmt.Errorf(errorWriteDocumentFormat, outputPath, writeError)
		}
		return nil
	})
	if options.CopyToClipboard && options.Clipboard != nil {
		writeGroup.Go(func() error {
			if copyError := options.Clipboard.Copy(document); copyError != nil {
				return fmt.Errorf(errorClipboardFormat, copyError)
			}
			return nil
		})
	}
	if waitError := writeGroup.Wait(); waitError != nil {
		return types.DocumentSummary{}, waitError
	}

	documentSummary := types.DocumentSummary{
		OutputPath: outputPath,
		TotalFiles: len(fileBlocks),
		TotalSize:  utils.FormatFileSize(int64(len(document))),
	}
	if options.TokenCounter != nil {
		tokenCount, tokenError := options.TokenCounter.CountString(document)
		if tokenError != nil {
			options.Logger.Warn(warningTokenCountMessage, zap.Error(tokenError))
		} else {
			documentSummary.Tokens = tokenCount
			documentSummary.Model = options.TokenCounter.Name()
		}
	}
	return documentSummary, nil
}

// validateTargetFolder resolves targetFolderPath to an absolute path and
// confirms it names an existing directory. Nothing is written when
// validation fails.
func validateTargetFolder(targetFolderPath string) (string, error) {
	absoluteTargetPath, absolutePathError := filepath.Abs(targetFolderPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsoluteTargetFormat, targetFolderPath, absolutePathError)
	}
	cleanTargetPath := filepath.Clean(absoluteTargetPath)

	targetInfo, statError := os.Stat(cleanTargetPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorTargetMissingFormat, targetFolderPath)
		}
		return "", fmt.Errorf(errorStatTargetFormat, targetFolderPath, statError)
	}
	if !targetInfo.IsDir() {
		return "", fmt.Errorf(errorTargetNotDirectoryFormat, targetFolderPath)
	}
	return cleanTargetPath, nil
}
