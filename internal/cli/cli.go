// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aimd/internal/commands"
	"aimd/internal/config"
	"aimd/internal/services/clipboard"
	"aimd/internal/tokenizer"
	"aimd/internal/types"
	"aimd/internal/utils"
)

const (
	extensionsFlagName  = "ext"
	extensionsFlagShort = "x"
	exclusionFlagName   = "e"
	noGitignoreFlagName = "no-gitignore"
	noIgnoreFlagName    = "no-ignore"
	includeGitFlagName  = "git"
	copyFlagName        = "copy"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	versionFlagName     = "version"
	versionTemplate     = "aimd version: %s\n"
	defaultPath         = "."

	rootUse              = "aimd"
	rootShortDescription = "aimd command line interface"
	rootLongDescription  = `aimd aggregates a folder into a single reviewable markdown document.
It renders a directory tree and concatenates selected file contents into
` + types.OutputFileName + ` inside the target folder, annotated with syntax-highlighting hints.`
	versionFlagDescription = "display application version"

	generateUse              = "generate [directory]"
	generateAlias            = "g"
	generateShortDescription = "write the aggregated document (" + generateAlias + ")"
	// generateLongDescription provides detailed help for the generate command.
	generateLongDescription = `Scan a target folder, render its tree, and concatenate the contents of
files whose extensions are on the allow-list into ` + types.OutputFileName + `.
The allow-list defaults to ts, html, and json; override it with --ext or
the generate.extensions configuration key.`
	// generateUsageExample demonstrates generate command usage.
	generateUsageExample = `  # Aggregate the current folder with the default allow-list
  aimd generate

  # Include go and markdown sources and copy the result to the clipboard
  aimd generate -x go -x md --copy ./service`

	treeUse              = "tree [directory]"
	treeAlias            = "t"
	treeShortDescription = "print the rendered directory tree (" + treeAlias + ")"
	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Render the markdown tree fragment for a folder without writing anything.
Directories sort before files at every level, both in collated name order.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Preview the tree that generate would embed
  aimd tree ./service

  # Exclude the vendor directory
  aimd tree -e vendor/ .`

	extensionsFlagDescription       = "file extension to include (repeatable, without leading dot)"
	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	includeGitFlagDescription       = "include git directory"
	copyFlagDescription             = "copy the aggregated document to the clipboard"
	tokensFlagDescription           = "report the document token count"
	modelFlagDescription            = "tokenizer model for token counting"

	successMessageFormat           = "wrote %s (%d files, %s)"
	successWithTokensMessageFormat = "wrote %s (%d files, %s, %d tokens via %s)"
	treeFailureFormat              = "rendering tree for '%s': %w"
)

// Execute runs the aimd application using the provided logger for diagnostics.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createGenerateCommand(logger),
		createTreeCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	command.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	command.Flags().BoolVar(&options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
}

// resolvePathConfiguration overlays configuration defaults under flags that
// were not explicitly set on the command line.
func resolvePathConfiguration(command *cobra.Command, options pathOptions, configured config.PathConfiguration) pathOptions {
	resolved := options
	if !command.Flags().Changed(noGitignoreFlagName) && configured.UseGitignore != nil {
		resolved.disableGitignore = !*configured.UseGitignore
	}
	if !command.Flags().Changed(noIgnoreFlagName) && configured.UseIgnoreFile != nil {
		resolved.disableIgnoreFile = !*configured.UseIgnoreFile
	}
	if !command.Flags().Changed(includeGitFlagName) && configured.IncludeGit != nil {
		resolved.includeGit = *configured.IncludeGit
	}
	resolved.exclusionPatterns = append(append([]string{}, configured.Exclude...), options.exclusionPatterns...)
	return resolved
}

// loadIgnorePatterns resolves the target folder and aggregates its ignore
// patterns according to the resolved path options.
func loadIgnorePatterns(targetFolderPath string, options pathOptions) ([]string, error) {
	absoluteTargetPath, absolutePathError := filepath.Abs(targetFolderPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf("getting absolute path for '%s': %w", targetFolderPath, absolutePathError)
	}
	return config.LoadCombinedIgnorePatterns(
		absoluteTargetPath,
		options.exclusionPatterns,
		!options.disableGitignore,
		!options.disableIgnoreFile,
		options.includeGit,
	)
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(logger *zap.Logger) *cobra.Command {
	var pathConfiguration pathOptions
	var includeExtensions []string
	var copyEnabled bool
	var tokensEnabled bool
	var tokenModel string

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			targetFolderPath := defaultPath
			if len(arguments) > 0 {
				targetFolderPath = arguments[0]
			}

			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}
			generateConfiguration := applicationConfiguration.Generate

			resolvedExtensions := includeExtensions
			if !command.Flags().Changed(extensionsFlagName) && len(generateConfiguration.Extensions) > 0 {
				resolvedExtensions = generateConfiguration.Extensions
			}
			if len(resolvedExtensions) == 0 {
				resolvedExtensions = config.DefaultIncludeExtensions
			}

			resolvedPaths := resolvePathConfiguration(command, pathConfiguration, generateConfiguration.Paths)
			ignorePatterns, ignoreLoadError := loadIgnorePatterns(targetFolderPath, resolvedPaths)
			if ignoreLoadError != nil {
				return ignoreLoadError
			}

			resolvedCopy := copyEnabled
			if !command.Flags().Changed(copyFlagName) && generateConfiguration.Clipboard != nil {
				resolvedCopy = *generateConfiguration.Clipboard
			}

			resolvedTokens := tokensEnabled
			if !command.Flags().Changed(tokensFlagName) && generateConfiguration.Tokens.Enabled != nil {
				resolvedTokens = *generateConfiguration.Tokens.Enabled
			}
			resolvedModel := tokenModel
			if !command.Flags().Changed(modelFlagName) && generateConfiguration.Tokens.Model != "" {
				resolvedModel = generateConfiguration.Tokens.Model
			}

			var tokenCounter tokenizer.Counter
			if resolvedTokens {
				createdCounter, _, counterError := tokenizer.NewCounter(resolvedModel)
				if counterError != nil {
					return counterError
				}
				tokenCounter = createdCounter
			}

			documentSummary, generateError := commands.Generate(targetFolderPath, commands.GenerateOptions{
				IncludeExtensions: resolvedExtensions,
				IgnorePatterns:    ignorePatterns,
				CopyToClipboard:   resolvedCopy,
				Clipboard:         clipboard.NewService(),
				TokenCounter:      tokenCounter,
				Logger:            logger,
			})
			if generateError != nil {
				return generateError
			}

			if documentSummary.Model != "" {
				logger.Info(fmt.Sprintf(successWithTokensMessageFormat, documentSummary.OutputPath, documentSummary.TotalFiles, documentSummary.TotalSize, documentSummary.Tokens, documentSummary.Model))
			} else {
				logger.Info(fmt.Sprintf(successMessageFormat, documentSummary.OutputPath, documentSummary.TotalFiles, documentSummary.TotalSize))
			}
			return nil
		},
	}

	addPathFlags(generateCommand, &pathConfiguration)
	generateCommand.Flags().StringArrayVarP(&includeExtensions, extensionsFlagName, extensionsFlagShort, nil, extensionsFlagDescription)
	generateCommand.Flags().BoolVar(&copyEnabled, copyFlagName, false, copyFlagDescription)
	generateCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	generateCommand.Flags().StringVar(&tokenModel, modelFlagName, "", modelFlagDescription)
	return generateCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var pathConfiguration pathOptions

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			targetFolderPath := defaultPath
			if len(arguments) > 0 {
				targetFolderPath = arguments[0]
			}

			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}

			resolvedPaths := resolvePathConfiguration(command, pathConfiguration, applicationConfiguration.Tree.Paths)
			ignorePatterns, ignoreLoadError := loadIgnorePatterns(targetFolderPath, resolvedPaths)
			if ignoreLoadError != nil {
				return ignoreLoadError
			}

			treeFragment, renderError := commands.RenderTree(targetFolderPath, ignorePatterns)
			if renderError != nil {
				return fmt.Errorf(treeFailureFormat, targetFolderPath, renderError)
			}
			fmt.Print(treeFragment)
			return nil
		},
	}

	addPathFlags(treeCommand, &pathConfiguration)
	return treeCommand
}
