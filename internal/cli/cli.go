// Package cli provides the command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/git2text/internal/commands"
	"github.com/temirov/git2text/internal/config"
	"github.com/temirov/git2text/internal/gitrepo"
	"github.com/temirov/git2text/internal/output"
	"github.com/temirov/git2text/internal/services/clipboard"
	"github.com/temirov/git2text/internal/tokenizer"
	"github.com/temirov/git2text/internal/utils"
)

const (
	rootUse              = "git2text [path]"
	rootShortDescription = "flatten a directory or git repository into a single text artifact"
	rootLongDescription  = `git2text renders a filtered directory tree followed by every selected
file's content in fenced, syntax-tagged blocks, ready to paste into a
language model prompt. The path may be a local directory or a git URL,
which is cloned to a temporary directory for the duration of the run.`
	rootUsageExample = `  # Copy the current project to the clipboard
  git2text .

  # Write a remote repository to a file, skipping empty files
  git2text https://github.com/golang/example -o example.md --skip-empty-files

  # Only markdown files
  git2text . --include '**/*.md'`

	outputFlagName        = "output"
	excludeFileFlagName   = "ignore-file"
	excludeDirFlagName    = "ignore-dir"
	includeFlagName       = "include"
	skipEmptyFlagName     = "skip-empty-files"
	clipboardFlagName     = "clipboard"
	noGitignoreFlagName   = "no-gitignore"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	configFlagName        = "config"
	versionFlagName       = "version"
	versionTemplate       = "git2text version: %s\n"
	defaultPath           = "."
	defaultTokenizerModel = "gpt-4o"

	outputFlagDescription      = "output file path; without it the artifact goes to the clipboard"
	excludeFileFlagDescription = "glob pattern of files to exclude (repeatable)"
	excludeDirFlagDescription  = "glob pattern of directories to exclude (repeatable)"
	includeFlagDescription     = "glob pattern of paths to include; activates include-only mode (repeatable)"
	skipEmptyFlagDescription   = "omit zero-byte files from the output"
	clipboardFlagDescription   = "copy the artifact to the clipboard even when writing a file"
	noGitignoreFlagDescription = "do not apply .gitignore and .globalignore rules"
	tokensFlagDescription      = "report the token count of the artifact"
	modelFlagDescription       = "tokenizer model used for token counting"
	configFlagDescription      = "path to an application configuration file"
	versionFlagDescription     = "display application version"

	messageWrittenFormat      = "All contents have been written to: %s"
	messageClipboard          = "The content has been copied to the clipboard."
	messageWarningCountFormat = "Completed with %d warnings"
	messageTokenCountFormat   = "Tokens: %d (%s)"
	errorClipboardFormat      = "copying to clipboard: %w"
)

// rootOptions stores the flag values of the root command.
type rootOptions struct {
	outputPath         string
	excludeFileGlobs   []string
	excludeDirGlobs    []string
	includeGlobs       []string
	skipEmptyFiles     bool
	copyToClipboard    bool
	disableIgnoreRules bool
	tokensEnabled      bool
	tokenizerModel     string
	configFilePath     string
	showVersion        bool
}

// Execute runs the git2text application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			targetPath := defaultPath
			if len(arguments) > 0 {
				targetPath = arguments[0]
			}
			return runGenerate(command, &options, targetPath, logger)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	flagSet.StringArrayVar(&options.excludeFileGlobs, excludeFileFlagName, nil, excludeFileFlagDescription)
	flagSet.StringArrayVar(&options.excludeDirGlobs, excludeDirFlagName, nil, excludeDirFlagDescription)
	flagSet.StringArrayVar(&options.includeGlobs, includeFlagName, nil, includeFlagDescription)
	flagSet.BoolVar(&options.skipEmptyFiles, skipEmptyFlagName, false, skipEmptyFlagDescription)
	flagSet.BoolVar(&options.copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	flagSet.BoolVar(&options.disableIgnoreRules, noGitignoreFlagName, false, noGitignoreFlagDescription)
	flagSet.BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	flagSet.StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runGenerate resolves configuration, acquires the root directory, runs the
// engine, and delivers the artifact to the configured sinks.
func runGenerate(command *cobra.Command, options *rootOptions, targetPath string, logger *zap.Logger) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	applyConfigurationDefaults(command, options, applicationConfiguration)

	rootDirectoryPath := targetPath
	if gitrepo.IsRemoteURL(targetPath) {
		clonedPath, cleanup, cloneError := gitrepo.CloneTemporary(targetPath)
		if cloneError != nil {
			return cloneError
		}
		defer cleanup()
		rootDirectoryPath = clonedPath
	}

	filterConfig, filterError := config.BuildFilterConfig(rootDirectoryPath, config.FilterInput{
		ExcludeFileGlobs:   options.excludeFileGlobs,
		ExcludeDirGlobs:    options.excludeDirGlobs,
		IncludeGlobs:       options.includeGlobs,
		SkipEmptyFiles:     options.skipEmptyFiles,
		DisableIgnoreRules: options.disableIgnoreRules,
	}, logger)
	if filterError != nil {
		return filterError
	}

	result, generateError := commands.Generate(rootDirectoryPath, filterConfig, logger)
	if generateError != nil {
		return generateError
	}
	if result.WarningCount > 0 {
		logger.Warn(fmt.Sprintf(messageWarningCountFormat, result.WarningCount))
	}

	if options.tokensEnabled {
		reportTokenCount(result.Text, options.tokenizerModel, logger)
	}

	return deliverArtifact(result.Text, options, logger)
}

// applyConfigurationDefaults overlays configuration-file values onto flags the
// user did not set explicitly. Exclusion patterns from the configuration file
// are always appended.
func applyConfigurationDefaults(command *cobra.Command, options *rootOptions, applicationConfiguration config.ApplicationConfiguration) {
	flagSet := command.Flags()
	if !flagSet.Changed(outputFlagName) && applicationConfiguration.Output != "" {
		options.outputPath = applicationConfiguration.Output
	}
	if !flagSet.Changed(clipboardFlagName) && applicationConfiguration.Clipboard != nil {
		options.copyToClipboard = *applicationConfiguration.Clipboard
	}
	if !flagSet.Changed(skipEmptyFlagName) && applicationConfiguration.SkipEmptyFiles != nil {
		options.skipEmptyFiles = *applicationConfiguration.SkipEmptyFiles
	}
	if !flagSet.Changed(noGitignoreFlagName) && applicationConfiguration.Paths.UseIgnoreFile != nil {
		options.disableIgnoreRules = !*applicationConfiguration.Paths.UseIgnoreFile
	}
	if !flagSet.Changed(tokensFlagName) && applicationConfiguration.Tokens.Enabled != nil {
		options.tokensEnabled = *applicationConfiguration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		options.tokenizerModel = applicationConfiguration.Tokens.Model
	}
	options.excludeFileGlobs = utils.DeduplicatePatterns(append(options.excludeFileGlobs, applicationConfiguration.Paths.ExcludeFiles...))
	options.excludeDirGlobs = utils.DeduplicatePatterns(append(options.excludeDirGlobs, applicationConfiguration.Paths.ExcludeDirs...))
}

// reportTokenCount counts the artifact and logs the result. Token counting is
// advisory; a failure does not abort the run.
func reportTokenCount(artifactText string, model string, logger *zap.Logger) {
	tokenCounter, counterName, counterError := tokenizer.NewCounter(model)
	if counterError != nil {
		logger.Warn(counterError.Error())
		return
	}
	tokenCount, countError := tokenCounter.CountString(artifactText)
	if countError != nil {
		logger.Warn(countError.Error())
		return
	}
	logger.Info(fmt.Sprintf(messageTokenCountFormat, tokenCount, counterName))
}

// deliverArtifact writes the artifact to the output file and/or the clipboard.
// Without an output path the clipboard is the default sink.
func deliverArtifact(artifactText string, options *rootOptions, logger *zap.Logger) error {
	if options.outputPath != "" {
		if writeError := output.WriteToFile(options.outputPath, artifactText); writeError != nil {
			return writeError
		}
		logger.Info(fmt.Sprintf(messageWrittenFormat, options.outputPath))
		if !options.copyToClipboard {
			return nil
		}
	}

	clipboardService := clipboard.NewService()
	if clipboardError := clipboardService.Copy(artifactText); clipboardError != nil {
		return fmt.Errorf(errorClipboardFormat, clipboardError)
	}
	logger.Info(messageClipboard)
	return nil
}
