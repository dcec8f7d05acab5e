// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/flatcode/internal/collector"
	"github.com/tyemirov/flatcode/internal/config"
	"github.com/tyemirov/flatcode/internal/display"
	"github.com/tyemirov/flatcode/internal/output"
	"github.com/tyemirov/flatcode/internal/services/clipboard"
	"github.com/tyemirov/flatcode/internal/tokenizer"
	"github.com/tyemirov/flatcode/internal/types"
	"github.com/tyemirov/flatcode/internal/utils"
)

const (
	formatFlagName    = "format"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	clipboardFlagName = "clipboard"
	quietFlagName     = "quiet"
	gitignoreFlagName = "gitignore"
	excludeFlagName   = "exclude"
	excludeShorthand  = "e"
	configFlagName    = "config"
	versionFlagName   = "version"
	globalFlagName    = "global"
	forceFlagName     = "force"

	versionTemplate      = "flatcode version: %s\n"
	rootUse              = "flatcode [output]"
	rootShortDescription = "flatten project sources into one file"
	rootLongDescription  = `flatcode scans the current directory recursively and concatenates every
source file with an allowed extension into a single output file. Each file is
preceded by a header naming its path relative to the current directory.

Dependency and build directories are pruned, lock files are skipped, and the
output file never includes itself. Use --format to select raw, json, or xml
output, --tokens to estimate the token count, and --clipboard to copy the
result.`
	rootUsageExample = `  # Write full_project_source.txt in the current directory
  flatcode

  # Write JSON to a custom file and report the token count
  flatcode snapshot.json --format json --tokens

  # Skip tests and honour .gitignore files
  flatcode -e "*.test.ts" --gitignore`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a configuration file holding the built-in defaults.
Without --global the file is .flatcode.yaml in the current directory.`

	formatFlagDescription    = "output format: raw, json, or xml"
	tokensFlagDescription    = "report the token count of the collected content"
	modelFlagDescription     = "tokenizer model to use for token counting"
	clipboardFlagDescription = "copy the collected content to the clipboard"
	quietFlagDescription     = "suppress per-file progress lines"
	gitignoreFlagDescription = "also exclude paths listed in .gitignore and .ignore files"
	excludeFlagDescription   = "exclude path pattern (repeatable)"
	configFlagDescription    = "configuration file to use instead of ./.flatcode.yaml"
	versionFlagDescription   = "display application version"
	globalFlagDescription    = "write the global configuration under the home directory"
	forceFlagDescription     = "overwrite an existing configuration file"

	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	ignorePatternsErrorFormat   = "load ignore patterns: %w"
	clipboardWarningFormat      = "failed to copy to clipboard: %v"
	initCompletedFormat         = "Wrote %s\n"
)

// Dependencies carries the collaborators a command needs. Zero values are
// replaced with the production implementations.
type Dependencies struct {
	Logger           *zap.Logger
	Clipboard        clipboard.Copier
	WorkingDirectory func() (string, error)
	ExecutableName   func() string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.SystemCopier{}
	}
	if dependencies.WorkingDirectory == nil {
		dependencies.WorkingDirectory = os.Getwd
	}
	if dependencies.ExecutableName == nil {
		dependencies.ExecutableName = executableBaseName
	}
	return dependencies
}

// Execute runs the flatcode application. SIGINT and SIGTERM cancel the run.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCommand := createRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// runOptions stores the flag values of the root command.
type runOptions struct {
	format            string
	tokens            bool
	model             string
	clipboard         bool
	quiet             bool
	gitignore         bool
	exclusionPatterns []string
	configPath        string
	showVersion       bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return runCollect(command, arguments, options, dependencies)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerToggleFlag(flags, &options.tokens, tokensFlagName, tokensFlagDescription)
	flags.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerToggleFlag(flags, &options.clipboard, clipboardFlagName, clipboardFlagDescription)
	registerToggleFlag(flags, &options.quiet, quietFlagName, quietFlagDescription)
	registerToggleFlag(flags, &options.gitignore, gitignoreFlagName, gitignoreFlagDescription)
	flags.StringArrayVarP(&options.exclusionPatterns, excludeFlagName, excludeShorthand, nil, excludeFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	flags.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := dependencies.WorkingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, err := fmt.Fprintf(command.OutOrStdout(), initCompletedFormat, path)
			return err
		},
	}
	registerToggleFlag(initCommand.Flags(), &global, globalFlagName, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &force, forceFlagName, forceFlagDescription)
	return initCommand
}

// runCollect resolves the effective settings from configuration files and
// flags, runs one collection over the working directory, and reports it.
func runCollect(command *cobra.Command, arguments []string, options runOptions, dependencies Dependencies) error {
	workingDirectory, workingDirectoryError := dependencies.WorkingDirectory()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfig, configError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configError != nil {
		return configError
	}
	settings := resolveSettings(command, arguments, options, applicationConfig)
	if !output.IsSupportedFormat(settings.format) {
		return fmt.Errorf(invalidFormatMessage, settings.format)
	}

	filterOptions := collector.FilterOptions{
		IgnoredDirectories: applicationConfig.Paths.IgnoreDirectories,
		AllowedExtensions:  applicationConfig.Paths.AllowedExtensions,
		IgnoredFiles:       applicationConfig.Paths.IgnoreFiles,
		ExcludePatterns:    settings.exclusionPatterns,
	}
	if executableName := dependencies.ExecutableName(); executableName != utils.EmptyString {
		filterOptions.SelfNames = []string{executableName}
	}
	if settings.gitignore {
		pruning := collector.NewFilter(filterOptions)
		matcher, matcherError := config.LoadIgnoreMatcher(workingDirectory, pruning.SkipDirectory)
		if matcherError != nil {
			return fmt.Errorf(ignorePatternsErrorFormat, matcherError)
		}
		filterOptions.IgnoreMatcher = matcher
	}

	reporter := display.NewConsoleReporter(command.ErrOrStderr(), settings.quiet)

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if settings.tokens {
		counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: settings.model})
		if counterError != nil {
			return counterError
		}
		tokenCounter = counter
		tokenModel = resolvedModel
	}

	var capture *clipboard.Capture
	var captureWriter io.Writer
	if settings.clipboard {
		capture = clipboard.NewCapture(dependencies.Clipboard)
		captureWriter = capture
	}

	runner, collectorError := collector.New(collector.Options{
		Root:         workingDirectory,
		OutputPath:   settings.output,
		Format:       settings.format,
		Filter:       filterOptions,
		Capture:      captureWriter,
		TokenCounter: tokenCounter,
		TokenModel:   tokenModel,
		Reporter:     reporter,
		Logger:       dependencies.Logger,
	})
	if collectorError != nil {
		return collectorError
	}

	summary, collectError := runner.Collect(command.Context())
	if collectError != nil && !summary.Interrupted {
		return collectError
	}
	reporter.Completed(summary)
	if collectError != nil {
		return collectError
	}

	if capture != nil {
		if copyError := capture.Commit(); copyError != nil {
			reporter.Warn(fmt.Sprintf(clipboardWarningFormat, copyError))
		} else {
			dependencies.Logger.Debug("copied output to clipboard", zap.Int("bytes", capture.Len()))
		}
	}
	return nil
}

// effectiveSettings holds the values a run uses after configuration and
// flags are merged.
type effectiveSettings struct {
	output            string
	format            string
	tokens            bool
	model             string
	clipboard         bool
	quiet             bool
	gitignore         bool
	exclusionPatterns []string
}

// resolveSettings applies configuration values first and then any flag the
// user set explicitly. The positional argument always wins for the output name.
func resolveSettings(command *cobra.Command, arguments []string, options runOptions, applicationConfig config.ApplicationConfiguration) effectiveSettings {
	flags := command.Flags()
	settings := effectiveSettings{
		output:    firstNonEmpty(applicationConfig.Output, utils.DefaultOutputFileName),
		format:    firstNonEmpty(applicationConfig.Format, types.FormatRaw),
		tokens:    config.BoolValue(applicationConfig.Tokens.Enabled, false),
		model:     firstNonEmpty(applicationConfig.Tokens.Model, tokenizer.DefaultModel),
		clipboard: config.BoolValue(applicationConfig.Clipboard, false),
		quiet:     config.BoolValue(applicationConfig.Quiet, false),
		gitignore: config.BoolValue(applicationConfig.Paths.UseGitignore, false),
	}
	if len(arguments) > 0 {
		settings.output = arguments[0]
	}
	if flags.Changed(formatFlagName) {
		settings.format = options.format
	}
	settings.format = strings.ToLower(strings.TrimSpace(settings.format))
	if flags.Changed(tokensFlagName) {
		settings.tokens = options.tokens
	}
	if flags.Changed(modelFlagName) {
		settings.model = options.model
	}
	if flags.Changed(clipboardFlagName) {
		settings.clipboard = options.clipboard
	}
	if flags.Changed(quietFlagName) {
		settings.quiet = options.quiet
	}
	if flags.Changed(gitignoreFlagName) {
		settings.gitignore = options.gitignore
	}
	combined := append(append([]string{}, applicationConfig.Paths.Exclude...), options.exclusionPatterns...)
	settings.exclusionPatterns = utils.DeduplicatePatterns(combined)
	return settings
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != utils.EmptyString {
			return value
		}
	}
	return utils.EmptyString
}

// executableBaseName returns the base name of the running binary, or an
// empty string when it cannot be determined.
func executableBaseName() string {
	executablePath, executableError := os.Executable()
	if executableError != nil {
		return utils.EmptyString
	}
	return filepath.Base(executablePath)
}

// IsInterrupted reports whether err stems from a cancelled run.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
