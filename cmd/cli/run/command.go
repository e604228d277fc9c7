package run

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/devrun/internal/execshell"
	"github.com/temirov/devrun/internal/sequence"
	"github.com/temirov/devrun/internal/ui"
	"github.com/temirov/devrun/internal/utils"
	flagutils "github.com/temirov/devrun/internal/utils/flags"
	"github.com/temirov/devrun/internal/workspace"
)

const (
	commandUseConstant                  = "run"
	commandShortDescriptionConstant     = "Run the configured commands in order, stopping at the first failure"
	commandLongDescriptionConstant      = "run resolves the working directory once, then runs each configured command there with the console attached, stopping at the first command that fails to start or exits non-zero."
	flagStepsNameConstant               = "steps"
	flagStepsUsageConstant              = "Path to a YAML, JSON, or TOML file listing the steps to run"
	flagWorkingDirectoryNameConstant    = "working-directory"
	flagWorkingDirectoryUsageConstant   = "Directory the commands run in, relative to the anchor unless absolute"
	flagAnchorNameConstant              = "anchor"
	flagAnchorUsageConstant             = "Directory a relative working directory is resolved against"
	sequenceFailedMessageConstant       = "command sequence failed"
	failureSuppressedMessageConstant    = "command sequence failed; exit status suppressed by configuration"
	stepsFileLoadedMessageConstant      = "step definition loaded"
	logFieldStepsFileConstant           = "steps_file"
	logFieldStepCountConstant           = "step_count"
	planBuildErrorTemplateConstant      = "unable to build command plan: %w"
	stepsFileErrorTemplateConstant      = "unable to load steps: %w"
	workingDirectoryErrorTemplate       = "unable to resolve working directory: %w"
	executorCreationErrorTemplate       = "unable to create command executor: %w"
	sequenceRunnerCreationErrorTemplate = "unable to create sequence runner: %w"
)

// ErrSequenceFailed marks failures that were already reported on the console.
var ErrSequenceFailed = errors.New(sequenceFailedMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current run configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Runner                       execshell.CommandRunner
	RepositoryRootLocator        workspace.RepositoryRootLocator
	CurrentDirectoryProvider     func() (string, error)
	ExecutablePathProvider       func() (string, error)
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.Run,
	}

	builder.BindFlags(command.Flags())

	return command, nil
}

// BindFlags registers the run flags on flagSet so the root command can act as run.
func (builder *CommandBuilder) BindFlags(flagSet *pflag.FlagSet) {
	if flagSet == nil {
		return
	}
	flagSet.String(flagStepsNameConstant, "", flagStepsUsageConstant)
	flagSet.String(flagWorkingDirectoryNameConstant, "", flagWorkingDirectoryUsageConstant)
	flagSet.String(flagAnchorNameConstant, "", flagutils.FormatChoiceUsage(
		string(workspace.AnchorRepository),
		[]string{string(workspace.AnchorRepository), string(workspace.AnchorCurrent), string(workspace.AnchorExecutable)},
		flagAnchorUsageConstant,
	))
}

// Run executes the configured sequence for command.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration(command)

	progressPrinter := ui.NewProgressPrinter(
		utils.NewFlushingWriter(command.OutOrStdout()),
		utils.NewFlushingWriter(command.ErrOrStderr()),
	)

	plan, planError := builder.buildPlan(command, configuration, logger)
	if planError != nil {
		progressPrinter.ReportFailure(planError)
		return builder.failure(configuration, logger, planError)
	}

	if configuration.DryRun {
		progressPrinter.PrintPlan(plan)
		return nil
	}

	stepExecutor, executorError := builder.resolveExecutor(command, logger)
	if executorError != nil {
		return fmt.Errorf(executorCreationErrorTemplate, executorError)
	}

	sequenceRunner, runnerError := sequence.NewRunner(sequence.Dependencies{
		Executor: stepExecutor,
		Observer: progressPrinter,
		Logger:   logger,
	})
	if runnerError != nil {
		return fmt.Errorf(sequenceRunnerCreationErrorTemplate, runnerError)
	}

	_, runError := sequenceRunner.Run(command.Context(), plan, sequence.RuntimeOptions{StepTimeout: configuration.StepTimeout})
	if runError != nil {
		return builder.failure(configuration, logger, runError)
	}

	return nil
}

func (builder *CommandBuilder) buildPlan(command *cobra.Command, configuration CommandConfiguration, logger *zap.Logger) (sequence.Plan, error) {
	stepDefinitions := configuration.Steps
	executable := configuration.Executable
	workingDirectory := configuration.WorkingDirectory

	stepsFilePath := builder.resolveStepsFilePath(command, configuration)
	if len(stepsFilePath) > 0 {
		definition, definitionError := sequence.LoadDefinition(stepsFilePath)
		if definitionError != nil {
			return sequence.Plan{}, fmt.Errorf(stepsFileErrorTemplateConstant, definitionError)
		}
		logger.Debug(stepsFileLoadedMessageConstant, zap.String(logFieldStepsFileConstant, stepsFilePath), zap.Int(logFieldStepCountConstant, len(definition.Steps)))

		stepDefinitions = definition.Steps
		if trimmedExecutable := strings.TrimSpace(definition.Executable); len(trimmedExecutable) > 0 {
			executable = trimmedExecutable
		}
		if trimmedDirectory := strings.TrimSpace(definition.WorkingDirectory); len(trimmedDirectory) > 0 && !command.Flags().Changed(flagWorkingDirectoryNameConstant) {
			workingDirectory = trimmedDirectory
		}
	}

	anchor, anchorError := workspace.ParseAnchor(configuration.Anchor)
	if anchorError != nil {
		return sequence.Plan{}, fmt.Errorf(workingDirectoryErrorTemplate, anchorError)
	}

	resolver := workspace.NewResolver(workspace.Dependencies{
		CurrentDirectoryProvider: builder.CurrentDirectoryProvider,
		ExecutablePathProvider:   builder.ExecutablePathProvider,
		RepositoryRootLocator:    builder.RepositoryRootLocator,
		Logger:                   logger,
	})
	resolvedDirectory, resolveError := resolver.Resolve(workspace.Request{Directory: workingDirectory, Anchor: anchor})
	if resolveError != nil {
		return sequence.Plan{}, fmt.Errorf(workingDirectoryErrorTemplate, resolveError)
	}

	steps, stepsError := sequence.BuildSteps(stepDefinitions, executable)
	if stepsError != nil {
		return sequence.Plan{}, fmt.Errorf(planBuildErrorTemplateConstant, stepsError)
	}

	plan, newPlanError := sequence.NewPlan(resolvedDirectory, steps)
	if newPlanError != nil {
		return sequence.Plan{}, fmt.Errorf(planBuildErrorTemplateConstant, newPlanError)
	}

	return plan, nil
}

// resolveStepsFilePath prefers the --steps flag as given; a configured steps_file is relative to the configuration file.
func (builder *CommandBuilder) resolveStepsFilePath(command *cobra.Command, configuration CommandConfiguration) string {
	if command.Flags().Changed(flagStepsNameConstant) {
		flagValue, _ := command.Flags().GetString(flagStepsNameConstant)
		return strings.TrimSpace(flagValue)
	}
	return utils.NewCommandContextAccessor().ResolveConfigurationRelativePath(command.Context(), configuration.StepsFile)
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if command.Flags().Changed(flagWorkingDirectoryNameConstant) {
		configuration.WorkingDirectory, _ = command.Flags().GetString(flagWorkingDirectoryNameConstant)
	}
	if command.Flags().Changed(flagAnchorNameConstant) {
		configuration.Anchor, _ = command.Flags().GetString(flagAnchorNameConstant)
	}
	if dryRunValue, dryRunChanged := flagutils.BoolFlagOverride(command, flagutils.DryRunFlagName); dryRunChanged {
		configuration.DryRun = dryRunValue
	}

	return configuration.sanitize()
}

func (builder *CommandBuilder) failure(configuration CommandConfiguration, logger *zap.Logger, cause error) error {
	if configuration.SuppressFailureStatus {
		logger.Debug(failureSuppressedMessageConstant, zap.Error(cause))
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSequenceFailed, cause)
}

func (builder *CommandBuilder) resolveExecutor(command *cobra.Command, logger *zap.Logger) (sequence.StepExecutor, error) {
	commandRunner := builder.Runner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunnerWithStreams(execshell.ConsoleStreams{
			Input:  command.InOrStdin(),
			Output: command.OutOrStdout(),
			Errors: command.ErrOrStderr(),
		})
	}

	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observer = ui.NewConsoleCommandEventLogger(resolveProvidedLogger(builder.ConsoleLoggerProvider))
	}

	return execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	return resolveProvidedLogger(builder.LoggerProvider)
}

func resolveProvidedLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
