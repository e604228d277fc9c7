package sequence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/devrun/internal/execshell"
)

const (
	sequenceStartedMessageConstant   = "sequence started"
	sequenceCompletedMessageConstant = "sequence completed"
	sequenceFailedMessageConstant    = "sequence failed"
	stepStartedMessageConstant       = "step started"
	stepSucceededMessageConstant     = "step succeeded"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldStepCountConstant        = "step_count"
	logFieldStepIndexConstant        = "step_index"
	logFieldStepNameConstant         = "step_name"
	logFieldCompletedStepsConstant   = "completed_steps"
)

// StepExecutor runs a single command to completion.
type StepExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// ProgressObserver receives run progress notifications.
type ProgressObserver interface {
	RunStarted(plan Plan)
	StepStarted(stepIndex int, step Step)
	StepSucceeded(stepIndex int, step Step)
	RunFinished(report Report)
}

// Dependencies configures collaborators for a Runner.
type Dependencies struct {
	Executor StepExecutor
	Observer ProgressObserver
	Logger   *zap.Logger
}

// RuntimeOptions captures per-run modifiers.
type RuntimeOptions struct {
	// StepTimeout bounds every step when positive.
	StepTimeout time.Duration
}

// Runner executes plans sequentially.
type Runner struct {
	executor StepExecutor
	observer ProgressObserver
	logger   *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(dependencies Dependencies) (*Runner, error) {
	if dependencies.Executor == nil {
		return nil, ErrExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	observer := dependencies.Observer
	if observer == nil {
		observer = noopProgressObserver{}
	}

	return &Runner{executor: dependencies.Executor, observer: observer, logger: logger}, nil
}

// Run executes the plan's steps in order and stops at the first failure.
//
// The returned error is a StepFailedError whenever the report ends Failed.
// An empty plan is rejected with ErrEmptyPlan before anything runs and the report stays Idle.
func (runner *Runner) Run(executionContext context.Context, plan Plan, options RuntimeOptions) (Report, error) {
	if len(plan.Steps) == 0 {
		return newProgress(0).snapshot(), ErrEmptyPlan
	}

	tracker := newProgress(len(plan.Steps))
	runner.logger.Debug(
		sequenceStartedMessageConstant,
		zap.String(logFieldWorkingDirectoryConstant, plan.WorkingDirectory),
		zap.Int(logFieldStepCountConstant, len(plan.Steps)),
	)
	runner.observer.RunStarted(plan)
	tracker.begin()

	for stepIndex, step := range plan.Steps {
		if stepError := runner.runStep(executionContext, stepIndex, step, options); stepError != nil {
			failure := StepFailedError{StepIndex: stepIndex, StepName: step.DisplayName(), Cause: stepError}
			tracker.fail(failure)
			report := tracker.snapshot()
			runner.logger.Debug(
				sequenceFailedMessageConstant,
				zap.Int(logFieldStepIndexConstant, stepIndex),
				zap.String(logFieldStepNameConstant, step.DisplayName()),
				zap.Int(logFieldCompletedStepsConstant, report.CompletedSteps),
				zap.Error(stepError),
			)
			runner.observer.RunFinished(report)
			return report, failure
		}
		runner.observer.StepSucceeded(stepIndex, step)
		tracker.advance()
	}

	report := tracker.snapshot()
	runner.logger.Debug(sequenceCompletedMessageConstant, zap.Int(logFieldCompletedStepsConstant, report.CompletedSteps))
	runner.observer.RunFinished(report)
	return report, nil
}

func (runner *Runner) runStep(executionContext context.Context, stepIndex int, step Step, options RuntimeOptions) error {
	if contextError := executionContext.Err(); contextError != nil {
		return execshell.CommandExecutionError{Command: step.Command, Cause: contextError}
	}

	stepContext := executionContext
	if options.StepTimeout > 0 {
		var cancel context.CancelFunc
		stepContext, cancel = context.WithTimeout(executionContext, options.StepTimeout)
		defer cancel()
	}

	runner.logger.Debug(stepStartedMessageConstant, zap.Int(logFieldStepIndexConstant, stepIndex), zap.String(logFieldStepNameConstant, step.DisplayName()))
	runner.observer.StepStarted(stepIndex, step)

	if _, executionError := runner.executor.Execute(stepContext, step.Command); executionError != nil {
		return executionError
	}

	runner.logger.Debug(stepSucceededMessageConstant, zap.Int(logFieldStepIndexConstant, stepIndex), zap.String(logFieldStepNameConstant, step.DisplayName()))
	return nil
}

type noopProgressObserver struct{}

func (noopProgressObserver) RunStarted(Plan) {}

func (noopProgressObserver) StepStarted(int, Step) {}

func (noopProgressObserver) StepSucceeded(int, Step) {}

func (noopProgressObserver) RunFinished(Report) {}
