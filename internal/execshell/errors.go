package execshell

import (
	"context"
	"errors"
	"fmt"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor requires a logger"
	commandRunnerNotConfiguredMessageConstant = "shell executor requires a command runner"
	commandFailedTemplateConstant             = "Command failed with exit code %d"
	launchFailureTemplateConstant             = "Failed to start process: %s"
	interruptedTemplateConstant               = "Command interrupted: %s"
	unknownFailureMessageConstant             = "unknown error"
)

// ErrLoggerNotConfigured indicates that a ShellExecutor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates that a ShellExecutor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandFailedError reports a process that ran and exited with a non-zero status.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the exit status.
func (failure CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailedTemplateConstant, failure.Result.ExitCode)
}

// ExitCode returns the status the process exited with.
func (failure CommandFailedError) ExitCode() int {
	return failure.Result.ExitCode
}

// CommandExecutionError reports a process that could not be started or was interrupted.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the underlying operating system failure.
func (failure CommandExecutionError) Error() string {
	if failure.Cause == nil {
		return fmt.Sprintf(launchFailureTemplateConstant, unknownFailureMessageConstant)
	}
	if failure.Interrupted() {
		return fmt.Sprintf(interruptedTemplateConstant, failure.Cause.Error())
	}
	return fmt.Sprintf(launchFailureTemplateConstant, failure.Cause.Error())
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// Interrupted reports whether the process was stopped by context cancellation or deadline.
func (failure CommandExecutionError) Interrupted() bool {
	return errors.Is(failure.Cause, context.Canceled) || errors.Is(failure.Cause, context.DeadlineExceeded)
}
