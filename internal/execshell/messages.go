package execshell

import (
	"fmt"
	"strings"
)

const (
	startedTemplateConstant                = "Running %s"
	completedTemplateConstant              = "Completed %s"
	failedTemplateConstant                 = "%s failed with exit code %d"
	executionFailedTemplateConstant        = "%s failed: %s"
	workingDirectorySuffixTemplateConstant = " (in %s)"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return fmt.Sprintf(startedTemplateConstant, formatter.FormatCommandLabel(command))
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return fmt.Sprintf(completedTemplateConstant, formatter.FormatCommandLabel(command))
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return fmt.Sprintf(failedTemplateConstant, formatter.FormatCommandLabel(command), result.ExitCode)
}

// BuildExecutionFailureMessage formats the message describing a command that could not run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(executionFailedTemplateConstant, formatter.FormatCommandLabel(command), failureMessage)
}

// FormatCommandLabel renders the command line with its working directory, when one is set.
func (formatter CommandMessageFormatter) FormatCommandLabel(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return command.CommandLine()
	}
	return command.CommandLine() + fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}
