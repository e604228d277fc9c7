package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	processInterruptGracePeriodConstant    = 5 * time.Second
)

// ConsoleStreams describes the standard streams handed to child processes.
type ConsoleStreams struct {
	Input  io.Reader
	Output io.Writer
	Errors io.Writer
}

// StandardConsoleStreams returns the streams of the current process.
func StandardConsoleStreams() ConsoleStreams {
	return ConsoleStreams{Input: os.Stdin, Output: os.Stdout, Errors: os.Stderr}
}

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	streams ConsoleStreams
}

// NewOSCommandRunner constructs a runner that shares the current console with its children.
func NewOSCommandRunner() *OSCommandRunner {
	return NewOSCommandRunnerWithStreams(StandardConsoleStreams())
}

// NewOSCommandRunnerWithStreams constructs a runner that connects children to the provided streams.
func NewOSCommandRunnerWithStreams(streams ConsoleStreams) *OSCommandRunner {
	return &OSCommandRunner{streams: streams}
}

// Run executes the supplied command using os/exec and waits for it to exit.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		executable.Env = mergeEnvironment(os.Environ(), command.Details.EnvironmentVariables)
	}

	executable.Stdin = runner.streams.Input
	executable.Stdout = runner.streams.Output
	executable.Stderr = runner.streams.Errors

	// Dev servers get a chance to shut down cleanly before being killed.
	executable.Cancel = func() error {
		return executable.Process.Signal(os.Interrupt)
	}
	executable.WaitDelay = processInterruptGracePeriodConstant

	runError := executable.Run()
	if runError == nil {
		return ExecutionResult{ExitCode: 0}, nil
	}

	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}

	exitError := &exec.ExitError{}
	if errors.As(runError, &exitError) {
		return ExecutionResult{ExitCode: exitError.ExitCode()}, nil
	}

	return ExecutionResult{}, runError
}

func mergeEnvironment(baseEnvironment []string, overrides map[string]string) []string {
	overrideKeys := make([]string, 0, len(overrides))
	for environmentKey := range overrides {
		overrideKeys = append(overrideKeys, environmentKey)
	}
	sort.Strings(overrideKeys)

	mergedEnvironment := append([]string{}, baseEnvironment...)
	for _, environmentKey := range overrideKeys {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, overrides[environmentKey]))
	}
	return mergedEnvironment
}
