package execshell

import (
	"context"
	"strings"
)

const (
	commandLineJoinSeparatorConstant = " "
)

// CommandName identifies the executable launched for a command.
type CommandName string

// CommandDetails describes how a command is invoked.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand combines an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	ExitCode int
}

// CommandRunner launches a command and waits for it to exit.
//
// Implementations report a non-zero exit through ExecutionResult and reserve
// the error return for processes that could not be run at all.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandLine renders the executable followed by its arguments.
func (command ShellCommand) CommandLine() string {
	commandParts := make([]string, 0, len(command.Details.Arguments)+1)
	commandParts = append(commandParts, string(command.Name))
	commandParts = append(commandParts, command.Details.Arguments...)
	return strings.Join(commandParts, commandLineJoinSeparatorConstant)
}

// WithWorkingDirectory returns a copy of the command bound to the provided directory.
func (command ShellCommand) WithWorkingDirectory(workingDirectory string) ShellCommand {
	boundCommand := command.clone()
	boundCommand.Details.WorkingDirectory = workingDirectory
	return boundCommand
}

func (command ShellCommand) clone() ShellCommand {
	clonedCommand := ShellCommand{
		Name: command.Name,
		Details: CommandDetails{
			Arguments:        append([]string{}, command.Details.Arguments...),
			WorkingDirectory: command.Details.WorkingDirectory,
		},
	}
	if len(command.Details.EnvironmentVariables) > 0 {
		clonedCommand.Details.EnvironmentVariables = make(map[string]string, len(command.Details.EnvironmentVariables))
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			clonedCommand.Details.EnvironmentVariables[environmentKey] = environmentValue
		}
	}
	return clonedCommand
}
