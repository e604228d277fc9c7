package execshell

// CommandEventObserver receives lifecycle notifications for a single step's process.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the process is launched.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the process exited, whatever its status.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process could not be started or was interrupted.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
