package execshell

// CommandEventObserver receives lifecycle notifications for the git
// invocations the executor issues. The debug console logger in internal/ui is
// the only production implementation.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the invocation runs.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the invocation produced an execution result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the invocation could not produce a result at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver stands in when no observer is attached, keeping
// the executor's notification path unconditional.
type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
