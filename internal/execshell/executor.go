package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	gitCommandNameConstant                  = "git"
	defaultCommandTimeoutConstant           = 30 * time.Second
	commandFailedErrorTemplateConstant      = "%s exited with code %d%s"
	commandExecutionErrorTemplateConstant   = "%s execution failed: %v"
	commandStandardErrorSuffixConstant      = ": %s"
	commandArgumentsJoinSeparatorConstant   = " "
	loggerNotConfiguredMessageConstant      = "logger not configured"
	commandRunnerNotConfiguredMessage       = "command runner not configured"
	commandLifecycleStandardOutputFieldName = "stdout_bytes"
	commandLifecycleExitCodeFieldName       = "exit_code"
)

// Validation errors reported by NewShellExecutor.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessage)
)

// CommandName identifies a supported executable.
type CommandName string

// Supported command enumerations.
const (
	CommandGit CommandName = CommandName(gitCommandNameConstant)
)

// CommandDetails describes a single git invocation: its arguments and the
// repository directory it runs in. Commands inherit the process environment.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// String renders the command the way it would appear on a shell prompt.
func (command ShellCommand) String() string {
	parts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		parts = append(parts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return strings.Join(parts, commandArgumentsJoinSeparatorConstant)
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failure including trimmed standard error output when present.
func (failedError CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(commandStandardErrorSuffixConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Command.String(), failedError.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all,
// including invocations cancelled by the execution timeout.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Command.String(), executionError.Cause)
}

// Unwrap exposes the underlying cause for errors.Is inspection.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ShellExecutor coordinates command construction, bounded execution, and logging.
type ShellExecutor struct {
	logger         *zap.Logger
	commandRunner  CommandRunner
	eventObserver  CommandEventObserver
	commandTimeout time.Duration
	formatter      CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor with the default command timeout.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithOptions(logger, commandRunner, nil, defaultCommandTimeoutConstant)
}

// NewShellExecutorWithOptions constructs a ShellExecutor with an optional event
// observer and a custom per-command timeout. A non-positive timeout falls back
// to the default.
func NewShellExecutorWithOptions(logger *zap.Logger, commandRunner CommandRunner, eventObserver CommandEventObserver, commandTimeout time.Duration) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if commandTimeout <= 0 {
		commandTimeout = defaultCommandTimeoutConstant
	}
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:         logger,
		commandRunner:  commandRunner,
		eventObserver:  eventObserver,
		commandTimeout: commandTimeout,
		formatter:      CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// Execute runs the supplied command under the executor's timeout, logging the
// lifecycle and converting failures into typed errors. A non-zero exit code is
// returned as CommandFailedError and a runner failure (including a timeout) as
// CommandExecutionError; neither ever escapes as a panic.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	boundedContext, cancelExecution := context.WithTimeout(executionContext, executor.commandTimeout)
	defer cancelExecution()

	executor.logger.Debug(executor.formatter.BuildStartedMessage(command))
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(boundedContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError))
		executor.eventObserver.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			executor.formatter.BuildFailureMessage(command, executionResult),
			zap.Int(commandLifecycleExitCodeFieldName, executionResult.ExitCode),
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		executor.formatter.BuildSuccessMessage(command),
		zap.Int(commandLifecycleStandardOutputFieldName, len(executionResult.StandardOutput)),
	)
	return executionResult, nil
}
