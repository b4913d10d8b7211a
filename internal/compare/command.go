package compare

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoaudit/internal/execshell"
	"github.com/temirov/repoaudit/internal/gitrepo"
	"github.com/temirov/repoaudit/internal/repos/dependencies"
)

const (
	commandNameConstant     = "compare <repository-a> <repository-b>"
	commandShortDescription = "Measure how far two checkouts of the same project have drifted apart"
	commandLongDescription  = "compare links the second repository into the first through a temporary remote, " +
		"finds the common ancestor of the two checked out branches, and reports the line " +
		"changes each side accumulated since the split."

	expectedArgumentCountConstant = 2
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the compare cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	GitExecutor           gitrepo.GitExecutor
	GitManager            GitRepositoryManager
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for the divergence comparison workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		Args:  cobra.ExactArgs(expectedArgumentCountConstant),
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := builder.resolveGitManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(repositoryManager, command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}
	return service.CompareRepositories(command.Context(), arguments[0], arguments[1])
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveGitManager(gitExecutor gitrepo.GitExecutor) (GitRepositoryManager, error) {
	if builder.GitManager != nil {
		return builder.GitManager, nil
	}
	return dependencies.ResolveRepositoryManager(nil, gitExecutor)
}
