package scan

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoaudit/internal/execshell"
	"github.com/temirov/repoaudit/internal/gitrepo"
	"github.com/temirov/repoaudit/internal/repos/dependencies"
	pathutils "github.com/temirov/repoaudit/internal/utils/path"
)

const (
	commandNameConstant     = "scan [search-path]"
	commandShortDescription = "List the working-tree status of every git repository under a directory"
	commandLongDescription  = "scan walks the search path, reads the porcelain status of every git repository " +
		"it finds, and prints a table of branch, ahead/behind counts, and staged, unstaged, " +
		"and untracked file counts."

	flagDirtyOnlyName            = "dirty-only"
	flagDirtyOnlyShorthand       = "d"
	flagDirtyOnlyDescription     = "only show repositories with changes (unpushed, unstaged, etc.)"
	flagCondensedName            = "condensed"
	flagCondensedShorthand       = "c"
	flagCondensedDescription     = "truncate long names for a compact table (optional width, default 40)"
	flagSuperCondensedName       = "super-condensed"
	flagSuperCondensedShorthand  = "C"
	flagSuperCondensedUsage      = "a more condensed view, equivalent to --condensed=25"
	condensedDefaultWidthLiteral = "40"

	defaultCondensedWidthConstant = 40
	superCondensedWidthConstant   = 25

	maximumPositionalArgumentsConstant = 1
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persistent scan configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            RepositoryDiscoverer
	GitExecutor           gitrepo.GitExecutor
	GitManager            GitRepositoryManager
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for the scan workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.run,
	}

	command.Flags().BoolP(flagDirtyOnlyName, flagDirtyOnlyShorthand, false, flagDirtyOnlyDescription)
	command.Flags().IntP(flagCondensedName, flagCondensedShorthand, defaultCondensedWidthConstant, flagCondensedDescription)
	command.Flags().Lookup(flagCondensedName).NoOptDefVal = condensedDefaultWidthLiteral
	command.Flags().BoolP(flagSuperCondensedName, flagSuperCondensedShorthand, false, flagSuperCondensedUsage)
	command.MarkFlagsMutuallyExclusive(flagCondensedName, flagSuperCondensedName)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command, arguments)
	logger := builder.resolveLogger()

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := builder.resolveGitManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(builder.resolveDiscoverer(), repositoryManager, command.OutOrStdout(), command.ErrOrStderr())
	if serviceError != nil {
		return serviceError
	}
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) CommandOptions {
	configuration := builder.resolveConfiguration()

	dirtyOnlyFlag, _ := command.Flags().GetBool(flagDirtyOnlyName)
	dirtyOnly := dirtyOnlyFlag || configuration.DirtyOnly

	condensedWidth := 0
	if superCondensedFlag, _ := command.Flags().GetBool(flagSuperCondensedName); superCondensedFlag {
		condensedWidth = superCondensedWidthConstant
	} else if command.Flags().Changed(flagCondensedName) {
		condensedWidth, _ = command.Flags().GetInt(flagCondensedName)
	}

	searchRoot := configuration.SearchRoot
	if len(arguments) > 0 {
		searchRoot = arguments[0]
	}
	searchRoot = pathutils.NewHomeExpander().Expand(searchRoot)

	return CommandOptions{
		SearchRoot:     searchRoot,
		DirtyOnly:      dirtyOnly,
		CondensedWidth: condensedWidth,
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
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

func (builder *CommandBuilder) resolveDiscoverer() RepositoryDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return dependencies.ResolveRepositoryDiscoverer(nil)
}

func (builder *CommandBuilder) resolveGitManager(gitExecutor gitrepo.GitExecutor) (GitRepositoryManager, error) {
	if builder.GitManager != nil {
		return builder.GitManager, nil
	}
	return dependencies.ResolveRepositoryManager(nil, gitExecutor)
}
