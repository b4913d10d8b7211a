package audit

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoaudit/internal/execshell"
	"github.com/temirov/repoaudit/internal/gitrepo"
	"github.com/temirov/repoaudit/internal/repos/dependencies"
	pathutils "github.com/temirov/repoaudit/internal/utils/path"
)

const (
	commandNameConstant     = "audit [roots...]"
	commandShortDescription = "Report status for every git repository under the provided roots"
	commandLongDescription  = "audit walks the provided directories, inspects every git repository it finds, " +
		"and prints a status table covering hosting location, unpushed and unpulled commits, " +
		"local changes, and stale sibling checkouts."

	flagDetailedName         = "detailed"
	flagDetailedDescription  = "print a full fetch, status, and branch block per repository"
	flagHTMLName             = "html"
	flagHTMLDescription      = "render the report as a standalone HTML page"
	flagFullPathName         = "full-path"
	flagFullPathDescription  = "show absolute repository paths"
	flagRelativePathName     = "relative-path"
	flagRelativePathUsage    = "show repository paths relative to the home directory"
	flagNoPathName           = "no-path"
	flagNoPathDescription    = "omit the path column"
	flagDateName             = "date"
	flagDateDescription      = "include the last commit date"
	flagDateTimeName         = "datetime"
	flagDateTimeDescription  = "include the last commit date and time"
	flagCompareName          = "compare"
	flagCompareDescription   = "compare two repository checkouts instead of auditing (exactly two paths)"
	flagDirectoryName        = "dir"
	flagDirectoryDescription = "additional directory to audit (repeatable)"
	flagDebugName            = "debug"
	flagDebugDescription     = "emit discovery diagnostics on standard error"

	errorConflictingPathFlags = "at most one of --full-path, --relative-path, and --no-path may be set"
	errorConflictingDateFlags = "--date and --datetime are mutually exclusive"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persistent audit configuration.
type ConfigurationProvider func() CommandConfiguration

// ComparatorProvider constructs the divergence comparator used by --compare.
type ComparatorProvider func(logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) (DivergenceComparator, error)

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            RepositoryDiscoverer
	GitExecutor           gitrepo.GitExecutor
	GitManager            GitRepositoryManager
	Renderer              ReportRenderer
	ComparatorProvider    ComparatorProvider
	CommandEventsObserver execshell.CommandEventObserver
	Clock                 Clock
}

// Build constructs the cobra command for the repository audit workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagDetailedName, false, flagDetailedDescription)
	command.Flags().Bool(flagHTMLName, false, flagHTMLDescription)
	command.Flags().Bool(flagFullPathName, false, flagFullPathDescription)
	command.Flags().Bool(flagRelativePathName, false, flagRelativePathUsage)
	command.Flags().Bool(flagNoPathName, false, flagNoPathDescription)
	command.Flags().Bool(flagDateName, false, flagDateDescription)
	command.Flags().Bool(flagDateTimeName, false, flagDateTimeDescription)
	command.Flags().StringSlice(flagCompareName, nil, flagCompareDescription)
	command.Flags().StringArray(flagDirectoryName, nil, flagDirectoryDescription)
	command.Flags().Bool(flagDebugName, false, flagDebugDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := builder.resolveGitManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	discoverer := builder.resolveDiscoverer()

	comparator, comparatorError := builder.resolveComparator(logger, command.OutOrStdout(), command.ErrOrStderr())
	if comparatorError != nil {
		return comparatorError
	}

	service, serviceError := NewService(discoverer, repositoryManager, builder.Renderer, comparator, command.OutOrStdout(), command.ErrOrStderr(), builder.Clock)
	if serviceError != nil {
		return serviceError
	}
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (CommandOptions, error) {
	detailedFlag, _ := command.Flags().GetBool(flagDetailedName)
	htmlFlag, _ := command.Flags().GetBool(flagHTMLName)
	fullPathFlag, _ := command.Flags().GetBool(flagFullPathName)
	relativePathFlag, _ := command.Flags().GetBool(flagRelativePathName)
	noPathFlag, _ := command.Flags().GetBool(flagNoPathName)
	dateFlag, _ := command.Flags().GetBool(flagDateName)
	dateTimeFlag, _ := command.Flags().GetBool(flagDateTimeName)
	compareFlag, _ := command.Flags().GetStringSlice(flagCompareName)
	directoryFlag, _ := command.Flags().GetStringArray(flagDirectoryName)
	debugFlag, _ := command.Flags().GetBool(flagDebugName)

	pathModeCount := 0
	for _, pathModeSet := range []bool{fullPathFlag, relativePathFlag, noPathFlag} {
		if pathModeSet {
			pathModeCount++
		}
	}
	if pathModeCount > 1 {
		return CommandOptions{}, errors.New(errorConflictingPathFlags)
	}
	if dateFlag && dateTimeFlag {
		return CommandOptions{}, errors.New(errorConflictingDateFlags)
	}

	pathDisplayMode := PathDisplayShort
	switch {
	case fullPathFlag:
		pathDisplayMode = PathDisplayFull
	case relativePathFlag:
		pathDisplayMode = PathDisplayRelative
	case noPathFlag:
		pathDisplayMode = PathDisplayNone
	}

	commitDateMode := CommitDateHidden
	switch {
	case dateTimeFlag:
		commitDateMode = CommitDateDateTime
	case dateFlag:
		commitDateMode = CommitDateDateOnly
	}

	roots := append([]string{}, arguments...)
	roots = append(roots, directoryFlag...)
	if len(roots) == 0 && builder.ConfigurationProvider != nil {
		roots = builder.ConfigurationProvider().sanitize().Roots
	}
	roots = pathutils.NewSearchRootSanitizer().Sanitize(roots)

	options := CommandOptions{
		Roots:               roots,
		Detailed:            detailedFlag,
		HTMLOutput:          htmlFlag,
		PathDisplayMode:     pathDisplayMode,
		CommitDateMode:      commitDateMode,
		CompareRepositories: compareFlag,
		DebugOutput:         debugFlag,
		Clock:               builder.Clock,
	}

	return options, nil
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

func (builder *CommandBuilder) resolveComparator(logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) (DivergenceComparator, error) {
	if builder.ComparatorProvider == nil {
		return nil, nil
	}
	return builder.ComparatorProvider(logger, outputWriter, errorWriter)
}
