package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant  = "rev-parse"
	gitStatusSubcommandNameConstant    = "status"
	gitLogSubcommandNameConstant       = "log"
	gitBranchSubcommandNameConstant    = "branch"
	gitRemoteSubcommandNameConstant    = "remote"
	gitFetchSubcommandNameConstant     = "fetch"
	gitMergeBaseSubcommandNameConstant = "merge-base"
	gitDiffSubcommandNameConstant      = "diff"
	gitShowSubcommandNameConstant      = "show"
	gitWorkTreeFlagConstant            = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant           = "--abbrev-ref"
	gitRemoteAddSubcommandNameConstant = "add"
	gitRemoteRemoveSubcommandConstant  = "remove"
	gitFetchAllRemotesLabelConstant    = "all remotes"
)

const (
	gitWorkTreeStartTemplateConstant            = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant          = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant          = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant = "Could not analyze %s: %s"
	gitCurrentBranchStartTemplateConstant       = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant     = "Current branch in %s is %s"
	gitCurrentBranchDetachedTemplateConstant    = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant     = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecFailureTemplate         = "Unable to identify current branch in %s: %s"
	gitStatusStartTemplateConstant              = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant            = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant            = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant   = "Unable to review working tree status in %s: %s"
	gitLogStartTemplateConstant                 = "Reading commit history in %s"
	gitLogSuccessTemplateConstant               = "Read commit history in %s"
	gitLogFailureTemplateConstant               = "Failed to read commit history in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant      = "Unable to read commit history in %s: %s"
	gitBranchStartTemplateConstant              = "Listing branch tracking state in %s"
	gitBranchSuccessTemplateConstant            = "Listed branch tracking state in %s"
	gitBranchFailureTemplateConstant            = "Failed to list branch tracking state in %s (exit code %d%s)"
	gitBranchExecutionFailureTemplateConstant   = "Unable to list branch tracking state in %s: %s"
	gitRemoteListStartTemplateConstant          = "Listing remotes for %s"
	gitRemoteListSuccessTemplateConstant        = "Listed remotes for %s"
	gitRemoteListFailureTemplateConstant        = "Failed to list remotes for %s (exit code %d%s)"
	gitRemoteListExecutionFailureTemplate       = "Unable to list remotes for %s: %s"
	gitRemoteAddStartTemplateConstant           = "Registering remote %s in %s"
	gitRemoteAddSuccessTemplateConstant         = "Registered remote %s in %s"
	gitRemoteAddFailureTemplateConstant         = "Failed to register remote %s in %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplate        = "Unable to register remote %s in %s: %s"
	gitRemoteRemoveStartTemplateConstant        = "Removing remote %s from %s"
	gitRemoteRemoveSuccessTemplateConstant      = "Removed remote %s from %s"
	gitRemoteRemoveFailureTemplateConstant      = "Failed to remove remote %s from %s (exit code %d%s)"
	gitRemoteRemoveExecutionFailureTemplate     = "Unable to remove remote %s from %s: %s"
	gitFetchStartTemplateConstant               = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant             = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant             = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant    = "Unable to fetch from %s in %s: %s"
	gitMergeBaseStartTemplateConstant           = "Resolving common ancestor of %s and %s in %s"
	gitMergeBaseSuccessTemplateConstant         = "Common ancestor of %s and %s in %s resolved"
	gitMergeBaseFailureTemplateConstant         = "No common ancestor of %s and %s in %s (exit code %d%s)"
	gitMergeBaseExecutionFailureTemplate        = "Unable to resolve common ancestor of %s and %s in %s: %s"
	gitDiffStartTemplateConstant                = "Summarizing changes against %s in %s"
	gitDiffSuccessTemplateConstant              = "Summarized changes against %s in %s"
	gitDiffFailureTemplateConstant              = "Failed to summarize changes against %s in %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant     = "Unable to summarize changes against %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.describeByDirectory(command, result, failure, stage, gitStatusStartTemplateConstant, gitStatusSuccessTemplateConstant, gitStatusFailureTemplateConstant, gitStatusExecutionFailureTemplateConstant)
	case gitLogSubcommandNameConstant, gitShowSubcommandNameConstant:
		return formatter.describeByDirectory(command, result, failure, stage, gitLogStartTemplateConstant, gitLogSuccessTemplateConstant, gitLogFailureTemplateConstant, gitLogExecutionFailureTemplateConstant)
	case gitBranchSubcommandNameConstant:
		return formatter.describeByDirectory(command, result, failure, stage, gitBranchStartTemplateConstant, gitBranchSuccessTemplateConstant, gitBranchFailureTemplateConstant, gitBranchExecutionFailureTemplateConstant)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitMergeBaseSubcommandNameConstant:
		return formatter.describeGitMergeBaseMessage(command, result, failure, stage)
	case gitDiffSubcommandNameConstant:
		return formatter.describeGitDiffMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeByDirectory(
	command ShellCommand,
	result ExecutionResult,
	failure error,
	stage messageStage,
	startTemplate string,
	successTemplate string,
	failureTemplate string,
	executionFailureTemplate string,
) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmed := strings.TrimSpace(result.StandardOutput)
			if len(trimmed) == 0 || strings.EqualFold(trimmed, "HEAD") {
				return fmt.Sprintf(gitCurrentBranchDetachedTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmed)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecFailureTemplate, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(arguments) > 1 {
		subcommand := strings.TrimSpace(arguments[1])
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		switch subcommand {
		case gitRemoteAddSubcommandNameConstant:
			switch stage {
			case messageStageStart:
				return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, workingDirectory)
			case messageStageSuccess:
				return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, workingDirectory)
			case messageStageFailure:
				return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			case messageStageExecutionFailure:
				return fmt.Sprintf(gitRemoteAddExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
			}
		case gitRemoteRemoveSubcommandConstant:
			switch stage {
			case messageStageStart:
				return fmt.Sprintf(gitRemoteRemoveStartTemplateConstant, remoteName, workingDirectory)
			case messageStageSuccess:
				return fmt.Sprintf(gitRemoteRemoveSuccessTemplateConstant, remoteName, workingDirectory)
			case messageStageFailure:
				return fmt.Sprintf(gitRemoteRemoveFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			case messageStageExecutionFailure:
				return fmt.Sprintf(gitRemoteRemoveExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
			}
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteListStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteListSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteListFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteListExecutionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := strings.TrimSpace(formatter.firstPositionalArgument(command.Details.Arguments[1:]))
	if len(remoteName) == 0 {
		remoteName = gitFetchAllRemotesLabelConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMergeBaseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	firstReference := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 1))
	secondReference := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 2))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitMergeBaseStartTemplateConstant, firstReference, secondReference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitMergeBaseSuccessTemplateConstant, firstReference, secondReference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitMergeBaseFailureTemplateConstant, firstReference, secondReference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitMergeBaseExecutionFailureTemplate, firstReference, secondReference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitDiffMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	reference := formatter.ensureValue(formatter.firstPositionalArgument(command.Details.Arguments[1:]))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDiffStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitDiffSuccessTemplateConstant, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitDiffFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitDiffExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := command.String() + formatter.formatWorkingDirectorySuffix(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return commandLabel
	}
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return ""
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return ""
	}
	return arguments[index]
}

func (formatter CommandMessageFormatter) firstPositionalArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return ""
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func containsArgument(arguments []string, target string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == target {
			return true
		}
	}
	return false
}
