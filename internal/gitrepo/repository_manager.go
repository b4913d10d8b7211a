package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/repoaudit/internal/execshell"
)

const (
	requiredValueMessageConstant = "required value missing"

	gitRevParseCommandConstant         = "rev-parse"
	gitInsideWorkTreeFlagConstant      = "--is-inside-work-tree"
	gitAbbreviatedReferenceFlag        = "--abbrev-ref"
	gitHeadReferenceConstant           = "HEAD"
	gitStatusCommandConstant           = "status"
	gitShortStatusFlagConstant         = "-s"
	gitPorcelainStatusFlagConstant     = "--porcelain=v1"
	gitBranchHeaderFlagConstant        = "-b"
	gitLogCommandConstant              = "log"
	gitSingleEntryFlagConstant         = "-1"
	gitCommitterDateFormatFlagConstant = "--format=%cI"
	gitBranchCommandConstant           = "branch"
	gitVerboseTrackingFlagConstant     = "-vv"
	gitRemoteCommandConstant           = "remote"
	gitVerboseRemoteFlagConstant       = "-v"
	gitRemoteAddSubcommandConstant     = "add"
	gitRemoteRemoveSubcommandConstant  = "remove"
	gitFetchCommandConstant            = "fetch"
	gitFetchAllFlagConstant            = "--all"
	gitMergeBaseCommandConstant        = "merge-base"
	gitDiffCommandConstant             = "diff"
	gitShortstatFlagConstant           = "--shortstat"
	gitShowCommandConstant             = "show"
	gitSuppressDiffFlagConstant        = "-s"
	gitSummaryFormatFlagConstant       = "--format=%h %s"

	remoteFetchDirectionMarkerConstant = "(fetch)"
	remotePushDirectionMarkerConstant  = "(push)"
)

// ErrGitExecutorNotConfigured indicates RepositoryManager construction without an executor.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// RemoteDirection distinguishes fetch and push remote listings.
type RemoteDirection string

// Remote directions reported by git remote -v.
const (
	RemoteDirectionFetch RemoteDirection = RemoteDirection("fetch")
	RemoteDirectionPush  RemoteDirection = RemoteDirection("push")
)

// RemoteListing captures one line of git remote -v output.
type RemoteListing struct {
	Name      string
	URL       string
	Direction RemoteDirection
}

// RepositoryManager runs git subcommands against a repository working directory.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// IsGitRepository reports whether the path sits inside a git working tree. A
// non-zero exit code means the path is not a repository rather than an error.
func (manager *RepositoryManager) IsGitRepository(executionContext context.Context, repositoryPath string) (bool, error) {
	_, executionError := manager.runGit(executionContext, repositoryPath, gitRevParseCommandConstant, gitInsideWorkTreeFlagConstant)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// GetCurrentBranch resolves the checked out branch name, returning HEAD when detached.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitRevParseCommandConstant, gitAbbreviatedReferenceFlag, gitHeadReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(output), nil
}

// ListRemotes parses git remote -v into structured listings.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]RemoteListing, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitRemoteCommandConstant, gitVerboseRemoteFlagConstant)
	if executionError != nil {
		return nil, executionError
	}

	var listings []RemoteListing
	for _, outputLine := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		lineFields := strings.Fields(trimmedLine)
		if len(lineFields) < 2 {
			continue
		}
		listing := RemoteListing{Name: lineFields[0], URL: lineFields[1]}
		switch {
		case len(lineFields) > 2 && lineFields[2] == remoteFetchDirectionMarkerConstant:
			listing.Direction = RemoteDirectionFetch
		case len(lineFields) > 2 && lineFields[2] == remotePushDirectionMarkerConstant:
			listing.Direction = RemoteDirectionPush
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// GetWorkingTreeStatus returns the raw git status -s listing.
func (manager *RepositoryManager) GetWorkingTreeStatus(executionContext context.Context, repositoryPath string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitStatusCommandConstant, gitShortStatusFlagConstant)
	if executionError != nil {
		return "", executionError
	}
	return output, nil
}

// HasUncommittedChanges reports whether git status -s produced any entries.
func (manager *RepositoryManager) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	output, statusError := manager.GetWorkingTreeStatus(executionContext, repositoryPath)
	if statusError != nil {
		return false, statusError
	}
	return len(strings.TrimSpace(output)) > 0, nil
}

// GetLastCommitTimestamp returns the committer date of the newest commit in
// strict ISO 8601 form. Repositories without commits yield an empty string.
func (manager *RepositoryManager) GetLastCommitTimestamp(executionContext context.Context, repositoryPath string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitLogCommandConstant, gitSingleEntryFlagConstant, gitCommitterDateFormatFlagConstant)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return "", nil
		}
		return "", executionError
	}
	return strings.TrimSpace(output), nil
}

// GetBranchTrackingDetails returns the raw git branch -vv listing.
func (manager *RepositoryManager) GetBranchTrackingDetails(executionContext context.Context, repositoryPath string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitBranchCommandConstant, gitVerboseTrackingFlagConstant)
	if executionError != nil {
		return "", executionError
	}
	return output, nil
}

// GetPorcelainStatus returns the raw porcelain v1 status including the branch header.
func (manager *RepositoryManager) GetPorcelainStatus(executionContext context.Context, repositoryPath string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitStatusCommandConstant, gitPorcelainStatusFlagConstant, gitBranchHeaderFlagConstant)
	if executionError != nil {
		return "", executionError
	}
	return output, nil
}

// AddRemote registers a named remote pointing at the provided URL or path.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.runGit(executionContext, repositoryPath, gitRemoteCommandConstant, gitRemoteAddSubcommandConstant, remoteName, remoteURL)
	return executionError
}

// RemoveRemote deletes a named remote.
func (manager *RepositoryManager) RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	_, executionError := manager.runGit(executionContext, repositoryPath, gitRemoteCommandConstant, gitRemoteRemoveSubcommandConstant, remoteName)
	return executionError
}

// FetchRemote updates tracking references for the named remote.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	_, executionError := manager.runGit(executionContext, repositoryPath, gitFetchCommandConstant, remoteName)
	return executionError
}

// FetchAllRemotes updates tracking references for every configured remote.
func (manager *RepositoryManager) FetchAllRemotes(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.runGit(executionContext, repositoryPath, gitFetchCommandConstant, gitFetchAllFlagConstant)
	return executionError
}

// MergeBase resolves the best common ancestor of two references.
func (manager *RepositoryManager) MergeBase(executionContext context.Context, repositoryPath string, firstReference string, secondReference string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitMergeBaseCommandConstant, firstReference, secondReference)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(output), nil
}

// DiffShortstat summarizes changes between the reference and the working tree head.
func (manager *RepositoryManager) DiffShortstat(executionContext context.Context, repositoryPath string, reference string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitDiffCommandConstant, gitShortstatFlagConstant, reference)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(output), nil
}

// ShowCommitSummary returns the abbreviated hash and subject of the referenced commit.
func (manager *RepositoryManager) ShowCommitSummary(executionContext context.Context, repositoryPath string, reference string) (string, error) {
	output, executionError := manager.runGit(executionContext, repositoryPath, gitShowCommandConstant, gitSuppressDiffFlagConstant, gitSummaryFormatFlagConstant, reference)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(output), nil
}

func (manager *RepositoryManager) runGit(executionContext context.Context, repositoryPath string, arguments ...string) (string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return "", errors.New(requiredValueMessageConstant)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	}
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}
