package compare

import "context"

// GitRepositoryManager exposes the repository-level git operations used during comparison.
type GitRepositoryManager interface {
	IsGitRepository(executionContext context.Context, repositoryPath string) (bool, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	MergeBase(executionContext context.Context, repositoryPath string, firstReference string, secondReference string) (string, error)
	DiffShortstat(executionContext context.Context, repositoryPath string, reference string) (string, error)
	ShowCommitSummary(executionContext context.Context, repositoryPath string, reference string) (string, error)
}
