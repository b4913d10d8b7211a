package audit

import (
	"context"
	"io"

	"github.com/temirov/repoaudit/internal/gitrepo"
	"github.com/temirov/repoaudit/internal/repos/discovery"
)

// RepositoryDiscoverer finds git repositories rooted under the provided paths.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]discovery.RepositoryRecord, []string, error)
}

// GitRepositoryManager exposes repository-level git operations used by the audit command.
type GitRepositoryManager interface {
	IsGitRepository(executionContext context.Context, repositoryPath string) (bool, error)
	ListRemotes(executionContext context.Context, repositoryPath string) ([]gitrepo.RemoteListing, error)
	GetWorkingTreeStatus(executionContext context.Context, repositoryPath string) (string, error)
	HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	GetLastCommitTimestamp(executionContext context.Context, repositoryPath string) (string, error)
	GetBranchTrackingDetails(executionContext context.Context, repositoryPath string) (string, error)
	FetchAllRemotes(executionContext context.Context, repositoryPath string) error
}

// ReportRenderer turns collected repository statuses into report output.
type ReportRenderer interface {
	RenderTable(destination io.Writer, statuses []RepositoryStatus, options RenderOptions) error
	RenderHTML(destination io.Writer, statuses []RepositoryStatus, options RenderOptions) error
}

// DivergenceComparator compares two repository checkouts and reports how far they drifted.
type DivergenceComparator interface {
	CompareRepositories(executionContext context.Context, firstRepositoryPath string, secondRepositoryPath string) error
}
