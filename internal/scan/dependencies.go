package scan

import (
	"context"

	"github.com/temirov/repoaudit/internal/repos/discovery"
)

// RepositoryDiscoverer finds git repositories rooted under the provided paths.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]discovery.RepositoryRecord, []string, error)
}

// GitRepositoryManager exposes the porcelain status lookup used by the scan command.
type GitRepositoryManager interface {
	GetPorcelainStatus(executionContext context.Context, repositoryPath string) (string, error)
}
