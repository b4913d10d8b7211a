// Package dependencies provides default constructors shared by the command builders.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/repoaudit/internal/execshell"
	"github.com/temirov/repoaudit/internal/gitrepo"
	"github.com/temirov/repoaudit/internal/repos/discovery"
)

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing *discovery.FilesystemRepositoryDiscoverer) *discovery.FilesystemRepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, eventObserver execshell.CommandEventObserver) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutorWithOptions(logger, commandRunner, eventObserver, 0)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveRepositoryManager(existing *gitrepo.RepositoryManager, executor gitrepo.GitExecutor) (*gitrepo.RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
