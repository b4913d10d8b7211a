package gitrepo

import (
	"context"

	"github.com/temirov/repoaudit/internal/execshell"
)

// GitExecutor describes the subset of shell execution used by RepositoryManager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
