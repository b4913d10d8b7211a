package scan

// RepositoryState summarizes the porcelain status of one repository.
type RepositoryState struct {
	Branch         string
	AheadCount     int
	BehindCount    int
	StagedCount    int
	UnstagedCount  int
	UntrackedCount int
}

// IsDirty reports whether the repository carries unpushed, unpulled,
// staged, unstaged, or untracked work.
func (state RepositoryState) IsDirty() bool {
	return state.AheadCount > 0 ||
		state.BehindCount > 0 ||
		state.StagedCount > 0 ||
		state.UnstagedCount > 0 ||
		state.UntrackedCount > 0
}

// CommandOptions carries the resolved scan invocation settings.
type CommandOptions struct {
	SearchRoot     string
	DirtyOnly      bool
	CondensedWidth int
}
