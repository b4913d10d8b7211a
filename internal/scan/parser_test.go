package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePorcelainStatus(testInstance *testing.T) {
	testCases := []struct {
		name            string
		porcelainOutput string
		expectedState   RepositoryState
	}{
		{
			name:            "clean_tracking_branch",
			porcelainOutput: "## main...origin/main",
			expectedState:   RepositoryState{Branch: "main"},
		},
		{
			name:            "ahead_and_behind_annotation",
			porcelainOutput: "## main...origin/main [ahead 3, behind 1]",
			expectedState:   RepositoryState{Branch: "main", AheadCount: 3, BehindCount: 1},
		},
		{
			name:            "ahead_only_annotation",
			porcelainOutput: "## feature/login...origin/feature/login [ahead 2]",
			expectedState:   RepositoryState{Branch: "feature/login", AheadCount: 2},
		},
		{
			name:            "behind_only_annotation",
			porcelainOutput: "## release...origin/release [behind 7]",
			expectedState:   RepositoryState{Branch: "release", BehindCount: 7},
		},
		{
			name:            "branch_without_upstream",
			porcelainOutput: "## experiment",
			expectedState:   RepositoryState{Branch: "experiment"},
		},
		{
			name:            "unborn_branch_keeps_full_phrase",
			porcelainOutput: "## No commits yet on main",
			expectedState:   RepositoryState{Branch: "No commits yet on main"},
		},
		{
			name: "counts_staged_unstaged_and_untracked_files",
			porcelainOutput: "## main...origin/main\n" +
				"M  staged.go\n" +
				" M unstaged.go\n" +
				"MM both.go\n" +
				"?? untracked.txt\n" +
				"?? another.txt",
			expectedState: RepositoryState{Branch: "main", StagedCount: 2, UnstagedCount: 2, UntrackedCount: 2},
		},
		{
			name: "renamed_and_deleted_entries",
			porcelainOutput: "## main...origin/main [ahead 1]\n" +
				"R  old.go -> new.go\n" +
				" D removed.go",
			expectedState: RepositoryState{Branch: "main", AheadCount: 1, StagedCount: 1, UnstagedCount: 1},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testFramework *testing.T) {
			require.Equal(testFramework, testCase.expectedState, parsePorcelainStatus(testCase.porcelainOutput))
		})
	}
}

func TestRepositoryStateIsDirty(testInstance *testing.T) {
	testCases := []struct {
		name          string
		state         RepositoryState
		expectedDirty bool
	}{
		{name: "clean_repository", state: RepositoryState{Branch: "main"}, expectedDirty: false},
		{name: "ahead_counts_as_dirty", state: RepositoryState{Branch: "main", AheadCount: 1}, expectedDirty: true},
		{name: "behind_counts_as_dirty", state: RepositoryState{Branch: "main", BehindCount: 2}, expectedDirty: true},
		{name: "staged_counts_as_dirty", state: RepositoryState{Branch: "main", StagedCount: 1}, expectedDirty: true},
		{name: "unstaged_counts_as_dirty", state: RepositoryState{Branch: "main", UnstagedCount: 1}, expectedDirty: true},
		{name: "untracked_counts_as_dirty", state: RepositoryState{Branch: "main", UntrackedCount: 1}, expectedDirty: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testFramework *testing.T) {
			require.Equal(testFramework, testCase.expectedDirty, testCase.state.IsDirty())
		})
	}
}

func TestTruncateCell(testInstance *testing.T) {
	testCases := []struct {
		name           string
		text           string
		condensedWidth int
		expectedText   string
	}{
		{name: "zero_width_disables_truncation", text: "a-very-long-repository-name", condensedWidth: 0, expectedText: "a-very-long-repository-name"},
		{name: "short_text_unchanged", text: "api", condensedWidth: 10, expectedText: "api"},
		{name: "text_at_width_unchanged", text: "0123456789", condensedWidth: 10, expectedText: "0123456789"},
		{name: "long_text_truncated_with_ellipsis", text: "0123456789A", condensedWidth: 10, expectedText: "0123456..."},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testFramework *testing.T) {
			require.Equal(testFramework, testCase.expectedText, truncateCell(testCase.text, testCase.condensedWidth))
		})
	}
}
