package compare_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoaudit/internal/compare"
)

const (
	firstRepositoryPathConstant  = "/work/project-alpha"
	secondRepositoryPathConstant = "/work/project-alpha-fork"
	temporaryRemoteNameConstant  = "_auditor_temp_remote"
	ancestorHashConstant         = "abc1234"
	ancestorSummaryConstant      = "abc1234 Initial layout"
)

type fakeRepositoryManager struct {
	repositories      map[string]bool
	branches          map[string]string
	mergeBaseOutput   string
	mergeBaseError    error
	shortstatOutputs  map[string]string
	commitSummary     string
	commitSummaryErr  error
	fetchError        error
	removeRemoteError error

	operationLog []string
}

func newFakeRepositoryManager() *fakeRepositoryManager {
	return &fakeRepositoryManager{
		repositories: map[string]bool{
			firstRepositoryPathConstant:  true,
			secondRepositoryPathConstant: true,
		},
		branches: map[string]string{
			firstRepositoryPathConstant:  "main",
			secondRepositoryPathConstant: "develop",
		},
		mergeBaseOutput: ancestorHashConstant,
		shortstatOutputs: map[string]string{
			firstRepositoryPathConstant:  " 2 files changed, 5 insertions(+), 2 deletions(-)",
			secondRepositoryPathConstant: " 1 file changed, 1 insertion(+)",
		},
		commitSummary: ancestorSummaryConstant,
	}
}

func (manager *fakeRepositoryManager) IsGitRepository(_ context.Context, repositoryPath string) (bool, error) {
	manager.operationLog = append(manager.operationLog, "probe "+repositoryPath)
	return manager.repositories[repositoryPath], nil
}

func (manager *fakeRepositoryManager) GetCurrentBranch(_ context.Context, repositoryPath string) (string, error) {
	manager.operationLog = append(manager.operationLog, "branch "+repositoryPath)
	return manager.branches[repositoryPath], nil
}

func (manager *fakeRepositoryManager) AddRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf("add-remote %s %s %s", repositoryPath, remoteName, remoteURL))
	return nil
}

func (manager *fakeRepositoryManager) RemoveRemote(_ context.Context, repositoryPath string, remoteName string) error {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf("remove-remote %s %s", repositoryPath, remoteName))
	return manager.removeRemoteError
}

func (manager *fakeRepositoryManager) FetchRemote(_ context.Context, repositoryPath string, remoteName string) error {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf("fetch %s %s", repositoryPath, remoteName))
	return manager.fetchError
}

func (manager *fakeRepositoryManager) MergeBase(_ context.Context, repositoryPath string, firstReference string, secondReference string) (string, error) {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf("merge-base %s %s %s", repositoryPath, firstReference, secondReference))
	return manager.mergeBaseOutput, manager.mergeBaseError
}

func (manager *fakeRepositoryManager) DiffShortstat(_ context.Context, repositoryPath string, reference string) (string, error) {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf("diff %s %s", repositoryPath, reference))
	return manager.shortstatOutputs[repositoryPath], nil
}

func (manager *fakeRepositoryManager) ShowCommitSummary(_ context.Context, repositoryPath string, reference string) (string, error) {
	manager.operationLog = append(manager.operationLog, fmt.Sprintf("show %s %s", repositoryPath, reference))
	return manager.commitSummary, manager.commitSummaryErr
}

func TestNewServiceRequiresRepositoryManager(testInstance *testing.T) {
	service, constructionError := compare.NewService(nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(testInstance, constructionError, compare.ErrManagerNotConfigured)
	require.Nil(testInstance, service)
}

func TestServiceComparesRepositories(testInstance *testing.T) {
	repositoryManager := newFakeRepositoryManager()
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	service, constructionError := compare.NewService(repositoryManager, outputBuffer, errorBuffer)
	require.NoError(testInstance, constructionError)

	comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
	require.NoError(testInstance, comparisonError)

	reportOutput := outputBuffer.String()
	require.Contains(testInstance, reportOutput, "Comparing repositories:")
	require.Contains(testInstance, reportOutput, "A: "+firstRepositoryPathConstant)
	require.Contains(testInstance, reportOutput, "B: "+secondRepositoryPathConstant)
	require.Contains(testInstance, reportOutput, "Fetching histories to find common ancestor...")
	require.Contains(testInstance, reportOutput, "Repository Divergence Report")
	require.Contains(testInstance, reportOutput, "Common Ancestor: "+ancestorSummaryConstant)
	require.Contains(testInstance, reportOutput, "+5")
	require.Contains(testInstance, reportOutput, "-2")
	require.Contains(testInstance, reportOutput, "Conclusion: Repo A (project-alpha) has had more changes since the split.")
	require.Empty(testInstance, errorBuffer.String())

	absoluteSecondPath, absoluteError := filepath.Abs(secondRepositoryPathConstant)
	require.NoError(testInstance, absoluteError)
	require.Equal(testInstance, []string{
		"probe " + firstRepositoryPathConstant,
		"probe " + secondRepositoryPathConstant,
		fmt.Sprintf("add-remote %s %s %s", firstRepositoryPathConstant, temporaryRemoteNameConstant, absoluteSecondPath),
		fmt.Sprintf("fetch %s %s", firstRepositoryPathConstant, temporaryRemoteNameConstant),
		"branch " + firstRepositoryPathConstant,
		"branch " + secondRepositoryPathConstant,
		fmt.Sprintf("merge-base %s main %s/develop", firstRepositoryPathConstant, temporaryRemoteNameConstant),
		fmt.Sprintf("diff %s %s", firstRepositoryPathConstant, ancestorHashConstant),
		fmt.Sprintf("diff %s %s", secondRepositoryPathConstant, ancestorHashConstant),
		fmt.Sprintf("show %s %s", firstRepositoryPathConstant, ancestorHashConstant),
		fmt.Sprintf("remove-remote %s %s", firstRepositoryPathConstant, temporaryRemoteNameConstant),
	}, repositoryManager.operationLog)
}

func TestServiceReportsSecondRepositoryWinningAndParity(testInstance *testing.T) {
	testCases := []struct {
		name             string
		firstShortstat   string
		secondShortstat  string
		expectedFragment string
	}{
		{
			name:             "second_side_has_more_changes",
			firstShortstat:   " 1 file changed, 1 insertion(+)",
			secondShortstat:  " 4 files changed, 30 insertions(+), 10 deletions(-)",
			expectedFragment: "Conclusion: Repo B (project-alpha-fork) has had more changes since the split.",
		},
		{
			name:             "both_sides_changed_equally",
			firstShortstat:   " 1 file changed, 3 insertions(+)",
			secondShortstat:  " 1 file changed, 2 insertions(+), 1 deletion(-)",
			expectedFragment: "Conclusion: Both repositories have had a similar amount of change since the split.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testFramework *testing.T) {
			repositoryManager := newFakeRepositoryManager()
			repositoryManager.shortstatOutputs[firstRepositoryPathConstant] = testCase.firstShortstat
			repositoryManager.shortstatOutputs[secondRepositoryPathConstant] = testCase.secondShortstat
			outputBuffer := &bytes.Buffer{}

			service, constructionError := compare.NewService(repositoryManager, outputBuffer, &bytes.Buffer{})
			require.NoError(testFramework, constructionError)

			comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
			require.NoError(testFramework, comparisonError)
			require.Contains(testFramework, outputBuffer.String(), testCase.expectedFragment)
		})
	}
}

func TestServiceRejectsNonRepositoryPaths(testInstance *testing.T) {
	repositoryManager := newFakeRepositoryManager()
	repositoryManager.repositories[secondRepositoryPathConstant] = false

	service, constructionError := compare.NewService(repositoryManager, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(testInstance, constructionError)

	comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
	require.Error(testInstance, comparisonError)
	require.Contains(testInstance, comparisonError.Error(), secondRepositoryPathConstant+" is not a git repository")
	require.NotContains(testInstance, repositoryManager.operationLog, fmt.Sprintf("add-remote %s %s", firstRepositoryPathConstant, temporaryRemoteNameConstant))
}

func TestServiceRemovesTemporaryRemoteWhenFetchFails(testInstance *testing.T) {
	repositoryManager := newFakeRepositoryManager()
	repositoryManager.fetchError = errors.New("remote hung up unexpectedly")

	service, constructionError := compare.NewService(repositoryManager, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(testInstance, constructionError)

	comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
	require.Error(testInstance, comparisonError)
	require.Contains(testInstance, comparisonError.Error(), "failed to fetch from temporary remote")
	require.Contains(testInstance, repositoryManager.operationLog, fmt.Sprintf("remove-remote %s %s", firstRepositoryPathConstant, temporaryRemoteNameConstant))
}

func TestServiceReportsMissingCommonAncestor(testInstance *testing.T) {
	testCases := []struct {
		name            string
		mergeBaseOutput string
		mergeBaseError  error
	}{
		{name: "merge_base_command_fails", mergeBaseError: errors.New("fatal: no merge base")},
		{name: "merge_base_output_blank", mergeBaseOutput: "  \n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testFramework *testing.T) {
			repositoryManager := newFakeRepositoryManager()
			repositoryManager.mergeBaseOutput = testCase.mergeBaseOutput
			repositoryManager.mergeBaseError = testCase.mergeBaseError

			service, constructionError := compare.NewService(repositoryManager, &bytes.Buffer{}, &bytes.Buffer{})
			require.NoError(testFramework, constructionError)

			comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
			require.ErrorIs(testFramework, comparisonError, compare.ErrNoCommonAncestor)
			require.Contains(testFramework, repositoryManager.operationLog, fmt.Sprintf("remove-remote %s %s", firstRepositoryPathConstant, temporaryRemoteNameConstant))
		})
	}
}

func TestServiceFallsBackToHashWhenCommitSummaryFails(testInstance *testing.T) {
	repositoryManager := newFakeRepositoryManager()
	repositoryManager.commitSummaryErr = errors.New("object not found")
	outputBuffer := &bytes.Buffer{}

	service, constructionError := compare.NewService(repositoryManager, outputBuffer, &bytes.Buffer{})
	require.NoError(testInstance, constructionError)

	comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
	require.NoError(testInstance, comparisonError)
	require.Contains(testInstance, outputBuffer.String(), "Common Ancestor: "+ancestorHashConstant)
}

func TestServiceWarnsWhenTemporaryRemoteRemovalFails(testInstance *testing.T) {
	repositoryManager := newFakeRepositoryManager()
	repositoryManager.removeRemoteError = errors.New("remote not found")
	errorBuffer := &bytes.Buffer{}

	service, constructionError := compare.NewService(repositoryManager, &bytes.Buffer{}, errorBuffer)
	require.NoError(testInstance, constructionError)

	comparisonError := service.CompareRepositories(context.Background(), firstRepositoryPathConstant, secondRepositoryPathConstant)
	require.NoError(testInstance, comparisonError)
	require.Contains(testInstance, errorBuffer.String(), "Warning: could not remove temporary remote")
}
