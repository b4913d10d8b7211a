package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	temporaryRemoteNameConstant = "_auditor_temp_remote"

	comparisonIntroTemplateConstant = "Comparing repositories:\n  A: %s\n  B: %s\n\n"
	fetchingHistoriesMessage        = "Fetching histories to find common ancestor...\n"
	reportTitleConstant             = " Repository Divergence Report"
	reportRuleConstant              = "================================================================================"
	ancestorTemplateConstant        = "Common Ancestor: %s\n\n"

	firstSideLabelConstant  = "Repo A"
	secondSideLabelConstant = "Repo B"

	repositoryHeaderConstant = "Repository"
	insertionsHeaderConstant = "Insertions"
	deletionsHeaderConstant  = "Deletions"
	totalHeaderConstant      = "Total Lines Changed"

	moreChangesTemplateConstant   = "\nConclusion: %s (%s) has had more changes since the split.\n"
	similarChangesMessageConstant = "\nConclusion: Both repositories have had a similar amount of change since the split.\n"

	notARepositoryTemplateConstant = "%s is not a git repository"
	fetchFailureTemplateConstant   = "failed to fetch from temporary remote: %w"
)

// ErrNoCommonAncestor indicates the two checked out branches share no history.
var ErrNoCommonAncestor = errors.New("no common ancestor commit between the current branches")

// ErrManagerNotConfigured indicates Service construction without a repository manager.
var ErrManagerNotConfigured = errors.New("repository manager not configured")

// Service compares two repository checkouts and prints a divergence report.
type Service struct {
	repositoryManager GitRepositoryManager
	outputWriter      io.Writer
	errorWriter       io.Writer
}

// NewService constructs a comparison Service using the provided dependencies.
func NewService(repositoryManager GitRepositoryManager, outputWriter io.Writer, errorWriter io.Writer) (*Service, error) {
	if repositoryManager == nil {
		return nil, ErrManagerNotConfigured
	}
	return &Service{
		repositoryManager: repositoryManager,
		outputWriter:      outputWriter,
		errorWriter:       errorWriter,
	}, nil
}

// CompareRepositories measures the divergence between the two checkouts and
// writes the report. The temporary remote registered in the first repository
// is removed before returning, including on error paths.
func (service *Service) CompareRepositories(executionContext context.Context, firstRepositoryPath string, secondRepositoryPath string) error {
	fmt.Fprintf(service.outputWriter, comparisonIntroTemplateConstant, firstRepositoryPath, secondRepositoryPath)

	result, comparisonError := service.computeDivergence(executionContext, firstRepositoryPath, secondRepositoryPath)
	if comparisonError != nil {
		return comparisonError
	}

	service.printReport(result)
	return nil
}

func (service *Service) computeDivergence(executionContext context.Context, firstRepositoryPath string, secondRepositoryPath string) (DivergenceResult, error) {
	for _, repositoryPath := range []string{firstRepositoryPath, secondRepositoryPath} {
		insideWorkTree, probeError := service.repositoryManager.IsGitRepository(executionContext, repositoryPath)
		if probeError != nil {
			return DivergenceResult{}, probeError
		}
		if !insideWorkTree {
			return DivergenceResult{}, fmt.Errorf(notARepositoryTemplateConstant, repositoryPath)
		}
	}

	fmt.Fprint(service.outputWriter, fetchingHistoriesMessage)

	absoluteSecondPath, absoluteError := filepath.Abs(secondRepositoryPath)
	if absoluteError != nil {
		return DivergenceResult{}, absoluteError
	}

	if addError := service.repositoryManager.AddRemote(executionContext, firstRepositoryPath, temporaryRemoteNameConstant, absoluteSecondPath); addError != nil {
		return DivergenceResult{}, addError
	}
	defer func() {
		if removeError := service.repositoryManager.RemoveRemote(executionContext, firstRepositoryPath, temporaryRemoteNameConstant); removeError != nil {
			fmt.Fprintf(service.errorWriter, "Warning: could not remove temporary remote: %v\n", removeError)
		}
	}()

	if fetchError := service.repositoryManager.FetchRemote(executionContext, firstRepositoryPath, temporaryRemoteNameConstant); fetchError != nil {
		return DivergenceResult{}, fmt.Errorf(fetchFailureTemplateConstant, fetchError)
	}

	firstBranch, firstBranchError := service.repositoryManager.GetCurrentBranch(executionContext, firstRepositoryPath)
	if firstBranchError != nil {
		return DivergenceResult{}, firstBranchError
	}
	secondBranch, secondBranchError := service.repositoryManager.GetCurrentBranch(executionContext, secondRepositoryPath)
	if secondBranchError != nil {
		return DivergenceResult{}, secondBranchError
	}

	ancestorHash, mergeBaseError := service.repositoryManager.MergeBase(executionContext, firstRepositoryPath, firstBranch, temporaryRemoteNameConstant+"/"+secondBranch)
	if mergeBaseError != nil || len(strings.TrimSpace(ancestorHash)) == 0 {
		return DivergenceResult{}, ErrNoCommonAncestor
	}

	firstShortstat, firstDiffError := service.repositoryManager.DiffShortstat(executionContext, firstRepositoryPath, ancestorHash)
	if firstDiffError != nil {
		return DivergenceResult{}, firstDiffError
	}
	secondShortstat, secondDiffError := service.repositoryManager.DiffShortstat(executionContext, secondRepositoryPath, ancestorHash)
	if secondDiffError != nil {
		return DivergenceResult{}, secondDiffError
	}

	ancestorSummary, summaryError := service.repositoryManager.ShowCommitSummary(executionContext, firstRepositoryPath, ancestorHash)
	if summaryError != nil {
		ancestorSummary = ancestorHash
	}

	return DivergenceResult{
		FirstRepositoryPath:  firstRepositoryPath,
		SecondRepositoryPath: secondRepositoryPath,
		AncestorSummary:      ancestorSummary,
		FirstStats:           parseShortstat(firstShortstat),
		SecondStats:          parseShortstat(secondShortstat),
	}, nil
}

func (service *Service) printReport(result DivergenceResult) {
	fmt.Fprintln(service.outputWriter)
	fmt.Fprintln(service.outputWriter, reportRuleConstant)
	fmt.Fprintln(service.outputWriter, reportTitleConstant)
	fmt.Fprintln(service.outputWriter, reportRuleConstant)
	fmt.Fprintf(service.outputWriter, ancestorTemplateConstant, result.AncestorSummary)

	divergenceTable := table.New().
		Headers("", repositoryHeaderConstant, insertionsHeaderConstant, deletionsHeaderConstant, totalHeaderConstant).
		Row(firstSideLabelConstant, filepath.Base(result.FirstRepositoryPath), fmt.Sprintf("+%d", result.FirstStats.Insertions), fmt.Sprintf("-%d", result.FirstStats.Deletions), fmt.Sprintf("%d", result.FirstStats.TotalChanged())).
		Row(secondSideLabelConstant, filepath.Base(result.SecondRepositoryPath), fmt.Sprintf("+%d", result.SecondStats.Insertions), fmt.Sprintf("-%d", result.SecondStats.Deletions), fmt.Sprintf("%d", result.SecondStats.TotalChanged())).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(rowIndex, columnIndex int) lipgloss.Style {
			if rowIndex == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})
	fmt.Fprintln(service.outputWriter, strings.TrimRight(divergenceTable.String(), "\n"))

	firstTotal := result.FirstStats.TotalChanged()
	secondTotal := result.SecondStats.TotalChanged()
	switch {
	case firstTotal > secondTotal:
		fmt.Fprintf(service.outputWriter, moreChangesTemplateConstant, firstSideLabelConstant, filepath.Base(result.FirstRepositoryPath))
	case secondTotal > firstTotal:
		fmt.Fprintf(service.outputWriter, moreChangesTemplateConstant, secondSideLabelConstant, filepath.Base(result.SecondRepositoryPath))
	default:
		fmt.Fprint(service.outputWriter, similarChangesMessageConstant)
	}
	fmt.Fprintln(service.outputWriter, reportRuleConstant)
}
