package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	defaultSearchRootConstant     = "."
	currentDirectoryIndicator     = "."
	truncationSuffixConstant      = "..."
	truncationSuffixLengthMinimum = len(truncationSuffixConstant)

	noRepositoriesTemplateConstant = "No git repositories found under '%s'.\n"
	discoveryWarningTemplate       = "Warning: %s\n"
	statusFailureWarningTemplate   = "Warning: could not read status of %s: %v\n"
	searchRootResolutionTemplate   = "resolving search root %s: %w"

	repositoryHeaderConstant = "Repository"
	branchHeaderConstant     = "Branch"
	aheadHeaderConstant      = "Ahead"
	behindHeaderConstant     = "Behind"
	stagedHeaderConstant     = "Staged"
	unstagedHeaderConstant   = "Unstaged"
	untrackedHeaderConstant  = "Untracked"
)

// ErrDiscovererNotConfigured indicates Service construction without a repository discoverer.
var ErrDiscovererNotConfigured = errors.New("repository discoverer not configured")

// ErrManagerNotConfigured indicates Service construction without a repository manager.
var ErrManagerNotConfigured = errors.New("repository manager not configured")

type scanRow struct {
	displayPath string
	state       RepositoryState
}

// Service scans a directory tree and prints a working-tree status table.
type Service struct {
	repositoryDiscoverer RepositoryDiscoverer
	repositoryManager    GitRepositoryManager
	outputWriter         io.Writer
	errorWriter          io.Writer
}

// NewService constructs a scan Service using the provided dependencies.
func NewService(repositoryDiscoverer RepositoryDiscoverer, repositoryManager GitRepositoryManager, outputWriter io.Writer, errorWriter io.Writer) (*Service, error) {
	if repositoryDiscoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if repositoryManager == nil {
		return nil, ErrManagerNotConfigured
	}
	return &Service{
		repositoryDiscoverer: repositoryDiscoverer,
		repositoryManager:    repositoryManager,
		outputWriter:         outputWriter,
		errorWriter:          errorWriter,
	}, nil
}

// Run discovers repositories under the search root, reads each porcelain
// status, and prints the table. An empty tree is not an error.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	searchRoot := strings.TrimSpace(options.SearchRoot)
	if len(searchRoot) == 0 {
		searchRoot = defaultSearchRootConstant
	}
	absoluteSearchRoot, absoluteError := filepath.Abs(searchRoot)
	if absoluteError != nil {
		return fmt.Errorf(searchRootResolutionTemplate, searchRoot, absoluteError)
	}

	repositoryRecords, discoveryWarnings, discoveryError := service.repositoryDiscoverer.DiscoverRepositories([]string{absoluteSearchRoot})
	if discoveryError != nil {
		return discoveryError
	}
	for _, warningMessage := range discoveryWarnings {
		fmt.Fprintf(service.errorWriter, discoveryWarningTemplate, warningMessage)
	}

	rows := make([]scanRow, 0, len(repositoryRecords))
	for _, repositoryRecord := range repositoryRecords {
		porcelainOutput, statusError := service.repositoryManager.GetPorcelainStatus(executionContext, repositoryRecord.Path)
		if statusError != nil {
			fmt.Fprintf(service.errorWriter, statusFailureWarningTemplate, repositoryRecord.Path, statusError)
			continue
		}
		rows = append(rows, scanRow{
			displayPath: displayPathForRecord(absoluteSearchRoot, repositoryRecord.Path),
			state:       parsePorcelainStatus(porcelainOutput),
		})
	}

	if len(rows) == 0 {
		fmt.Fprintf(service.outputWriter, noRepositoriesTemplateConstant, absoluteSearchRoot)
		return nil
	}

	if options.DirtyOnly {
		filtered := rows[:0]
		for _, row := range rows {
			if row.state.IsDirty() {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	sort.SliceStable(rows, func(firstIndex, secondIndex int) bool {
		return rows[firstIndex].displayPath < rows[secondIndex].displayPath
	})

	service.printTable(rows, options.CondensedWidth)
	return nil
}

func (service *Service) printTable(rows []scanRow, condensedWidth int) {
	statusTable := table.New().
		Headers(repositoryHeaderConstant, branchHeaderConstant, aheadHeaderConstant, behindHeaderConstant, stagedHeaderConstant, unstagedHeaderConstant, untrackedHeaderConstant).
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

	for _, row := range rows {
		statusTable.Row(
			truncateCell(row.displayPath, condensedWidth),
			truncateCell(row.state.Branch, condensedWidth),
			strconv.Itoa(row.state.AheadCount),
			strconv.Itoa(row.state.BehindCount),
			strconv.Itoa(row.state.StagedCount),
			strconv.Itoa(row.state.UnstagedCount),
			strconv.Itoa(row.state.UntrackedCount),
		)
	}

	fmt.Fprintln(service.outputWriter, strings.TrimRight(statusTable.String(), "\n"))
}

// displayPathForRecord renders the repository relative to the search root;
// the root itself renders as its base name.
func displayPathForRecord(absoluteSearchRoot string, repositoryPath string) string {
	relativePath, relativeError := filepath.Rel(absoluteSearchRoot, repositoryPath)
	if relativeError != nil {
		return repositoryPath
	}
	if relativePath == currentDirectoryIndicator {
		return filepath.Base(absoluteSearchRoot)
	}
	return relativePath
}

// truncateCell shortens text exceeding the condensed width to fit, ending in
// an ellipsis. Width zero disables truncation.
func truncateCell(text string, condensedWidth int) string {
	if condensedWidth <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= condensedWidth {
		return text
	}
	keptRuneCount := condensedWidth - truncationSuffixLengthMinimum
	if keptRuneCount < 0 {
		keptRuneCount = 0
	}
	return string(runes[:keptRuneCount]) + truncationSuffixConstant
}
