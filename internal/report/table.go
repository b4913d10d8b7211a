package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/temirov/repoaudit/internal/audit"
)

const (
	repositoryColumnHeaderConstant = "REPOSITORY"
	locationColumnHeaderConstant   = "LOCATION"
	pushColumnHeaderConstant       = "PUSH"
	pullColumnHeaderConstant       = "PULL"
	localColumnHeaderConstant      = "LOCAL"
	groupColumnHeaderConstant      = "LATEST"
	commitColumnHeaderConstant     = "LAST COMMIT"
	pathColumnHeaderConstant       = "PATH"

	localChangesCellConstant     = "yes"
	commitDateLayoutConstant     = "2006-01-02"
	commitDateTimeLayoutConstant = "2006-01-02 15:04"

	tableBorderColorConstant = "240"
)

// Renderer produces terminal and HTML renditions of audit results.
type Renderer struct {
	homeDirectory string
}

// NewRenderer constructs a Renderer bound to the current process environment.
func NewRenderer() *Renderer {
	return &Renderer{homeDirectory: currentHomeDirectory()}
}

// RenderTable writes the audit results as an aligned terminal table. Rows are
// sorted case-insensitively by repository name, then by path.
func (renderer *Renderer) RenderTable(destination io.Writer, statuses []audit.RepositoryStatus, options audit.RenderOptions) error {
	sortStatuses(statuses)

	headers := []string{repositoryColumnHeaderConstant, locationColumnHeaderConstant, pushColumnHeaderConstant, pullColumnHeaderConstant, localColumnHeaderConstant, groupColumnHeaderConstant}
	if options.CommitDateMode != audit.CommitDateHidden {
		headers = append(headers, commitColumnHeaderConstant)
	}
	if options.PathDisplayMode != audit.PathDisplayNone {
		headers = append(headers, pathColumnHeaderConstant)
	}

	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		row := []string{
			status.Name,
			string(status.Location),
			countCell(status.AheadCount),
			countCell(status.BehindCount),
			localChangesCell(status.HasLocalChanges),
			string(status.GroupStatus),
		}
		if options.CommitDateMode != audit.CommitDateHidden {
			row = append(row, commitTimeCell(status.LastCommitTime, options.CommitDateMode))
		}
		if options.PathDisplayMode != audit.PathDisplayNone {
			row = append(row, displayPath(status.Path, options.PathDisplayMode, renderer.homeDirectory))
		}
		rows = append(rows, row)
	}

	statusTable := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColorConstant))).
		StyleFunc(func(rowIndex, columnIndex int) lipgloss.Style {
			if rowIndex == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	_, writeError := fmt.Fprintln(destination, strings.TrimRight(statusTable.String(), "\n"))
	return writeError
}

func sortStatuses(statuses []audit.RepositoryStatus) {
	sort.SliceStable(statuses, func(first int, second int) bool {
		firstName := strings.ToLower(statuses[first].Name)
		secondName := strings.ToLower(statuses[second].Name)
		if firstName != secondName {
			return firstName < secondName
		}
		return statuses[first].Path < statuses[second].Path
	})
}

func countCell(count int) string {
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%d", count)
}

func localChangesCell(hasLocalChanges bool) string {
	if hasLocalChanges {
		return localChangesCellConstant
	}
	return ""
}

func commitTimeCell(commitTime time.Time, mode audit.CommitDateMode) string {
	if commitTime.IsZero() {
		return ""
	}
	if mode == audit.CommitDateDateTime {
		return commitTime.Format(commitDateTimeLayoutConstant)
	}
	return commitTime.Format(commitDateLayoutConstant)
}
