package report

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/temirov/repoaudit/internal/audit"
	"github.com/temirov/repoaudit/internal/gitrepo"
)

const (
	reportTemplateNameConstant = "report.html"
	generatedAtLayoutConstant  = "2006-01-02 15:04:05 MST"
	statusClassProblemConstant = "problem"
	statusClassStaleConstant   = "stale"
	statusClassWarningConstant = "warning"
	statusClassHealthyConstant = "ok"
)

//go:embed templates/report.html
var reportTemplateFiles embed.FS

var reportTemplate = template.Must(template.ParseFS(reportTemplateFiles, "templates/"+reportTemplateNameConstant))

type htmlReportRow struct {
	Name        string
	RemoteLink  string
	Location    string
	Push        string
	Pull        string
	Local       string
	Group       string
	Commit      string
	Path        string
	StatusClass string
}

type htmlReportData struct {
	GeneratedAt string
	ShowCommit  bool
	ShowPath    bool
	Rows        []htmlReportRow
}

// RenderHTML writes the audit results as a standalone HTML page with a
// sortable, filterable table and a status legend.
func (renderer *Renderer) RenderHTML(destination io.Writer, statuses []audit.RepositoryStatus, options audit.RenderOptions) error {
	sortStatuses(statuses)

	reportData := htmlReportData{
		GeneratedAt: time.Now().Format(generatedAtLayoutConstant),
		ShowCommit:  options.CommitDateMode != audit.CommitDateHidden,
		ShowPath:    options.PathDisplayMode != audit.PathDisplayNone,
	}

	for _, status := range statuses {
		reportRow := htmlReportRow{
			Name:        status.Name,
			RemoteLink:  remoteBrowseLink(status.RemoteURL),
			Location:    string(status.Location),
			Push:        countCell(status.AheadCount),
			Pull:        countCell(status.BehindCount),
			Local:       localChangesCell(status.HasLocalChanges),
			Group:       string(status.GroupStatus),
			StatusClass: rowStatusClass(status),
		}
		if reportData.ShowCommit {
			reportRow.Commit = commitTimeCell(status.LastCommitTime, options.CommitDateMode)
		}
		if reportData.ShowPath {
			reportRow.Path = displayPath(status.Path, options.PathDisplayMode, renderer.homeDirectory)
		}
		reportData.Rows = append(reportData.Rows, reportRow)
	}

	return reportTemplate.Execute(destination, reportData)
}

// rowStatusClass ranks row severity: any push/pull divergence beats stale,
// stale beats local-only edits, and clean rows read as ok. The first matching
// rule wins.
func rowStatusClass(status audit.RepositoryStatus) string {
	switch {
	case status.AheadCount > 0 || status.BehindCount > 0:
		return statusClassProblemConstant
	case status.GroupStatus == audit.GroupStatusStale:
		return statusClassStaleConstant
	case status.HasLocalChanges:
		return statusClassWarningConstant
	default:
		return statusClassHealthyConstant
	}
}

func remoteBrowseLink(remoteURL string) string {
	if len(remoteURL) == 0 {
		return ""
	}
	remoteEndpoint, parseError := gitrepo.ParseRemoteEndpoint(remoteURL)
	if parseError != nil {
		return ""
	}
	return remoteEndpoint.BrowseURL()
}
