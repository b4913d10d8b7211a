package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/temirov/repoaudit/internal/repos/discovery"
)

const (
	defaultRootPathConstant = "."

	debugDiscoveredTemplateConstant = "Discovered %d repositories under: %s\n"
	rootWarningTemplateConstant     = "Warning: %s\n"
	fieldWarningTemplateConstant    = "Warning: %s: %v\n"
	noRepositoriesMessageConstant   = "No git repositories found.\n"

	detailedHeaderTemplateConstant    = "=== %s (%s) ===\n"
	detailedFetchFailureTemplate      = "  fetch failed: %v\n"
	detailedCleanWorktreeMessage      = "  working tree clean\n"
	detailedIndentedLineTemplate      = "  %s\n"
	detailedSectionSeparatorConstant  = "\n"
	compareArgumentCountMessageFormat = "compare requires exactly two repository paths, got %d"
	compareFailureTemplateConstant    = "Comparison failed: %v\n"

	htmlReportFileNameConstant      = "git_report.html"
	htmlReportSavedTemplateConstant = "\nHTML report saved to: ./%s\n"
	htmlReportCreateErrorTemplate   = "unable to create HTML report file: %w"
)

// Dependency validation failures surfaced by NewService and Run.
var (
	ErrDiscovererNotConfigured = errors.New("repository discoverer not configured")
	ErrManagerNotConfigured    = errors.New("repository manager not configured")
	ErrRendererNotConfigured   = errors.New("report renderer not configured")
	ErrComparatorNotConfigured = errors.New("divergence comparator not configured")
)

// Service coordinates repository discovery, status collection, grouping, and rendering.
type Service struct {
	discoverer        RepositoryDiscoverer
	repositoryManager GitRepositoryManager
	renderer          ReportRenderer
	comparator        DivergenceComparator
	outputWriter      io.Writer
	errorWriter       io.Writer
	clock             Clock
}

// NewService constructs a Service using the provided dependencies. The
// comparator may be nil when divergence comparison is not wired in.
func NewService(discoverer RepositoryDiscoverer, repositoryManager GitRepositoryManager, renderer ReportRenderer, comparator DivergenceComparator, outputWriter io.Writer, errorWriter io.Writer, clock Clock) (*Service, error) {
	if discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if repositoryManager == nil {
		return nil, ErrManagerNotConfigured
	}
	if renderer == nil {
		return nil, ErrRendererNotConfigured
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		discoverer:        discoverer,
		repositoryManager: repositoryManager,
		renderer:          renderer,
		comparator:        comparator,
		outputWriter:      outputWriter,
		errorWriter:       errorWriter,
		clock:             clock,
	}, nil
}

// Run executes the audit according to the provided options.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	// The divergence report prints before the regular audit so both appear
	// in a single invocation.
	if len(options.CompareRepositories) > 0 {
		if len(options.CompareRepositories) != 2 {
			return fmt.Errorf(compareArgumentCountMessageFormat, len(options.CompareRepositories))
		}
		if service.comparator == nil {
			return ErrComparatorNotConfigured
		}
		// A failed comparison only loses the divergence report; the audit
		// still runs.
		if compareError := service.comparator.CompareRepositories(executionContext, options.CompareRepositories[0], options.CompareRepositories[1]); compareError != nil {
			fmt.Fprintf(service.errorWriter, compareFailureTemplateConstant, compareError)
		}
	}

	roots := options.Roots
	if len(roots) == 0 {
		roots = []string{defaultRootPathConstant}
	}

	repositories, discoveryWarnings, discoveryError := service.discoverer.DiscoverRepositories(roots)
	if discoveryError != nil {
		return discoveryError
	}
	for _, discoveryWarning := range discoveryWarnings {
		fmt.Fprintf(service.errorWriter, rootWarningTemplateConstant, discoveryWarning)
	}

	if options.DebugOutput {
		fmt.Fprintf(service.errorWriter, debugDiscoveredTemplateConstant, len(repositories), strings.Join(roots, " "))
	}

	if len(repositories) == 0 {
		fmt.Fprint(service.outputWriter, noRepositoriesMessageConstant)
		return nil
	}

	if options.Detailed {
		return service.runDetailedAudit(executionContext, repositories)
	}

	statuses := service.collectStatuses(executionContext, repositories)
	if len(statuses) == 0 {
		fmt.Fprint(service.outputWriter, noRepositoriesMessageConstant)
		return nil
	}

	ApplyGroupStatuses(statuses)

	renderOptions := RenderOptions{
		PathDisplayMode: options.PathDisplayMode,
		CommitDateMode:  options.CommitDateMode,
	}
	if options.HTMLOutput {
		return service.writeHTMLReport(statuses, renderOptions)
	}
	return service.renderer.RenderTable(service.outputWriter, statuses, renderOptions)
}

// writeHTMLReport renders the report into git_report.html in the working
// directory so the page can be opened offline.
func (service *Service) writeHTMLReport(statuses []RepositoryStatus, renderOptions RenderOptions) error {
	reportFile, createError := os.Create(htmlReportFileNameConstant)
	if createError != nil {
		return fmt.Errorf(htmlReportCreateErrorTemplate, createError)
	}
	renderError := service.renderer.RenderHTML(reportFile, statuses, renderOptions)
	closeError := reportFile.Close()
	if renderError != nil {
		return renderError
	}
	if closeError != nil {
		return closeError
	}
	fmt.Fprintf(service.outputWriter, htmlReportSavedTemplateConstant, htmlReportFileNameConstant)
	return nil
}

// runDetailedAudit prints one block per repository after refreshing its
// remote tracking references.
func (service *Service) runDetailedAudit(executionContext context.Context, repositories []discovery.RepositoryRecord) error {
	for _, repository := range repositories {
		insideWorkTree, probeError := service.repositoryManager.IsGitRepository(executionContext, repository.Path)
		if probeError != nil || !insideWorkTree {
			continue
		}

		fmt.Fprintf(service.outputWriter, detailedHeaderTemplateConstant, repository.Name, repository.Path)

		if fetchError := service.repositoryManager.FetchAllRemotes(executionContext, repository.Path); fetchError != nil {
			fmt.Fprintf(service.outputWriter, detailedFetchFailureTemplate, fetchError)
		}

		workingTreeStatus, statusError := service.repositoryManager.GetWorkingTreeStatus(executionContext, repository.Path)
		switch {
		case statusError != nil:
			fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, statusError)
		case len(strings.TrimSpace(workingTreeStatus)) == 0:
			fmt.Fprint(service.outputWriter, detailedCleanWorktreeMessage)
		default:
			service.printIndented(workingTreeStatus)
		}

		trackingDetails, trackingError := service.repositoryManager.GetBranchTrackingDetails(executionContext, repository.Path)
		if trackingError != nil {
			fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, trackingError)
		} else {
			service.printIndented(trackingDetails)
		}

		fmt.Fprint(service.outputWriter, detailedSectionSeparatorConstant)
	}
	return nil
}

func (service *Service) printIndented(output string) {
	for _, outputLine := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Fprintf(service.outputWriter, detailedIndentedLineTemplate, outputLine)
	}
}

// collectStatuses inspects every discovered repository. A failure while
// reading one field leaves that field at its zero value and emits a warning
// rather than aborting the whole run.
func (service *Service) collectStatuses(executionContext context.Context, repositories []discovery.RepositoryRecord) []RepositoryStatus {
	var statuses []RepositoryStatus
	for _, repository := range repositories {
		insideWorkTree, probeError := service.repositoryManager.IsGitRepository(executionContext, repository.Path)
		if probeError != nil {
			fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, probeError)
			continue
		}
		if !insideWorkTree {
			continue
		}
		statuses = append(statuses, service.inspectRepository(executionContext, repository))
	}
	return statuses
}

func (service *Service) inspectRepository(executionContext context.Context, repository discovery.RepositoryRecord) RepositoryStatus {
	status := RepositoryStatus{
		Name:     repository.Name,
		Path:     repository.Path,
		Location: LocationUnknown,
	}

	remoteListings, remotesError := service.repositoryManager.ListRemotes(executionContext, repository.Path)
	if remotesError != nil {
		// Location stays LocationUnknown when the listing itself failed.
		fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, remotesError)
	} else {
		status.RemoteURL = originFetchURL(remoteListings)
		status.Location = classifyLocation(status.RemoteURL, repository.Path)
	}

	trackingDetails, trackingError := service.repositoryManager.GetBranchTrackingDetails(executionContext, repository.Path)
	if trackingError != nil {
		fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, trackingError)
	} else {
		status.AheadCount, status.BehindCount = parseAheadBehindCounts(trackingDetails)
	}

	hasLocalChanges, localChangesError := service.repositoryManager.HasUncommittedChanges(executionContext, repository.Path)
	if localChangesError != nil {
		fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, localChangesError)
	} else {
		status.HasLocalChanges = hasLocalChanges
	}

	rawTimestamp, timestampError := service.repositoryManager.GetLastCommitTimestamp(executionContext, repository.Path)
	if timestampError != nil {
		fmt.Fprintf(service.errorWriter, fieldWarningTemplateConstant, repository.Path, timestampError)
	} else {
		status.LastCommitTime = parseCommitTimestamp(rawTimestamp)
	}

	return status
}
