package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoaudit/internal/audit"
)

func sampleStatuses() []audit.RepositoryStatus {
	commitTime := time.Date(2026, time.July, 1, 15, 30, 0, 0, time.UTC)
	return []audit.RepositoryStatus{
		{
			Name:           "zeta-tool",
			Path:           "/home/developer/projects/zeta-tool",
			Location:       audit.LocationOther,
			GroupStatus:    audit.GroupStatusNone,
			LastCommitTime: commitTime.Add(-72 * time.Hour),
		},
		{
			Name:            "Alpha-service",
			Path:            "/home/developer/projects/alpha-service",
			Location:        audit.LocationGitHub,
			RemoteURL:       "git@github.com:acme/alpha-service.git",
			AheadCount:      3,
			BehindCount:     1,
			HasLocalChanges: true,
			GroupStatus:     audit.GroupStatusLatest,
			LastCommitTime:  commitTime,
		},
	}
}

func newRendererForTest() *Renderer {
	return &Renderer{homeDirectory: "/home/developer"}
}

func TestRenderTableContent(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	renderError := newRendererForTest().RenderTable(outputBuffer, sampleStatuses(), audit.RenderOptions{
		PathDisplayMode: audit.PathDisplayShort,
		CommitDateMode:  audit.CommitDateDateOnly,
	})
	require.NoError(testInstance, renderError)

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "REPOSITORY")
	require.Contains(testInstance, renderedOutput, "LAST COMMIT")
	require.Contains(testInstance, renderedOutput, "PATH")
	require.Contains(testInstance, renderedOutput, "Alpha-service")
	require.Contains(testInstance, renderedOutput, "GitHub")
	require.Contains(testInstance, renderedOutput, "2026-07-01")
	require.Contains(testInstance, renderedOutput, "~/projec.../alpha-...")

	require.Less(testInstance, strings.Index(renderedOutput, "Alpha-service"), strings.Index(renderedOutput, "zeta-tool"))
}

func TestRenderTableHidesOptionalColumns(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	renderError := newRendererForTest().RenderTable(outputBuffer, sampleStatuses(), audit.RenderOptions{
		PathDisplayMode: audit.PathDisplayNone,
		CommitDateMode:  audit.CommitDateHidden,
	})
	require.NoError(testInstance, renderError)

	renderedOutput := outputBuffer.String()
	require.NotContains(testInstance, renderedOutput, "LAST COMMIT")
	require.NotContains(testInstance, renderedOutput, "PATH")
	require.NotContains(testInstance, renderedOutput, "/home/developer")
}

func TestCountCellOmitsZeroValues(testInstance *testing.T) {
	require.Empty(testInstance, countCell(0))
	require.Equal(testInstance, "7", countCell(7))
}
