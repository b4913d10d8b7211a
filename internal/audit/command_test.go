package audit_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoaudit/internal/audit"
	"github.com/temirov/repoaudit/internal/execshell"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func buildAuditCommandForTest(testInstance *testing.T, renderer *recordingReportRenderer, discoverer *stubRepositoryDiscoverer, manager *stubRepositoryManager) *audit.CommandBuilder {
	testInstance.Helper()
	return &audit.CommandBuilder{
		Discoverer:  discoverer,
		GitExecutor: stubGitExecutor{},
		GitManager:  manager,
		Renderer:    renderer,
	}
}

func TestCommandRejectsConflictingFlags(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "two_path_modes", arguments: []string{"--full-path", "--no-path"}},
		{name: "three_path_modes", arguments: []string{"--full-path", "--relative-path", "--no-path"}},
		{name: "both_date_modes", arguments: []string{"--date", "--datetime"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			builder := buildAuditCommandForTest(testInstance, &recordingReportRenderer{}, &stubRepositoryDiscoverer{}, &stubRepositoryManager{})
			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			command.SetOut(&bytes.Buffer{})
			command.SetErr(&bytes.Buffer{})
			command.SetArgs(testCase.arguments)
			require.Error(testInstance, command.Execute())
		})
	}
}

func TestCommandUsesArgumentsAsRoots(testInstance *testing.T) {
	discoverer := &stubRepositoryDiscoverer{}
	builder := buildAuditCommandForTest(testInstance, &recordingReportRenderer{}, discoverer, &stubRepositoryManager{states: map[string]stubRepositoryState{}})
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"/dev/workspace"})
	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, []string{"/dev/workspace"}, discoverer.recordedRoots)
	require.Contains(testInstance, outputBuffer.String(), "No git repositories found")
}

func TestCommandAppendsDirectoryFlagsToRoots(testInstance *testing.T) {
	discoverer := &stubRepositoryDiscoverer{}
	builder := buildAuditCommandForTest(testInstance, &recordingReportRenderer{}, discoverer, &stubRepositoryManager{states: map[string]stubRepositoryState{}})
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"/dev/workspace", "--dir", "/dev/extra", "--dir", "/dev/more"})
	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, []string{"/dev/workspace", "/dev/extra", "/dev/more"}, discoverer.recordedRoots)
}

func TestCommandFallsBackToConfiguredRoots(testInstance *testing.T) {
	discoverer := &stubRepositoryDiscoverer{}
	builder := buildAuditCommandForTest(testInstance, &recordingReportRenderer{}, discoverer, &stubRepositoryManager{states: map[string]stubRepositoryState{}})
	builder.ConfigurationProvider = func() audit.CommandConfiguration {
		return audit.CommandConfiguration{Roots: []string{"  /dev/configured  ", ""}}
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(nil)
	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, []string{"/dev/configured"}, discoverer.recordedRoots)
}
