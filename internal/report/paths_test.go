package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoaudit/internal/audit"
)

func TestDisplayPathModes(testInstance *testing.T) {
	testCases := []struct {
		name            string
		repositoryPath  string
		mode            audit.PathDisplayMode
		homeDirectory   string
		expectedDisplay string
	}{
		{
			name:            "none_mode_hides_path",
			repositoryPath:  "/home/developer/projects/example",
			mode:            audit.PathDisplayNone,
			expectedDisplay: "",
		},
		{
			name:            "full_mode_keeps_path",
			repositoryPath:  "/home/developer/projects/example",
			mode:            audit.PathDisplayFull,
			expectedDisplay: "/home/developer/projects/example",
		},
		{
			name:            "relative_mode_renders_home_relative_form",
			repositoryPath:  "/home/developer/projects/example",
			mode:            audit.PathDisplayRelative,
			homeDirectory:   "/home/developer",
			expectedDisplay: "~/projects/example",
		},
		{
			name:            "relative_mode_without_home_keeps_path",
			repositoryPath:  "/srv/checkouts/example",
			mode:            audit.PathDisplayRelative,
			expectedDisplay: "/srv/checkouts/example",
		},
		{
			name:            "short_mode_contracts_home",
			repositoryPath:  "/home/developer/src/demo",
			mode:            audit.PathDisplayShort,
			homeDirectory:   "/home/developer",
			expectedDisplay: "~/src/demo",
		},
		{
			name:            "short_mode_truncates_every_long_segment",
			repositoryPath:  "/home/developer/extraordinarily-long-directory/example",
			mode:            audit.PathDisplayShort,
			homeDirectory:   "/home/developer",
			expectedDisplay: "~/extrao.../exampl...",
		},
		{
			name:            "short_mode_truncates_the_final_segment",
			repositoryPath:  "/srv/checkouts/extraordinarily-long-repository-name",
			mode:            audit.PathDisplayShort,
			expectedDisplay: "/srv/checko.../extrao...",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			actualDisplay := displayPath(testCase.repositoryPath, testCase.mode, testCase.homeDirectory)
			require.Equal(testInstance, testCase.expectedDisplay, actualDisplay)
		})
	}
}

func TestTruncateSegmentBoundaries(testInstance *testing.T) {
	require.Equal(testInstance, "sixsix", truncateSegment("sixsix"))
	require.Equal(testInstance, "sevens...", truncateSegment("sevens7"))
	require.True(testInstance, strings.HasSuffix(truncateSegment("internationalization"), "..."))
	require.LessOrEqual(testInstance, len([]rune(truncateSegment("internationalization"))), 9)
}

func TestContractHomeDirectoryRequiresSegmentBoundary(testInstance *testing.T) {
	require.Equal(testInstance, "~", contractHomeDirectory("/home/developer", "/home/developer"))
	require.Equal(testInstance, "/home/developers/example", contractHomeDirectory("/home/developers/example", "/home/developer"))
	require.Equal(testInstance, "/srv/example", contractHomeDirectory("/srv/example", ""))
}
