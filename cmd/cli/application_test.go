package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repoaudit/cmd/cli"
)

type embeddedConfigurationFixture struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Audit struct {
			Roots []string `yaml:"roots"`
			Debug bool     `yaml:"debug"`
		} `yaml:"audit"`
		Scan struct {
			SearchRoot string `yaml:"search_root"`
			DirtyOnly  bool   `yaml:"dirty_only"`
		} `yaml:"scan"`
	} `yaml:"tools"`
}

func TestEmbeddedDefaultConfigurationParses(testInstance *testing.T) {
	configurationContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)
	require.NotEmpty(testInstance, configurationContent)

	fixture := embeddedConfigurationFixture{}
	require.NoError(testInstance, yaml.Unmarshal(configurationContent, &fixture))

	require.Equal(testInstance, "info", fixture.Common.LogLevel)
	require.Equal(testInstance, "console", fixture.Common.LogFormat)
	require.Empty(testInstance, fixture.Tools.Audit.Roots)
	require.False(testInstance, fixture.Tools.Audit.Debug)
	require.Equal(testInstance, ".", fixture.Tools.Scan.SearchRoot)
	require.False(testInstance, fixture.Tools.Scan.DirtyOnly)
}

func TestEmbeddedDefaultConfigurationReturnsCopies(testInstance *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, firstCopy[0], secondCopy[0])
}
