package scan

import "strings"

// CommandConfiguration captures persistent settings for the scan command.
type CommandConfiguration struct {
	SearchRoot string `mapstructure:"search_root"`
	DirtyOnly  bool   `mapstructure:"dirty_only"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scan command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SearchRoot: defaultSearchRootConstant,
		DirtyOnly:  false,
	}
}

// DefaultConfigurationValues exposes scan defaults keyed beneath the provided configuration prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".search_root": defaults.SearchRoot,
		configurationKeyPrefix + ".dirty_only":  defaults.DirtyOnly,
	}
}

// sanitize trims whitespace and restores the default search root when blank.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SearchRoot = strings.TrimSpace(configuration.SearchRoot)
	if len(sanitized.SearchRoot) == 0 {
		sanitized.SearchRoot = defaultSearchRootConstant
	}
	return sanitized
}
