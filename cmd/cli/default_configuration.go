package cli

import _ "embed"

// The embedded defaults seed viper before any configuration file or
// REPOAUDIT_* environment variable is applied, so every common.* and tools.*
// key carries a usable value on a fresh machine.
//
//go:embed default_config.yaml
var defaultConfigurationYAML []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration
// document together with its format identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	configurationCopy := make([]byte, len(defaultConfigurationYAML))
	copy(configurationCopy, defaultConfigurationYAML)
	return configurationCopy, configurationTypeConstant
}
