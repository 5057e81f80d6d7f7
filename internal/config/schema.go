// Package config provides configuration loading and management.
package config

import "time"

// Default configuration values.
const (
	// DefaultRegistryURL is the registry manifest fetched when the user
	// configures nothing.
	DefaultRegistryURL = "https://raw.githubusercontent.com/raremonarch/bashrc-modules/main/registry.json"

	// DefaultInstallDir is where module scripts land. Shells source
	// ~/.bashrc.d/*.sh from their rc file.
	DefaultInstallDir = "~/.bashrc.d"

	// DefaultFetchTimeout bounds each manifest or script download.
	DefaultFetchTimeout = 10 * time.Second
)

// Config is the user-facing bashmod configuration.
type Config struct {
	// Registries lists manifest URLs, queried in order. Cross-registry
	// duplicate module ids resolve to the first registry listing them.
	Registries []string `mapstructure:"registries"`

	// InstallDir is the directory module scripts are installed into.
	// A leading ~ expands to the user's home directory.
	InstallDir string `mapstructure:"installDir"`

	// FetchTimeoutSeconds bounds each network fetch, in seconds.
	FetchTimeoutSeconds int `mapstructure:"fetchTimeoutSeconds"`

	// Log holds logging configuration.
	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`
}

// WithDefaults returns a copy of the config with defaults applied for
// any unset field.
func (c *Config) WithDefaults() *Config {
	out := *c
	if len(out.Registries) == 0 {
		out.Registries = []string{DefaultRegistryURL}
	}
	if out.InstallDir == "" {
		out.InstallDir = DefaultInstallDir
	}
	if out.FetchTimeoutSeconds <= 0 {
		out.FetchTimeoutSeconds = int(DefaultFetchTimeout / time.Second)
	}
	return &out
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
