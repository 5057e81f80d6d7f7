package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags for rendering the starter
// config file. mapstructure tags drive reading; this drives writing.
type fileConfig struct {
	Registries          []string       `yaml:"registries"`
	InstallDir          string         `yaml:"installDir"`
	FetchTimeoutSeconds int            `yaml:"fetchTimeoutSeconds"`
	Log                 fileLogConfig  `yaml:"log"`
}

type fileLogConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultYAML renders the default configuration as a YAML document,
// suitable for writing as a starter config file.
func DefaultYAML() ([]byte, error) {
	defaults := (&Config{}).WithDefaults()
	out := fileConfig{
		Registries:          defaults.Registries,
		InstallDir:          defaults.InstallDir,
		FetchTimeoutSeconds: defaults.FetchTimeoutSeconds,
		Log:                 fileLogConfig{Verbose: defaults.Log.Verbose},
	}
	return yaml.Marshal(out)
}

// WriteDefault writes the default config file at path, creating parent
// directories. Fails if the file already exists: init never clobbers a
// config the user has edited.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := DefaultYAML()
	if err != nil {
		return fmt.Errorf("rendering default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
