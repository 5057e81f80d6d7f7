package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for bashmod.
type Paths struct {
	// ConfigFile is the path to the config file (~/.bashmod/config.yaml).
	ConfigFile string

	// CacheDir is the path to the cache directory (~/.bashmod/cache).
	CacheDir string

	// HomeDir is the bashmod home directory (~/.bashmod).
	HomeDir string
}

// DefaultPaths returns the default paths for bashmod.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	bashmodHome := filepath.Join(homeDir, ".bashmod")

	return &Paths{
		ConfigFile: filepath.Join(bashmodHome, "config.yaml"),
		CacheDir:   filepath.Join(bashmodHome, "cache"),
		HomeDir:    bashmodHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If BASHMOD_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("BASHMOD_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// GetCacheDir returns the cache directory path.
// If BASHMOD_CACHE_DIR is set, it takes precedence.
func GetCacheDir() (string, error) {
	if envPath := os.Getenv("BASHMOD_CACHE_DIR"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.CacheDir, nil
}

// SnapshotPath returns the cached registry snapshot path for a registry
// index. Multiple registries cache side by side.
func SnapshotPath(cacheDir string, index int) string {
	if index == 0 {
		return filepath.Join(cacheDir, "registry.json")
	}
	return filepath.Join(cacheDir, fmt.Sprintf("registry.%d.json", index))
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
