package cmd

import (
	"context"
	"fmt"

	"github.com/raremonarch/bashmod/internal/config"
	"github.com/raremonarch/bashmod/internal/installer"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
	"github.com/raremonarch/bashmod/internal/state"
)

// expandInstallDir resolves a configured install directory to an
// absolute path, expanding a leading ~.
func expandInstallDir(installDir string) (string, error) {
	dir, err := config.ExpandPath(installDir)
	if err != nil {
		return "", fmt.Errorf("expanding install directory: %w", err)
	}
	return dir, nil
}

// openInstaller loads the installed-module store for the configured
// install directory and wraps it in an Installer.
func openInstaller(cfg *config.Config) (*installer.Installer, error) {
	dir, err := expandInstallDir(cfg.InstallDir)
	if err != nil {
		return nil, err
	}

	store, err := state.Load(state.MetadataPath(dir))
	if err != nil {
		return nil, err
	}
	return installer.New(dir, store), nil
}

// fetchMergedManifest fetches every configured registry, caches each
// raw manifest as a snapshot, and merges the results. A spinner covers
// the whole fetch when stdout is a terminal.
func fetchMergedManifest(ctx context.Context, cfg *config.Config) (*registry.ParseResult, error) {
	var merged *registry.ParseResult
	fetch := func() error {
		var err error
		merged, err = fetchMergedManifestQuiet(ctx, cfg)
		return err
	}

	if err := output.RunWithSpinner(ctx, fetch, output.WithTitle("Fetching registry...")); err != nil {
		return nil, err
	}
	return merged, nil
}

// fetchMergedManifestQuiet is fetchMergedManifest without the spinner,
// for callers that own the terminal (the TUI).
func fetchMergedManifestQuiet(ctx context.Context, cfg *config.Config) (*registry.ParseResult, error) {
	client := registry.NewClient(cfg.FetchTimeout())

	cacheDir, cacheErr := config.GetCacheDir()
	if cacheErr != nil {
		output.Debug("cache directory unavailable, skipping snapshots", "error", cacheErr)
	}

	results := make([]*registry.ParseResult, 0, len(cfg.Registries))
	for idx, url := range cfg.Registries {
		data, err := client.FetchBytes(ctx, url)
		if err != nil {
			return nil, err
		}
		result, err := registry.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing manifest from %s: %w", url, err)
		}
		results = append(results, result)

		if cacheErr == nil {
			if err := registry.SaveSnapshot(config.SnapshotPath(cacheDir, idx), data); err != nil {
				output.Debug("caching registry snapshot failed", "url", url, "error", err)
			}
		}
	}
	return registry.Merge(results...), nil
}

// reportIssues warns about manifest entries that were excluded during
// parsing. Issues never fail the command.
func reportIssues(issues []registry.Issue) {
	for _, issue := range issues {
		output.Warn("skipping invalid registry entry", "entry", issue.Error())
	}
}
