package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/config"
	"github.com/raremonarch/bashmod/internal/installer"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
	"github.com/raremonarch/bashmod/internal/state"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		installedFlag bool
		offlineFlag   bool
		categoryFlag  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registry modules and their install status",
		Long: `List modules known to the configured registries, annotated with
install status: installed, update available, or available.

When the registry cannot be reached, a previously cached registry
snapshot is used if one exists.

Examples:
  # List everything the registry offers
  bashmod list

  # Only show what is installed locally
  bashmod list --installed

  # Filter by category
  bashmod list --category git

  # Serve from the cached snapshot without touching the network
  bashmod list --offline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), installedFlag, offlineFlag, categoryFlag)
		},
	}

	cmd.Flags().BoolVar(&installedFlag, "installed", false, "Only list installed modules")
	cmd.Flags().BoolVar(&offlineFlag, "offline", false, "Use the cached registry snapshot instead of fetching")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Only list modules in this category")

	return cmd
}

func runList(ctx context.Context, installedOnly, offline bool, category string) error {
	cfg := GetConfig()

	inst, err := openInstaller(cfg)
	if err != nil {
		return exitWith(err)
	}

	var result *registry.ParseResult
	if offline {
		result, err = loadCachedManifest(cfg)
		if err != nil {
			return exitWith(err)
		}
	} else {
		result, err = fetchMergedManifest(ctx, cfg)
		if err != nil {
			cached, cacheErr := loadCachedManifest(cfg)
			if cacheErr != nil {
				return exitWith(err)
			}
			output.Warn("registry unreachable, using cached snapshot", "error", err)
			result = cached
		}
	}
	reportIssues(result.Issues)

	rows := buildListRows(result.Manifest, inst.Store(), installedOnly, category)
	if len(rows) == 0 {
		output.Println("No modules to show.")
		return nil
	}

	output.Println(output.RenderModuleTable(rows))
	return nil
}

// buildListRows merges registry descriptors with the installed store
// into display rows. Installed modules that the registry no longer
// lists still appear, flagged as installed.
func buildListRows(manifest registry.Manifest, store *state.Store, installedOnly bool, category string) []output.ModuleRow {
	var rows []output.ModuleRow

	listed := map[string]struct{}{}
	for _, desc := range manifest.Modules {
		listed[desc.ID] = struct{}{}
		if category != "" && desc.Category != category {
			continue
		}

		status := output.StatusAvailable
		version := desc.Version
		if installed, ok := store.Get(desc.ID); ok {
			status = output.StatusInstalled
			version = installed.Version
			if newer, err := installer.CheckForUpdate(installed, desc); err == nil && newer {
				status = output.StatusUpdate
				version = fmt.Sprintf("%s -> %s", installed.Version, desc.Version)
			}
		} else if installedOnly {
			continue
		}

		rows = append(rows, output.ModuleRow{
			ID:          desc.ID,
			Version:     version,
			Category:    desc.Category,
			Status:      status,
			Description: desc.Description,
		})
	}

	// Installed modules the registry dropped are still real.
	for _, installed := range store.List() {
		if _, ok := listed[installed.ID]; ok {
			continue
		}
		if category != "" {
			continue
		}
		rows = append(rows, output.ModuleRow{
			ID:      installed.ID,
			Version: installed.Version,
			Status:  output.StatusInstalled,
		})
	}

	return rows
}

// loadCachedManifest rebuilds a merged manifest from cached snapshots.
func loadCachedManifest(cfg *config.Config) (*registry.ParseResult, error) {
	cacheDir, err := config.GetCacheDir()
	if err != nil {
		return nil, err
	}

	var results []*registry.ParseResult
	for idx := range cfg.Registries {
		data, found, err := registry.LoadSnapshot(config.SnapshotPath(cacheDir, idx))
		if err != nil || !found {
			continue
		}
		result, err := registry.Parse(data)
		if err != nil {
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no usable registry snapshot in %s", cacheDir)
	}
	return registry.Merge(results...), nil
}
