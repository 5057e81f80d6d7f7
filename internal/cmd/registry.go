package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/config"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
)

// NewRegistryCmd creates the registry command group.
func NewRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and refresh the configured registries",
	}

	cmd.AddCommand(NewRegistryRefreshCmd())
	cmd.AddCommand(NewRegistryDiffCmd())

	return cmd
}

// NewRegistryRefreshCmd creates the registry refresh command.
func NewRegistryRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the registries and update the cached snapshots",
		Long: `Fetch every configured registry manifest, validate it, and replace
the cached snapshot used for offline listing and diffing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryRefresh(cmd.Context())
		},
	}
}

func runRegistryRefresh(ctx context.Context) error {
	cfg := GetConfig()

	result, err := fetchMergedManifest(ctx, cfg)
	if err != nil {
		return exitWith(err)
	}
	reportIssues(result.Issues)

	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"refreshed %d registries (%d modules)", len(cfg.Registries), len(result.Manifest.Modules))))
	return nil
}

// NewRegistryDiffCmd creates the registry diff command.
func NewRegistryDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show what changed since the last cached registry snapshot",
		Long: `Fetch each configured registry and compare it semantically against
the cached snapshot. Formatting-only changes (key order, JSON vs YAML)
produce no diff. The snapshot is not updated; run 'bashmod registry
refresh' to accept the new state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryDiff(cmd.Context())
		},
	}
}

func runRegistryDiff(ctx context.Context) error {
	cfg := GetConfig()

	cacheDir, err := config.GetCacheDir()
	if err != nil {
		return exitWith(err)
	}

	client := registry.NewClient(cfg.FetchTimeout())

	changed := false
	for idx, url := range cfg.Registries {
		var fetched []byte
		fetch := func() error {
			var err error
			fetched, err = client.FetchBytes(ctx, url)
			return err
		}
		if err := output.RunWithSpinner(ctx, fetch, output.WithTitle("Fetching registry...")); err != nil {
			return exitWith(err)
		}

		cached, found, err := registry.LoadSnapshot(config.SnapshotPath(cacheDir, idx))
		if err != nil {
			return exitWith(err)
		}
		if !found {
			output.Info("no cached snapshot yet", "registry", url)
			changed = true
			continue
		}

		diff, err := registry.Diff(cached, fetched, output.IsTTY())
		if err != nil {
			return exitWith(err)
		}
		if diff == "" {
			continue
		}

		changed = true
		output.Println(output.StyleNoun.Render(url))
		output.Println(diff)
	}

	if !changed {
		output.Println(output.FormatCheckmark("registries are unchanged since the last snapshot"))
	}
	return nil
}
