package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/conflict"
	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
	"github.com/raremonarch/bashmod/internal/tui"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the registry interactively",
		Long: `Open an interactive browser over the registry listing. Type / to
filter, i to install the highlighted module, u to uninstall it, r to
refresh the listing, c to view conflicts, q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context())
		},
	}
}

func runBrowse(ctx context.Context) error {
	if !output.IsTTY() {
		return exitWith(fmt.Errorf("browse requires an interactive terminal"))
	}

	cfg := GetConfig()

	inst, err := openInstaller(cfg)
	if err != nil {
		return exitWith(err)
	}

	result, err := fetchMergedManifest(ctx, cfg)
	if err != nil {
		return exitWith(err)
	}
	reportIssues(result.Issues)

	installed := map[string]string{}
	for _, m := range inst.Store().List() {
		installed[m.ID] = m.Version
	}

	client := registry.NewClient(cfg.FetchTimeout())
	manifest := result.Manifest

	opts := tui.Options{
		Modules:   manifest.Modules,
		Installed: installed,
		Actions: tui.Actions{
			Install: func(id string) ([]conflict.Conflict, error) {
				desc, ok := manifest.FindByID(id)
				if !ok {
					return nil, berrors.NewNotFoundError(
						fmt.Sprintf("module %q is not in the registry", id), id, "")
				}
				scriptBytes, err := client.FetchScript(ctx, desc.URL)
				if err != nil {
					return nil, err
				}
				return inst.Install(desc, scriptBytes)
			},
			Uninstall: func(id string) error {
				return inst.Uninstall(id)
			},
			Refresh: func() ([]registry.Descriptor, map[string]string, error) {
				fresh, err := fetchMergedManifestQuiet(ctx, cfg)
				if err != nil {
					return nil, nil, err
				}
				manifest = fresh.Manifest
				current := map[string]string{}
				for _, m := range inst.Store().List() {
					current[m.ID] = m.Version
				}
				return manifest.Modules, current, nil
			},
			Conflicts: func() []conflict.Conflict {
				return inst.Scan()
			},
		},
	}

	return tui.Run(opts)
}
