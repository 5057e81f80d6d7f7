package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/installer"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var applyFlag bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "List or apply available module updates",
		Long: `Compare installed module versions against the registry and list the
modules with a strictly newer version available. Versions compare
numerically by major, minor, patch.

With --apply, each outdated module is reinstalled at the registry
version.

Examples:
  # See what is outdated
  bashmod update

  # Upgrade everything that is outdated
  bashmod update --apply`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), applyFlag)
		},
	}

	cmd.Flags().BoolVar(&applyFlag, "apply", false, "Install the newer versions instead of only listing them")

	return cmd
}

func runUpdate(ctx context.Context, apply bool) error {
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

	outdated := findOutdated(inst, result.Manifest)
	unknown := findUnlisted(inst, result.Manifest)

	if len(outdated) == 0 {
		output.Println(output.FormatCheckmark("all installed modules are up to date"))
		printUnlisted(unknown)
		return nil
	}

	if !apply {
		rows := make([]output.ModuleRow, 0, len(outdated))
		for _, desc := range outdated {
			installed, _ := inst.Store().Get(desc.ID)
			rows = append(rows, output.ModuleRow{
				ID:          desc.ID,
				Version:     fmt.Sprintf("%s -> %s", installed.Version, desc.Version),
				Category:    desc.Category,
				Status:      output.StatusUpdate,
				Description: desc.Description,
			})
		}
		output.Println(output.RenderModuleTable(rows))
		printUnlisted(unknown)
		return nil
	}

	client := registry.NewClient(cfg.FetchTimeout())

	var firstErr error
	for _, desc := range outdated {
		if err := installOne(ctx, inst, client, result.Manifest, desc.ID, false); err != nil {
			output.Error("update failed", "module", desc.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return &berrors.ExitError{Code: ExitCodeFromError(firstErr), Err: firstErr, Printed: true}
	}
	return nil
}

// findOutdated returns the registry descriptors strictly newer than the
// installed version, in store order. Entries with unparsable versions
// are skipped with a warning rather than failing the listing.
func findOutdated(inst *installer.Installer, manifest registry.Manifest) []registry.Descriptor {
	var outdated []registry.Descriptor
	for _, installed := range inst.Store().List() {
		desc, ok := manifest.FindByID(installed.ID)
		if !ok {
			continue
		}
		newer, err := installer.CheckForUpdate(installed, desc)
		if err != nil {
			output.Warn("skipping update check", "module", installed.ID, "error", err)
			continue
		}
		if newer {
			outdated = append(outdated, desc)
		}
	}
	return outdated
}

// findUnlisted returns installed module ids the registry no longer
// lists. Their update status is unknowable; never an error.
func findUnlisted(inst *installer.Installer, manifest registry.Manifest) []string {
	var unknown []string
	for _, installed := range inst.Store().List() {
		if _, ok := manifest.FindByID(installed.ID); !ok {
			unknown = append(unknown, installed.ID)
		}
	}
	return unknown
}

func printUnlisted(unknown []string) {
	for _, id := range unknown {
		output.Info("not in registry, update status unknown", "module", id)
	}
}
