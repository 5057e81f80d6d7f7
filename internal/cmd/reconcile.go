package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/state"
)

// NewReconcileCmd creates the reconcile command.
func NewReconcileCmd() *cobra.Command {
	var (
		adoptFlag bool
		pruneFlag bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Detect drift between the install directory and the installed-module record",
		Long: `Compare the scripts present in the install directory against the
installed-module record and report disagreements: scripts the record
does not know about, and recorded modules whose script is gone.

The scan itself changes nothing. With --adopt, untracked scripts are
added to the record with their extracted symbols; with --prune, records
for missing scripts are dropped.

Examples:
  bashmod reconcile
  bashmod reconcile --adopt --prune`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(adoptFlag, pruneFlag)
		},
	}

	cmd.Flags().BoolVar(&adoptFlag, "adopt", false, "Record untracked scripts with their extracted symbols")
	cmd.Flags().BoolVar(&pruneFlag, "prune", false, "Drop records whose script file is gone")

	return cmd
}

func runReconcile(adopt, prune bool) error {
	cfg := GetConfig()

	inst, err := openInstaller(cfg)
	if err != nil {
		return exitWith(err)
	}

	report, err := inst.Reconcile()
	if err != nil {
		return exitWith(err)
	}

	if report.Clean() {
		output.Println(output.FormatCheckmark("install directory and record agree"))
		return nil
	}

	for _, untracked := range report.Untracked {
		output.Println(fmt.Sprintf("untracked: %s (%d symbols)", untracked.ID, untracked.Exports.Count()))
	}
	if len(report.Missing) > 0 {
		output.Println("missing scripts: " + strings.Join(report.Missing, ", "))
	}

	if !adopt && !prune {
		return nil
	}

	store := inst.Store()
	if adopt {
		for _, untracked := range report.Untracked {
			info, statErr := os.Stat(inst.ScriptPath(untracked.ID))
			entry := state.InstalledModule{
				ID:      untracked.ID,
				Version: "0.0.0",
				Exports: untracked.Exports,
			}
			if statErr == nil {
				entry.InstalledAt = info.ModTime()
			}
			store.Upsert(entry)
			output.Info("adopted module", "id", untracked.ID)
		}
	}
	if prune {
		for _, id := range report.Missing {
			store.Remove(id)
			output.Info("pruned record", "id", id)
		}
	}

	dir, err := expandInstallDir(cfg.InstallDir)
	if err != nil {
		return exitWith(err)
	}
	if err := store.Save(state.MetadataPath(dir)); err != nil {
		return exitWith(err)
	}
	return nil
}
