package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/output"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <module-id>...",
		Short: "Remove installed modules",
		Long: `Remove module scripts from the install directory and their entries
from the installed-module record. Removing a module that is not
installed is not an error.

Examples:
  bashmod uninstall git-helpers
  bashmod uninstall git-helpers docker-tools`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(args)
		},
	}

	return cmd
}

func runUninstall(ids []string) error {
	cfg := GetConfig()

	inst, err := openInstaller(cfg)
	if err != nil {
		return exitWith(err)
	}

	var firstErr error
	for _, id := range ids {
		entry, wasInstalled := inst.Store().Get(id)
		if err := inst.Uninstall(id); err != nil {
			output.Error("uninstall failed", "module", id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if wasInstalled {
			output.Println(output.FormatModuleLine(id, entry.Version, output.StatusRemoved))
		} else {
			output.Println(fmt.Sprintf("%s was not installed", id))
		}
	}

	if firstErr != nil {
		return &berrors.ExitError{Code: ExitCodeFromError(firstErr), Err: firstErr, Printed: true}
	}
	return nil
}
