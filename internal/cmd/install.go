package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/conflict"
	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/installer"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var checkFlag bool

	cmd := &cobra.Command{
		Use:   "install <module-id>...",
		Short: "Install modules from the registry",
		Long: `Download module scripts from the registry and install them into the
install directory. Symbols each script defines (aliases, functions,
exported variables) are recorded, and collisions with already installed
modules are reported after each install.

Conflicts never block installation: the shell sources files in order
and the last definition wins, so resolving a collision is the user's
call.

Examples:
  # Install one module
  bashmod install git-helpers

  # Install several at once
  bashmod install git-helpers docker-tools

  # Preview the conflicts an install would create, without installing
  bashmod install --check git-helpers`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), args, checkFlag)
		},
	}

	cmd.Flags().BoolVar(&checkFlag, "check", false, "Report conflicts the install would create without installing")

	return cmd
}

func runInstall(ctx context.Context, ids []string, check bool) error {
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

	client := registry.NewClient(cfg.FetchTimeout())

	// One module failing must not abort the rest of the batch.
	var firstErr error
	for _, id := range ids {
		if err := installOne(ctx, inst, client, result.Manifest, id, check); err != nil {
			output.Error("install failed", "module", id, "error", err)
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

func installOne(ctx context.Context, inst *installer.Installer, client *registry.Client, manifest registry.Manifest, id string, check bool) error {
	desc, ok := manifest.FindByID(id)
	if !ok {
		return berrors.NewNotFoundError(
			fmt.Sprintf("module %q is not in the registry", id), id,
			"run 'bashmod search' to find available modules")
	}

	var scriptBytes []byte
	fetch := func() error {
		var err error
		scriptBytes, err = client.FetchScript(ctx, desc.URL)
		return err
	}
	if err := output.RunWithSpinner(ctx, fetch, output.WithTitle(fmt.Sprintf("Fetching %s...", id))); err != nil {
		return err
	}

	if check {
		conflicts, err := inst.PreviewConflicts(desc, scriptBytes)
		if err != nil {
			return err
		}
		printConflicts(id, conflicts)
		if len(conflicts) == 0 {
			output.Println(output.FormatCheckmark(fmt.Sprintf("%s would install cleanly", id)))
		}
		return nil
	}

	conflicts, err := inst.Install(desc, scriptBytes)
	if err != nil {
		return err
	}

	output.Println(output.FormatModuleLine(desc.ID, desc.Version, output.StatusInstalled))
	printConflicts(id, conflicts)
	return nil
}

// printConflicts renders the conflicts involving the given module, if
// any. Conflicts not involving it were already there and stay quiet.
func printConflicts(id string, conflicts []conflict.Conflict) {
	var involving []conflict.Conflict
	for _, c := range conflicts {
		for _, mod := range c.Modules {
			if mod == id {
				involving = append(involving, c)
				break
			}
		}
	}
	if len(involving) == 0 {
		return
	}

	output.Warn("symbol conflicts detected", "module", id, "count", len(involving))
	output.Println(output.RenderConflictTable(involving))
}
