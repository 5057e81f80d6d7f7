package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/output"
)

// NewConflictsCmd creates the conflicts command.
func NewConflictsCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report symbol conflicts between installed modules",
		Long: `Scan the installed modules and report every alias, function, and
exported variable that more than one module defines. Module lists read
in install order: the last module listed is the one whose definition
wins when the shell sources the install directory.

Examples:
  bashmod conflicts
  bashmod conflicts --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConflicts(jsonFlag)
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit conflicts as JSON")

	return cmd
}

func runConflicts(asJSON bool) error {
	cfg := GetConfig()

	inst, err := openInstaller(cfg)
	if err != nil {
		return exitWith(err)
	}

	conflicts := inst.Scan()

	if asJSON {
		data, err := json.MarshalIndent(conflicts, "", "  ")
		if err != nil {
			return exitWith(err)
		}
		output.Println(string(data))
		return nil
	}

	if len(conflicts) == 0 {
		output.Println(output.FormatCheckmark("no conflicts between installed modules"))
		return nil
	}

	output.Println(output.RenderConflictTable(conflicts))
	return nil
}
