package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(jsonFlag)
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit version information as JSON")

	return cmd
}

func runVersion(asJSON bool) error {
	info := version.GetInfo()

	if asJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return exitWith(err)
		}
		output.Println(string(data))
		return nil
	}

	output.Println(fmt.Sprintf("bashmod version %s", info.Version))
	output.Println(fmt.Sprintf("  Commit:    %s", info.GitCommit))
	output.Println(fmt.Sprintf("  Built:     %s", info.BuildDate))
	output.Println(fmt.Sprintf("  Go:        %s", info.GoVersion))
	return nil
}
