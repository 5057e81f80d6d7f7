package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raremonarch/bashmod/internal/output"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var categoriesFlag bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search registry modules",
		Long: `Search modules by id, name, description, or category. Matching is
case-insensitive substring matching.

Examples:
  # Find anything git-related
  bashmod search git

  # List the categories the registry uses
  bashmod search --categories`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSearch(cmd.Context(), query, categoriesFlag)
		},
	}

	cmd.Flags().BoolVar(&categoriesFlag, "categories", false, "List registry categories instead of modules")

	return cmd
}

func runSearch(ctx context.Context, query string, categories bool) error {
	cfg := GetConfig()

	result, err := fetchMergedManifest(ctx, cfg)
	if err != nil {
		return exitWith(err)
	}
	reportIssues(result.Issues)

	if categories {
		cats := result.Manifest.Categories()
		if len(cats) == 0 {
			output.Println("No categories.")
			return nil
		}
		output.Println(strings.Join(cats, "\n"))
		return nil
	}

	matches := result.Manifest.Search(query)
	if len(matches) == 0 {
		output.Println("No modules match.")
		return nil
	}

	rows := make([]output.ModuleRow, 0, len(matches))
	for _, desc := range matches {
		rows = append(rows, output.ModuleRow{
			ID:          desc.ID,
			Version:     desc.Version,
			Category:    desc.Category,
			Status:      output.StatusAvailable,
			Description: desc.Description,
		})
	}
	output.Println(output.RenderModuleTable(rows))
	return nil
}
