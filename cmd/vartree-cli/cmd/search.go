package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vartree/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search keys and values",
	Long: `Search the document for keys and scalar values.

Results are ranked by relevance using fuzzy matching.

Examples:
  vartree-cli search -s state.json sda
  vartree-cli search -s state.json productName`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		ctx := context.Background()

		m, err := loadModel(ctx)
		if err != nil {
			return err
		}

		searchCmd := commands.NewSearchCommand(m, query)
		searchCmd.Limit = searchLimit
		results, err := searchCmd.Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			if r.Value == "" {
				fmt.Fprintf(out, "%s\n", r.Path)
				continue
			}
			fmt.Fprintf(out, "%s = %s\n", r.Path, r.Value)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 for all)")
	rootCmd.AddCommand(searchCmd)
}
