package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vartree/internal/application/commands"
	"vartree/internal/domain"
)

var rowsTable bool

var rowsCmd = &cobra.Command{
	Use:     "rows [path]",
	Aliases: []string{"ls"},
	Short:   "List the rows under a node",
	Long: `List the direct children of the node at path (the root by default) with
their row number, key, value and child count.

With --table the flattened row table is printed instead: one line per node
with its table offset and the offset of its parent.

Examples:
  vartree-cli rows -s state.json
  vartree-cli ls -s state.json .partitions
  vartree-cli rows -s state.json --table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		m, err := loadModel(ctx)
		if err != nil {
			return err
		}

		if rowsTable {
			printRowTable(cmd.OutOrStdout(), m)
			return nil
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		entries, err := commands.NewListChildrenCommand(m, path).Execute(ctx)
		if err != nil {
			return err
		}
		printEntries(cmd.OutOrStdout(), entries)
		return nil
	},
}

func printEntries(w io.Writer, entries []commands.ListEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		key := "-"
		if e.Key.IsValid() {
			key = e.Key.String()
		}
		children := ""
		if e.Children > 0 {
			children = fmt.Sprintf("(%d)", e.Children)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Index.Row(), key, e.Value, children)
	}
	tw.Flush()
}

func printRowTable(w io.Writer, m *domain.VariantModel) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "offset\tparent")
	for offset, parent := range m.Rows() {
		fmt.Fprintf(tw, "%d\t%d\n", offset, parent)
	}
	tw.Flush()
}

func init() {
	rowsCmd.Flags().BoolVar(&rowsTable, "table", false, "print the flattened row table")
	rootCmd.AddCommand(rowsCmd)
}
