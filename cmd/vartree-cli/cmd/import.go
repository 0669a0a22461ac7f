package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vartree/internal/adapters/sqlite"
)

var importTable string

var importCmd = &cobra.Command{
	Use:   "import <database>",
	Short: "Store a document as sqlite key/value rows",
	Long: `Store the top-level entries of the source document in a sqlite table,
one row per key with the value as JSON. Existing rows are replaced.

The table can then be browsed with --source sqlite://<database>?table=<table>.

Examples:
  vartree-cli import -s state.json gs.db
  vartree-cli import -s s3://configs/state.yaml gs.db --table storage`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		m, err := loadModel(ctx)
		if err != nil {
			return err
		}

		store, err := sqlite.Create(args[0], importTable)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Seed(ctx, *m.Document())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keys into %s (replaced %d)\n",
			stats.Written, store.Describe(), stats.Removed)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importTable, "table", "t", "globalstorage", "table to write")
	rootCmd.AddCommand(importCmd)
}
