package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vartree/internal/adapters/codec"
	"vartree/internal/application/commands"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a path",
	Long: `Print the value at path. Scalars print as plain text, containers as
indented JSON.

Examples:
  vartree-cli get -s state.json .branding.productName
  vartree-cli get -s state.json 'partitions[0]'
  vartree-cli get -s state.json . --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		m, err := loadModel(ctx)
		if err != nil {
			return err
		}

		result, err := commands.NewLookupCommand(m, args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Value.IsScalar() && !getJSON {
			fmt.Fprintln(out, result.Value.String())
			return nil
		}

		data, err := codec.EncodeJSONIndent(result.Value)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "print scalars as JSON too")
	rootCmd.AddCommand(getCmd)
}
