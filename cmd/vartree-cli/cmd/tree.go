package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vartree/internal/application"
	"vartree/internal/application/commands"
)

var (
	treeDepth  int
	treeHeader bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Display the document as a key/value tree",
	Long: `Display the document, or the subtree at path, as indented key: value lines.

Examples:
  vartree-cli tree -s state.json
  vartree-cli tree -s state.yaml .partitions --depth 1
  cat state.json | vartree-cli tree --header`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		m, err := loadModel(ctx)
		if err != nil {
			return err
		}

		render := commands.NewRenderTreeCommand(m)
		render.MaxDepth = treeDepth
		render.Header = treeHeader

		if len(args) == 1 {
			path, err := application.ParsePath(args[0])
			if err != nil {
				return err
			}
			root, ok := m.Locate(path)
			if !ok {
				return &application.LookupError{Path: path.String()}
			}
			render.Root = root
		}

		out, err := render.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "maximum depth to expand (0 for all)")
	treeCmd.Flags().BoolVar(&treeHeader, "header", false, "print the column titles first")
	rootCmd.AddCommand(treeCmd)
}
