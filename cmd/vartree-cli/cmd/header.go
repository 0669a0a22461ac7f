package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vartree/internal/domain"
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Print the column titles",
	Long: `Print the localized column titles, one per line.

Examples:
  vartree-cli header -s state.json --lang de`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(context.Background())
		if err != nil {
			return err
		}

		for section := 0; section < m.ColumnCount(domain.ModelIndex{}); section++ {
			title := m.HeaderData(section, domain.Horizontal, domain.RoleDisplay)
			fmt.Fprintln(cmd.OutOrStdout(), title.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
}
