package cmd

import (
	"fmt"

	"github.com/josephgoksu/taskrank/internal/ui"
	"github.com/josephgoksu/taskrank/models"
	"github.com/spf13/cobra"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available ranking strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		table := &ui.Table{Headers: []string{"Strategy", "Source", "Description"}}
		for _, s := range models.Strategies() {
			source := "local"
			if s.IsRemote() {
				source = "remote"
			}
			name := string(s)
			if name == cfg.Strategy {
				name += " *"
			}
			table.Rows = append(table.Rows, []string{name, source, s.Description()})
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprint(out, table.Render())
		_, _ = fmt.Fprintln(out, ui.StyleSubtle.Render("* configured default"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
