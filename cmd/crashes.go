package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/josephgoksu/taskrank/internal/logger"
	"github.com/josephgoksu/taskrank/internal/ui"
	"github.com/spf13/cobra"
)

var crashesCmd = &cobra.Command{
	Use:   "crashes [NAME]",
	Short: "List crash logs, or print one",
	Long: `List the crash logs written when taskrank panicked, newest last.

Pass a log's file name to print it, or "latest" for the most recent one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		paths, err := logger.ListCrashLogs()
		if err != nil {
			return fmt.Errorf("list crash logs: %w", err)
		}

		if len(args) == 0 {
			if len(paths) == 0 {
				_, _ = fmt.Fprintln(out, ui.StyleSubtle.Render("No crash logs."))
				return nil
			}
			table := &ui.Table{Headers: []string{"#", "Name", "Path"}}
			for i, p := range paths {
				table.Rows = append(table.Rows, []string{fmt.Sprint(i + 1), filepath.Base(p), p})
			}
			_, _ = fmt.Fprint(out, table.Render())
			return nil
		}

		name := args[0]
		var target string
		for _, p := range paths {
			if filepath.Base(p) == name {
				target = p
			}
		}
		if name == "latest" && len(paths) > 0 {
			target = paths[len(paths)-1]
		}
		if target == "" {
			return fmt.Errorf("crash log %q not found", name)
		}

		content, err := logger.ReadCrashLog(target)
		if err != nil {
			return fmt.Errorf("read crash log: %w", err)
		}
		_, _ = fmt.Fprint(out, content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crashesCmd)
}
