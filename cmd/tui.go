package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/josephgoksu/taskrank/internal/input"
	"github.com/josephgoksu/taskrank/internal/logger"
	"github.com/josephgoksu/taskrank/internal/orchestrator"
	"github.com/josephgoksu/taskrank/internal/ui"
	"github.com/josephgoksu/taskrank/models"
	"github.com/spf13/cobra"
)

var tuiStrategy string

var tuiCmd = &cobra.Command{
	Use:   "tui [FILE]",
	Short: "Edit tasks and rank them interactively",
	Long: `Open an interactive editor for a JSON task list.

Ctrl+S analyzes the current text, Tab cycles strategies. FILE, when given,
pre-fills the editor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		strategy, err := resolveStrategy(tuiStrategy, cfg)
		if err != nil {
			return err
		}

		var initial string
		if len(args) == 1 {
			raw, err := input.NewReader(inputFs, cmd.InOrStdin()).Read(args[0])
			if err != nil {
				return err
			}
			initial = string(raw)
		}

		// Log lines written to stderr would tear the alternate screen.
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		if cfg.Verbose {
			log = slog.Default()
		}

		bridge := &ui.TUIBridge{}
		orch, err := newOrchestrator(cfg, bridge, log, orchestrator.WithTrigger(bridge))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return ui.RunAnalyzer(ui.AnalyzerOptions{
			Initial:  initial,
			Strategy: strategy,
			Submit: func(raw []byte, s models.Strategy) error {
				logger.SetLastInput(string(raw))
				logger.SetStrategy(string(s))
				_, err := orch.Run(ctx, raw, s)
				return err
			},
		}, bridge)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVarP(&tuiStrategy, "strategy", "s", "", "initial ranking strategy (default from config)")
}
