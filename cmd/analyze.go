/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephgoksu/taskrank/internal/input"
	"github.com/josephgoksu/taskrank/internal/logger"
	"github.com/josephgoksu/taskrank/internal/orchestrator"
	"github.com/josephgoksu/taskrank/internal/ui"
	"github.com/spf13/cobra"
)

var (
	analyzeStrategy string
	analyzeOutput   string
)

// errNoInput is returned when neither a file nor piped stdin is available.
var errNoInput = errors.New("no input: pass a FILE, or pipe tasks on stdin")

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE|-]",
	Short: "Validate and rank a JSON list of tasks",
	Long: `Validate a JSON array of tasks and print them ranked by strategy.

Input is read from FILE, or from stdin when FILE is "-" or omitted.
Each task needs title, due_date, estimated_hours and importance (1-10).`,
	Example: `  taskrank analyze tasks.json
  taskrank analyze --strategy deadline tasks.json
  cat tasks.json | taskrank analyze -s suggest -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		strategy, err := resolveStrategy(analyzeStrategy, cfg)
		if err != nil {
			return err
		}
		format := resolveFormat(analyzeOutput, cfg)

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" && cmd.InOrStdin() == os.Stdin && isTerminal(os.Stdin) {
			return errNoInput
		}

		raw, err := input.NewReader(inputFs, cmd.InOrStdin()).Read(path)
		if err != nil {
			return err
		}
		logger.SetLastInput(string(raw))
		logger.SetStrategy(string(strategy))

		renderer, err := newRenderer(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		var opts []orchestrator.Option
		if (format == "cards" || format == "table") && isTerminal(cmd.ErrOrStderr()) {
			spinner := ui.NewSpinnerTo(cmd.ErrOrStderr(), "Analyzing...")
			renderer = ui.NewSpinnerRenderer(renderer, spinner)
			opts = append(opts, orchestrator.WithTrigger(spinner))
		}

		orch, err := newOrchestrator(cfg, renderer, slog.Default(), opts...)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := orch.Run(ctx, raw, strategy); err != nil {
			return &reportedError{err: err}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "ranking strategy: smart, suggest, fastest, highimpact, deadline (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output format: cards, table, json, yaml (default from config)")
}
