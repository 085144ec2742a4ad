package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephgoksu/taskrank/internal/config"
	"github.com/josephgoksu/taskrank/internal/input"
	"github.com/josephgoksu/taskrank/internal/logger"
	"github.com/josephgoksu/taskrank/internal/orchestrator"
	"github.com/josephgoksu/taskrank/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	watchStrategy string
	watchOutput   string
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-rank a task file every time it changes",
	Long: `Analyze FILE once, then again after every save until interrupted.

Saves that arrive while an analysis is still running are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		strategy, err := resolveStrategy(watchStrategy, cfg)
		if err != nil {
			return err
		}
		renderer, err := newRenderer(resolveFormat(watchOutput, cfg), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		orch, err := newOrchestrator(cfg, renderer, slog.Default())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		path := args[0]
		reader := input.NewReader(inputFs, nil)
		analyze := func() {
			raw, err := reader.Read(path)
			if err != nil {
				renderer.Reset()
				renderer.ShowError("Error: " + err.Error())
				return
			}
			logger.SetLastInput(string(raw))
			logger.SetStrategy(string(strategy))

			if _, err := orch.Run(ctx, raw, strategy); errors.Is(err, orchestrator.ErrRunInFlight) {
				slog.Info("change skipped, analysis in progress", "path", path)
			}
		}

		w, err := input.NewWatcher(input.WatchConfig{
			Path:     path,
			Debounce: config.DebounceDelay(cfg),
			OnChange: analyze,
			Logger:   slog.Default(),
		})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), ui.StyleSubtle.Render(fmt.Sprintf("Watching %s (%s). Press Ctrl+C to stop.", w.Path(), strategy)))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return w.Run(gctx)
		})
		g.Go(func() error {
			analyze()
			return nil
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchStrategy, "strategy", "s", "", "ranking strategy (default from config)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output format: cards, table, json, yaml (default from config)")
}
