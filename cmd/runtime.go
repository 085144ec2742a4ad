package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/josephgoksu/taskrank/internal/analysis"
	"github.com/josephgoksu/taskrank/internal/config"
	"github.com/josephgoksu/taskrank/internal/orchestrator"
	"github.com/josephgoksu/taskrank/internal/ui"
	"github.com/josephgoksu/taskrank/models"
	"github.com/josephgoksu/taskrank/types"
	"github.com/spf13/afero"
)

// inputFs is the filesystem task files are read from; tests swap it.
var inputFs afero.Fs = afero.NewOsFs()

// newAnalyzer builds the scoring service client from config.
func newAnalyzer(cfg *types.AppConfig, log *slog.Logger) (*analysis.Client, error) {
	return analysis.New(analysis.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   config.RequestTimeout(cfg),
		UserAgent: cfg.API.UserAgent,
		Logger:    log,
	})
}

// newOrchestrator wires a client and renderer into an orchestrator.
func newOrchestrator(cfg *types.AppConfig, renderer orchestrator.Renderer, log *slog.Logger, opts ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	client, err := newAnalyzer(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("configure scoring service: %w", err)
	}
	opts = append([]orchestrator.Option{orchestrator.WithLogger(log)}, opts...)
	return orchestrator.New(client, renderer, opts...), nil
}

// newRenderer picks the renderer for an output format.
func newRenderer(format string, out, errOut io.Writer) (orchestrator.Renderer, error) {
	switch format {
	case "cards", "":
		return ui.NewCardRenderer(out, errOut), nil
	case "table":
		return ui.NewTableRenderer(out, errOut), nil
	case "json":
		return ui.NewStructuredRenderer(out, errOut, ui.FormatJSON)
	case "yaml":
		return ui.NewStructuredRenderer(out, errOut, ui.FormatYAML)
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected cards, table, json or yaml)", format)
	}
}

// resolveStrategy prefers the flag value, then the configured default.
func resolveStrategy(flagValue string, cfg *types.AppConfig) (models.Strategy, error) {
	name := flagValue
	if name == "" {
		name = cfg.Strategy
	}
	return models.ParseStrategy(name)
}

// resolveFormat prefers the flag value, then the configured default.
func resolveFormat(flagValue string, cfg *types.AppConfig) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Output.Format
}
