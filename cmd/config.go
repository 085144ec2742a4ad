package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/taskrank/internal/config"
	"github.com/josephgoksu/taskrank/internal/logger"
	"github.com/josephgoksu/taskrank/types"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig *types.AppConfig

// InitConfig binds flags, reads .env, the config file and TASKRANK_* variables,
// then validates the result and sets up logging.
func InitConfig(cmd *cobra.Command) error {
	v := viper.GetViper()
	flags := cmd.Root().PersistentFlags()

	// Bind persistent flags to Viper
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = v.BindPFlag("api.baseURL", flags.Lookup("api-url"))

	config.SetDefaults(v, version)

	used, err := config.Read(v, config.ReadOptions{ConfigFile: v.GetString("config")})
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	GlobalAppConfig = cfg

	logger.Setup(cmd.ErrOrStderr(), cfg.Verbose, cfg.Log.Format)
	if used != "" {
		slog.Debug("using config file", "path", used)
	}

	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())
	logger.SetBasePath(config.CrashLogBase())

	applyColorMode(cfg.Output.Color, cmd.OutOrStdout())
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *types.AppConfig {
	if GlobalAppConfig == nil {
		panic(fmt.Sprintf("configuration used before %s initialized it", rootCmd.Name()))
	}
	return GlobalAppConfig
}

// applyColorMode sets the lipgloss color profile for output.color.
func applyColorMode(mode string, out io.Writer) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		if !isTerminal(out) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
