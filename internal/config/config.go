// Package config loads taskrank settings from flags, environment, .env and
// an optional .taskrank.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/taskrank/types"
	"github.com/spf13/viper"
)

const (
	configName = ".taskrank"
	envPrefix  = "TASKRANK"

	DefaultBaseURL        = "http://127.0.0.1:8000/api/"
	DefaultStrategy       = "smart"
	DefaultDebounceMillis = 300
)

// validate is a single instance of Validate, it caches struct info
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report keys as they are written in config files.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper, version string) {
	v.SetDefault("api.baseURL", DefaultBaseURL)
	v.SetDefault("api.timeoutSeconds", 0)
	v.SetDefault("api.userAgent", "taskrank/"+version)
	v.SetDefault("strategy", DefaultStrategy)
	v.SetDefault("output.format", "cards")
	v.SetDefault("output.color", "auto")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.debounceMillis", DefaultDebounceMillis)
	v.SetDefault("verbose", false)
}

// ReadOptions controls where Read looks for configuration.
type ReadOptions struct {
	// ConfigFile, when set, is the only file read and must exist.
	ConfigFile string
	// EnvFiles are loaded into the process environment first; missing
	// files are ignored. Defaults to ".env".
	EnvFiles []string
}

// Read wires environment variables into v and reads the config file.
// It returns the path of the file used, or "" when none was found.
func Read(v *viper.Viper, opts ReadOptions) (string, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// It's okay if the .env file doesn't exist.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("load %s: %w", f, err)
		}
	}

	v.SetEnvPrefix(envPrefix) // e.g., TASKRANK_API_BASEURL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
		}
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if info, err := os.Stat(ProjectConfigDir); err == nil && info.IsDir() {
			v.AddConfigPath(ProjectConfigDir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
	}
	return v.ConfigFileUsed(), nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if err := validate.Struct(&cfg); err != nil {
		return nil, describeValidation(err)
	}
	return &cfg, nil
}

// RequestTimeout converts the configured timeout to a duration.
func RequestTimeout(cfg *types.AppConfig) time.Duration {
	return time.Duration(cfg.API.TimeoutSeconds) * time.Second
}

// DebounceDelay converts the configured debounce to a duration.
func DebounceDelay(cfg *types.AppConfig) time.Duration {
	return time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
}

// describeValidation turns validator errors into one line per bad key.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func configKey(namespace string) string {
	return strings.TrimPrefix(namespace, "AppConfig.")
}
