/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose  bool         `mapstructure:"verbose"`
	Config   string       `mapstructure:"config"`
	Strategy string       `mapstructure:"strategy" validate:"required,oneof=smart suggest fastest highimpact deadline"`
	API      APIConfig    `mapstructure:"api" validate:"required"`
	Output   OutputConfig `mapstructure:"output" validate:"required"`
	Log      LogConfig    `mapstructure:"log" validate:"required"`
	Watch    WatchConfig  `mapstructure:"watch" validate:"required"`
}

// APIConfig holds the scoring service connection settings
type APIConfig struct {
	BaseURL string `mapstructure:"baseURL" validate:"required,url,startswith=http"`
	// TimeoutSeconds bounds each request; 0 disables the timeout
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" validate:"min=0,max=600"`
	UserAgent      string `mapstructure:"userAgent"`
}

// OutputConfig controls how results are presented
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=cards table json yaml"`
	Color  string `mapstructure:"color" validate:"required,oneof=auto always never"`
}

// LogConfig controls diagnostic logging on stderr
type LogConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// WatchConfig holds settings for watch mode
type WatchConfig struct {
	DebounceMillis int `mapstructure:"debounceMillis" validate:"min=50,max=10000"`
}
