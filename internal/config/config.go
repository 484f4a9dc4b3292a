// Package config resolves json-parse runtime settings from command-line
// flags and JSONPARSE_* environment variables.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override flag
// defaults, e.g. JSONPARSE_WORKERS.
const EnvPrefix = "JSONPARSE"

// DefaultMaxInputSize bounds a single input read (64 MiB).
const DefaultMaxInputSize = 64 * 1024 * 1024

// Flag names.
const (
	FlagWorkers      = "workers"
	FlagMaxInputSize = "max-input-size"
	FlagLogLevel     = "log-level"
	FlagMetricsFile  = "metrics-file"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds resolved settings.
type Config struct {
	Workers      int
	MaxInputSize int
	LogLevel     string
	MetricsFile  string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workers:      runtime.GOMAXPROCS(0),
		MaxInputSize: DefaultMaxInputSize,
		LogLevel:     "info",
	}
}

// RegisterGlobalFlags adds the flags shared by every command.
func RegisterGlobalFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(FlagMaxInputSize, d.MaxInputSize, "maximum size of a single input in bytes")
	fs.String(FlagLogLevel, d.LogLevel, "log level: "+strings.Join(logLevels, ", "))
}

// RegisterValidateFlags adds the flags of the batch validation command.
func RegisterValidateFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(FlagWorkers, d.Workers, "number of inputs parsed concurrently")
	fs.String(FlagMetricsFile, "", "write Prometheus text-format metrics to this file after the run")
}

// Load resolves a Config from fs and the environment. Explicitly set flags
// take precedence over environment variables, which take precedence over
// defaults. Flags absent from fs fall back to environment and defaults.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(FlagWorkers, d.Workers)
	v.SetDefault(FlagMaxInputSize, d.MaxInputSize)
	v.SetDefault(FlagLogLevel, d.LogLevel)
	v.SetDefault(FlagMetricsFile, d.MetricsFile)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := Config{
		Workers:      v.GetInt(FlagWorkers),
		MaxInputSize: v.GetInt(FlagMaxInputSize),
		LogLevel:     strings.ToLower(v.GetString(FlagLogLevel)),
		MetricsFile:  v.GetString(FlagMetricsFile),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("config: %s must be positive, got %d", FlagWorkers, c.Workers)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("config: %s must be positive, got %d", FlagMaxInputSize, c.MaxInputSize)
	}
	for _, l := range logLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("config: unknown %s %q", FlagLogLevel, c.LogLevel)
}
