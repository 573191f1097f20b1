// Package config provides configuration management for fuzzreport.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with FUZZREPORT_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml,
//     $XDG_CONFIG_HOME/fuzzreport/config.yaml, /etc/fuzzreport/config.yaml)
//  3. .env file (loaded into the process environment)
//  4. Environment variables (FUZZREPORT_ prefix)
//
// # Environment Variables
//
// Use the FUZZREPORT_ prefix and underscores for nested keys:
//   - FUZZREPORT_LOGGING_LEVEL=debug
//   - FUZZREPORT_SCHEMA_FORMAT=yaml
//   - FUZZREPORT_COLLECT_HOSTNAME=build-01
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"evalgo.org/fuzzreport/internal/schema"
)

// AppName names the configuration directories.
const AppName = "fuzzreport"

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FUZZREPORT"

// Config is the root configuration structure.
type Config struct {
	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Schema contains schema rendering settings
	Schema SchemaConfig `mapstructure:"schema" yaml:"schema"`

	// Collect contains local inventory collection settings
	Collect CollectConfig `mapstructure:"collect" yaml:"collect"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log format (json, console)
	Format string `mapstructure:"format" yaml:"format"`
}

// SchemaConfig contains schema rendering configuration.
type SchemaConfig struct {
	// Format is the default rendering (json, yaml, markdown)
	Format string `mapstructure:"format" yaml:"format"`
}

// CollectConfig contains local inventory collection configuration.
type CollectConfig struct {
	// Hostname overrides the probed hostname when set
	Hostname string `mapstructure:"hostname" yaml:"hostname"`
}

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
// A missing file is not an error; defaults apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath(Dir())
		v.AddConfigPath("/etc/" + AppName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isFileNotFoundError(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Load .env file if it exists
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no source overrides anything.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn", Format: "console"},
		Schema:  SchemaConfig{Format: string(schema.FormatJSON)},
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	v.SetDefault("schema.format", def.Schema.Format)

	v.SetDefault("collect.hostname", def.Collect.Hostname)
}

func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", cfg.Logging.Level)
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %q", cfg.Logging.Format)
	}

	if _, err := schema.ParseFormat(cfg.Schema.Format); err != nil {
		return err
	}

	return nil
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
