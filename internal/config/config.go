// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JOB_ANALYSIS_PORT
const EnvPrefix = "JOB_ANALYSIS"

// Config represents the application configuration.
// Values come from defaults, then an optional config file, then the environment.
type Config struct {
	Port           int           `mapstructure:"port" json:"port,omitempty" validate:"min=1,max=65535"`
	LogLevel       string        `mapstructure:"log_level" json:"log_level,omitempty" validate:"oneof=debug info warn warning error fatal"`
	PreloadFile    string        `mapstructure:"preload_file" json:"preload_file,omitempty"` // jobs file loaded at startup
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" json:"max_upload_bytes,omitempty" validate:"min=1"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" json:"read_timeout,omitempty"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" json:"write_timeout,omitempty"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:           8080,
		LogLevel:       "info",
		MaxUploadBytes: 10 << 20,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
	}
}

// LoadConfig loads configuration from defaults, the file at path (if path is
// non-empty) and JOB_ANALYSIS_* environment variables. The file format is
// chosen by its extension (json, yaml, toml).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("preload_file", defaults.PreloadFile)
	v.SetDefault("max_upload_bytes", defaults.MaxUploadBytes)
	v.SetDefault("read_timeout", defaults.ReadTimeout)
	v.SetDefault("write_timeout", defaults.WriteTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (got %v)",
				toSnakeCase(first.Field()), first.Tag(), first.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.ReadTimeout < 0 {
		return fmt.Errorf("config error: 'read_timeout' must be non-negative")
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("config error: 'write_timeout' must be non-negative")
	}

	if c.PreloadFile != "" {
		if _, err := os.Stat(c.PreloadFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: preload file not found: %s", c.PreloadFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// CLI flags are passed as c so that explicitly set flags win over the file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.PreloadFile == "" {
		result.PreloadFile = defaults.PreloadFile
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.ReadTimeout == 0 {
		result.ReadTimeout = defaults.ReadTimeout
	}
	if result.WriteTimeout == 0 {
		result.WriteTimeout = defaults.WriteTimeout
	}

	return result
}

func toSnakeCase(field string) string {
	var sb strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
