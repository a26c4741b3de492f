package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, Default(), *cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"log_level": "debug",
		"max_upload_bytes": 2048,
		"read_timeout": "5s"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout, "unset keys keep defaults")
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "port: 7070\nlog_level: warn\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("JOB_ANALYSIS_PORT", "6060")
	t.Setenv("JOB_ANALYSIS_LOG_LEVEL", "error")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port too large", func(c *Config) { c.Port = 70000 }, "port"},
		{"port zero", func(c *Config) { c.Port = 0 }, "port"},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
		{"upload limit", func(c *Config) { c.MaxUploadBytes = 0 }, "max_upload_bytes"},
		{"negative timeout", func(c *Config) { c.ReadTimeout = -time.Second }, "read_timeout"},
		{"missing preload", func(c *Config) { c.PreloadFile = "/nonexistent/jobs.json" }, "preload file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_PreloadFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	cfg := Default()
	cfg.PreloadFile = path
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Port:           8080,
		LogLevel:       "info",
		PreloadFile:    "jobs.json",
		MaxUploadBytes: 1024,
		ReadTimeout:    time.Second,
	}

	partial := Config{
		Port:     9000,
		LogLevel: "debug",
	}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, "jobs.json", merged.PreloadFile)
	assert.Equal(t, int64(1024), merged.MaxUploadBytes)
	assert.Equal(t, time.Second, merged.ReadTimeout)
	assert.Zero(t, merged.WriteTimeout)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "max_upload_bytes", toSnakeCase("MaxUploadBytes"))
	assert.Equal(t, "port", toSnakeCase("Port"))
}
