package main

import (
	"fmt"

	"github.com/jonathan/job-analysis/internal/board"
	"github.com/jonathan/job-analysis/internal/config"
	"github.com/jonathan/job-analysis/internal/ingestion"
	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/jonathan/job-analysis/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigFile string
	servePreload    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the job analysis web page",
	Long: `Start an HTTP server that hosts the job analysis page and its JSON endpoints.

Settings are read from the optional --config file (json, yaml or toml) and
JOB_ANALYSIS_* environment variables; flags override both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to config file")
	serveCmd.Flags().StringVarP(&servePreload, "file", "f", "", "Jobs file to load at startup")
	rootCmd.AddCommand(serveCmd)
}

// resolveServeConfig layers flags over the loaded config
func resolveServeConfig() (config.Config, error) {
	loaded, err := config.LoadConfig(serveConfigFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := config.Config{Port: servePort, PreloadFile: servePreload}
	cfg := flags.MergeWithDefaults(*loaded)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig()
	if err != nil {
		return err
	}

	// --log-level wins over the config file when given
	if !cmd.Flags().Changed("log-level") {
		if err := observability.SetLogLevel(cfg.LogLevel); err != nil {
			return err
		}
	}

	b := board.New(board.WithMaxUploadBytes(cfg.MaxUploadBytes))

	if cfg.PreloadFile != "" {
		jobs, meta, err := ingestion.LoadFile(cfg.PreloadFile)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.PreloadFile, err)
		}
		id := b.Load(jobs, meta)
		observability.Log.WithFields(logrus.Fields{
			"upload_id": id,
			"source":    meta.Source,
			"count":     meta.Count,
		}).Info("Jobs preloaded")
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, b)

	return srv.Start()
}
