// Package main provides the entry point for the job analysis UI host and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "job_analysis",
	Short: "Browse, filter and sort job postings",
	Long:  "Job Analysis loads a JSON array of job postings and lets you filter them by level, type and skill, sort them by title or posting age, and inspect each posting, either in the browser (serve) or from the terminal.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return observability.SetLogLevel(logLevel)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
