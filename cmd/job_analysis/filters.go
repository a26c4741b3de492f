package main

import (
	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/spf13/cobra"
)

var filtersFile string

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Print the available filter values",
	Long:  "Print the distinct level, type and skill values of a jobs file in the order they first appear.",
	RunE:  runFilters,
}

func init() {
	filtersCmd.Flags().StringVarP(&filtersFile, "file", "f", "", "Path to jobs JSON file (required)")
	_ = filtersCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(cmd *cobra.Command, _ []string) error {
	b, err := loadBoard(filtersFile)
	if err != nil {
		return err
	}

	opts := b.Options()
	observability.NewPrinter(cmd.OutOrStdout()).PrintFilterOptions(&opts)
	return nil
}
