package main

import (
	"fmt"

	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/spf13/cobra"
)

var (
	showOpts  viewOptions
	showIndex int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every field of one job posting",
	Long: `Print the full description of one job posting.

--index is the 1-based position printed by list; pass the same filter and
sort flags as to list so that positions line up.`,
	Example: `  job_analysis show --file jobs.json --index 2
  job_analysis show -f jobs.json --sort title --index 1`,
	RunE: runShow,
}

func init() {
	showOpts.register(showCmd)
	showCmd.Flags().IntVarP(&showIndex, "index", "n", 0, "1-based position of the job (required)")
	_ = showCmd.MarkFlagRequired("index")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	if showIndex < 1 {
		return fmt.Errorf("--index must be at least 1")
	}

	b, _, err := showOpts.apply(cmd)
	if err != nil {
		return err
	}

	detail, err := b.Detail(showIndex - 1)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintJobDetail(&detail.Job, detail.Age)
	return nil
}
