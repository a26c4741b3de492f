package main

import (
	"fmt"

	"github.com/jonathan/job-analysis/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	listOpts  viewOptions
	listPlain bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings as a table",
	Long:  "Load a jobs file, apply the level/type/skill filters, optionally sort by title or posting age, and print the result.",
	Example: `  job_analysis list --file jobs.json --level Senior --sort posted --order desc
  job_analysis list -f jobs.json --plain`,
	RunE: runList,
}

func init() {
	listOpts.register(listCmd)
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Print one line per job instead of a table")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	_, view, err := listOpts.apply(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listPlain {
		return rendering.RenderText(out, view)
	}

	table, err := rendering.RenderTable(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, table)
	return err
}
