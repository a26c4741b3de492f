package main

import (
	"fmt"

	"github.com/jonathan/job-analysis/internal/board"
	"github.com/jonathan/job-analysis/internal/filtering"
	"github.com/jonathan/job-analysis/internal/ingestion"
	"github.com/jonathan/job-analysis/internal/observability"
	"github.com/jonathan/job-analysis/internal/rendering"
	"github.com/jonathan/job-analysis/internal/sorting"
	"github.com/spf13/cobra"
)

// viewOptions selects and orders the records shown by list and show
type viewOptions struct {
	file  string
	level string
	typ   string
	skill string
	sort  string
	order string
}

func (o *viewOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Path to jobs JSON file (required)")
	cmd.Flags().StringVar(&o.level, "level", "", "Only show jobs with this level")
	cmd.Flags().StringVar(&o.typ, "type", "", "Only show jobs with this type")
	cmd.Flags().StringVar(&o.skill, "skill", "", "Only show jobs with this skill")
	cmd.Flags().StringVar(&o.sort, "sort", "", "Sort by title or posted")
	cmd.Flags().StringVar(&o.order, "order", "asc", "Sort order: asc or desc")
	_ = cmd.MarkFlagRequired("file")
}

func (o *viewOptions) reset() {
	*o = viewOptions{order: "asc"}
}

// loadBoard reads a jobs file into a fresh board
func loadBoard(path string) (*board.Board, error) {
	jobs, meta, err := ingestion.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	b := board.New()
	b.Load(jobs, meta)
	return b, nil
}

// apply loads the file, filters it, and sorts it when --sort is given.
// Sort warnings are printed to the command's error stream.
func (o *viewOptions) apply(cmd *cobra.Command) (*board.Board, rendering.View, error) {
	b, err := loadBoard(o.file)
	if err != nil {
		return nil, rendering.View{}, err
	}

	view := b.ApplyFilters(filtering.Selection{Level: o.level, Type: o.typ, Skill: o.skill})
	if o.sort == "" {
		return b, view, nil
	}

	field, err := sorting.ParseField(o.sort)
	if err != nil {
		return nil, rendering.View{}, err
	}
	dir, err := sorting.ParseDirection(o.order)
	if err != nil {
		return nil, rendering.View{}, err
	}

	result, err := b.SortJobs(field, dir)
	if err != nil {
		return nil, rendering.View{}, err
	}
	observability.NewPrinter(cmd.ErrOrStderr()).PrintWarnings(result.Warnings)

	return b, result.View, nil
}
