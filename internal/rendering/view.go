// Package rendering projects the working set of job postings into
// renderable descriptions and writes them as HTML, text, or tables.
package rendering

import (
	"fmt"

	"github.com/jonathan/job-analysis/internal/types"
)

// EmptyMessage is shown instead of rows when the working set is empty
const EmptyMessage = "No jobs available."

// Row is one rendered job in the list
type Row struct {
	Index  int    `json:"index"` // position in the working set
	Title  string `json:"title"`
	Type   string `json:"type"`
	Level  string `json:"level"`
	Posted string `json:"posted"`
	Label  string `json:"label"`
}

// View is the renderable description of a working set
type View struct {
	Rows    []Row  `json:"rows"`
	Count   int    `json:"count"`
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

// Detail is the full description of one selected job
type Detail struct {
	Index int       `json:"index"`
	Job   types.Job `json:"job"`
	Text  string    `json:"text"`
	Age   string    `json:"age"` // humanized, e.g. "3 days ago"
}

// Project builds the View for a working set. It owns no state.
func Project(working []types.Job) View {
	if len(working) == 0 {
		return View{
			Rows:    []Row{},
			Empty:   true,
			Message: EmptyMessage,
		}
	}

	rows := make([]Row, 0, len(working))
	for i, job := range working {
		rows = append(rows, Row{
			Index:  i,
			Title:  job.Title,
			Type:   job.Type,
			Level:  job.Level,
			Posted: job.Posted,
			Label:  RowLabel(job),
		})
	}

	return View{Rows: rows, Count: len(rows)}
}

// RowLabel is the one-line summary of a job: "title - type - level (posted)"
func RowLabel(job types.Job) string {
	return fmt.Sprintf("%s - %s - %s (%s)", job.Title, job.Type, job.Level, job.Posted)
}
