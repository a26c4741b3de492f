// Package observability provides the process logger and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-analysis/internal/filtering"
	"github.com/jonathan/job-analysis/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintJobDetail outputs every field of one job plus its humanized age.
// The free-text detail is wrapped to the box width instead of truncated.
func (p *Printer) PrintJobDetail(job *types.Job, age string) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:   %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Posted:  %s", job.Posted))
	if age != "" && age != job.Posted {
		sb.WriteString(fmt.Sprintf(" (%s)", age))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Type:    %s\n", job.Type))
	sb.WriteString(fmt.Sprintf("Level:   %s\n", job.Level))
	sb.WriteString(fmt.Sprintf("Skill:   %s\n", job.Skill))
	sb.WriteString("\n")
	sb.WriteString("Details:\n")
	for _, line := range wrap(job.Detail, boxWidth-6) {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	p.printBox("JOB DETAIL", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// PrintFilterOptions outputs the distinct values available for each filter.
func (p *Printer) PrintFilterOptions(opts *filtering.Options) {
	if opts == nil {
		return
	}

	var sb strings.Builder
	writeOptions(&sb, "Levels", opts.Levels)
	sb.WriteString("\n")
	writeOptions(&sb, "Types", opts.Types)
	sb.WriteString("\n")
	writeOptions(&sb, "Skills", opts.Skills)

	p.printBox("FILTER OPTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeOptions(sb *strings.Builder, label string, values []string) {
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(values)))
	if len(values) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	for _, v := range values {
		sb.WriteString(fmt.Sprintf("  • %s\n", v))
	}
}

// PrintWarnings outputs sort diagnostics, such as posting ages that could not be parsed.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))

	count := min(len(warnings), maxItemsToShow)
	for i := 0; i < count; i++ {
		for j, line := range wrap(warnings[i], boxWidth-6) {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("⚠ %s\n", line))
			} else {
				sb.WriteString(fmt.Sprintf("  %s\n", line))
			}
		}
	}
	if len(warnings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(warnings)-maxItemsToShow))
	}

	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}
