package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/jonathan/job-analysis/internal/filtering"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").ParseFS(templateFS, "templates/page.html.tmpl"),
)

// FilterControl is one single-selection filter on the page
type FilterControl struct {
	Name     string // form field name
	Label    string // text of the unset "all" option
	Options  []string
	Selected string
}

// SortControl is one sort trigger with its stored direction
type SortControl struct {
	Field     string
	Label     string
	Direction string
}

// Page is everything the HTML page shows
type Page struct {
	Title   string
	Source  string // name of the loaded file, if any
	Total   int    // size of the full set
	View    View
	Filters []FilterControl
	Sorts   []SortControl
	Detail  *Detail
	Error   string
}

// NewFilterControls builds the level/type/skill controls from the options
// of the full set and the current selection.
func NewFilterControls(opts filtering.Options, sel filtering.Selection) []FilterControl {
	return []FilterControl{
		{Name: "level", Label: "Filter by level", Options: opts.Levels, Selected: sel.Level},
		{Name: "type", Label: "Filter by type", Options: opts.Types, Selected: sel.Type},
		{Name: "skill", Label: "Filter by skill", Options: opts.Skills, Selected: sel.Skill},
	}
}

// RenderHTML writes the full page. Nothing is written if the template fails.
func RenderHTML(w io.Writer, page Page) error {
	if page.Title == "" {
		page.Title = "Job Analysis"
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return &TemplateError{Template: pageTemplate.Name(), Cause: err}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Output: OutputHTML, Message: "failed to write page", Cause: err}
	}
	return nil
}
