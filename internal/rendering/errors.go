package rendering

import "fmt"

// Output names the format a render call was producing
type Output string

const (
	OutputHTML  Output = "html"
	OutputTable Output = "table"
)

// TemplateError is a failure executing a named page template
type TemplateError struct {
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Template, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError is a failure producing or writing one output format
type RenderError struct {
	Output  Output
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %s: %v", e.Output, e.Message, e.Cause)
	}
	return fmt.Sprintf("render %s: %s", e.Output, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
