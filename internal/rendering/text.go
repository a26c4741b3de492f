package rendering

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// RenderText writes one label per line, or the empty message.
func RenderText(w io.Writer, view View) error {
	if view.Empty {
		_, err := fmt.Fprintln(w, view.Message)
		return err
	}
	for _, row := range view.Rows {
		if _, err := fmt.Fprintf(w, "%d. %s\n", row.Index+1, row.Label); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable formats the view as a bordered table with a header row.
// An empty view renders as the empty message alone.
func RenderTable(view View) (string, error) {
	if view.Empty {
		return view.Message, nil
	}

	data := pterm.TableData{{"#", "Title", "Type", "Level", "Posted"}}
	for _, row := range view.Rows {
		data = append(data, []string{
			fmt.Sprintf("%d", row.Index+1),
			row.Title,
			row.Type,
			row.Level,
			row.Posted,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", &RenderError{Output: OutputTable, Message: "failed to render table", Cause: err}
	}
	return out, nil
}
