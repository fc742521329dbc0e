package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// TableRenderer draws the matrix grid as a table.
type TableRenderer struct {
	Out   io.Writer // defaults to os.Stdout
	Width int       // terminal width override (0 = auto-detect)
}

var _ contract.Renderer = &TableRenderer{} // Compile-time check

// Render implements the Renderer interface.
func (r *TableRenderer) Render(view schema.MatrixView) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	return writeMatrixTable(out, view, r.Width)
}

// writeMatrixTable prints one row per option and one column per criterion.
// Header cells carry the position, the name and the weight so commands can
// reference criteria by number.
func writeMatrixTable(w io.Writer, view schema.MatrixView, width int) error {
	if len(view.Options) == 0 && len(view.Criteria) == 0 {
		_, err := fmt.Fprintln(w, "The matrix is empty. Add options and criteria to get started.")
		return err
	}

	nameWidth := GetMaxTableNameWidth(width, len(view.Criteria)+1)

	headers := make([]string, 0, len(view.Criteria)+2)
	headers = append(headers, "#", "Option")
	for i, c := range view.Criteria {
		headers = append(headers, fmt.Sprintf("%d. %s (w=%s)", i+1, contract.TruncateName(c.Name, nameWidth), formatNumber(c.Weight)))
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(view.Rows))
	for i, row := range view.Rows {
		line := make([]string, 0, len(headers))
		line = append(line, fmt.Sprintf("%d", i+1), contract.TruncateName(row.Name, nameWidth))
		for _, cell := range row.Cells {
			value := formatNumber(cell.Value)
			if !cell.Stored {
				value += "*"
			}
			line = append(line, value)
		}
		data = append(data, line)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if !view.Ready {
		_, err := fmt.Fprintln(w, "Add options and criteria to calculate results.")
		return err
	}
	return nil
}
