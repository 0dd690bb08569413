package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

const maxCellWidth = 32

// Table writes one row per column using a light box-drawing style.
func Table(w io.Writer, env *Envelope) error {
	r := env.Report
	if env.Source != "" {
		if _, err := fmt.Fprintf(w, "%s: %d rows, %d columns, delimiter %s\n", env.Source, r.RowCount, r.ColumnCount, delimiterName(r.DetectedDelimiter)); err != nil {
			return err
		}
	}
	if len(r.Columns) == 0 {
		_, err := fmt.Fprintln(w, "(0 columns)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Confidence", "Subtypes", "Total", "Analyzed", "Nulls", "Unique", "Min", "Max", "Length"})
	for _, c := range r.Columns {
		t.AppendRow(table.Row{
			safeName(c.Name),
			c.TypeName.String(),
			fmt.Sprintf("%.1f%%", c.Confidence*100),
			joinTypes(c.Subtypes, ","),
			c.TotalCount,
			c.AnalyzedCount,
			c.NullCount,
			uniqueText(c),
			truncate(deref(c.MinValue)),
			truncate(deref(c.MaxValue)),
			fmt.Sprintf("%d-%d", c.MinLength, c.MaxLength),
		})
	}
	t.Render()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string) string {
	r := []rune(safeVal(s))
	if len(r) > maxCellWidth {
		return string(r[:maxCellWidth-3]) + "..."
	}
	return string(r)
}
