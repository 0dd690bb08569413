package render

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// ExportHeader is the header row written by ExportCSV.
var ExportHeader = []string{
	"name", "type_name", "confidence", "subtypes", "format_examples",
	"total_count", "analyzed_count", "valid_count", "unique_values", "null_count",
	"min_value", "max_value", "min_length", "max_length",
}

// ExportCSV writes the column reports as a delimited file, one row per column.
// List-valued fields are joined with "; ".
func ExportCSV(w io.Writer, env *Envelope, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, c := range env.Report.Columns {
		rec := []string{
			c.Name,
			c.TypeName.String(),
			strconv.FormatFloat(c.Confidence, 'f', 4, 64),
			joinTypes(c.Subtypes, "; "),
			strings.Join(c.FormatExamples, "; "),
			strconv.Itoa(c.TotalCount),
			strconv.Itoa(c.AnalyzedCount),
			strconv.Itoa(c.ValidCount),
			strconv.Itoa(c.UniqueValues),
			strconv.Itoa(c.NullCount),
			deref(c.MinValue),
			deref(c.MaxValue),
			strconv.Itoa(c.MinLength),
			strconv.Itoa(c.MaxLength),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
