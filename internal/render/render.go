// Package render turns analysis reports into table, Markdown, JSON, and CSV
// output. It holds no analysis logic.
package render

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/csvscope/internal/utils"
)

// Write renders env in the named format.
func Write(w io.Writer, format string, env *Envelope) error {
	switch format {
	case "", "table":
		return Table(w, env)
	case "md", "markdown":
		_, err := io.WriteString(w, Markdown(env))
		return err
	case "json":
		return writeJSON(w, env)
	case "csv":
		return ExportCSV(w, env, ',')
	}
	return fmt.Errorf("unsupported format: %s", format)
}

// WriteQuery runs expression against env and writes each result as JSON.
func WriteQuery(w io.Writer, env *Envelope, expression string) error {
	vals, err := Query(env, expression)
	if err != nil {
		return err
	}
	for _, v := range vals {
		if err := writeJSON(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
