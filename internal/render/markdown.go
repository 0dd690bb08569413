package render

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/csvscope/internal/profile"
)

// Markdown renders a compact report suitable for docs or terminals.
func Markdown(env *Envelope) string {
	r := env.Report
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if env.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", env.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.RowCount))
	b.WriteString(fmt.Sprintf("Columns: %d\n", r.ColumnCount))
	b.WriteString(fmt.Sprintf("Delimiter: %s\n", delimiterName(r.DetectedDelimiter)))
	if r.SampleSize != nil {
		b.WriteString(fmt.Sprintf("Sample size: %d per column\n", *r.SampleSize))
	}
	b.WriteString("\n[SCHEMA]\n")
	for _, c := range r.Columns {
		nullPct := 0.0
		if c.AnalyzedCount > 0 {
			nullPct = float64(c.NullCount) * 100.0 / float64(c.AnalyzedCount)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (confidence %.1f%%, null %.1f%%, unique %s)",
			safeName(c.Name), c.TypeName, c.Confidence*100, nullPct, uniqueText(c)))
		if c.MinValue != nil && c.MaxValue != nil {
			b.WriteString(fmt.Sprintf(" — min %s, max %s", safeVal(*c.MinValue), safeVal(*c.MaxValue)))
		}
		if len(c.Subtypes) > 0 {
			b.WriteString("; also " + joinTypes(c.Subtypes, ", "))
		}
		if len(c.FormatExamples) > 0 {
			b.WriteString("; e.g., ")
			for i, ex := range c.FormatExamples {
				if i > 0 {
					b.WriteString(" | ")
				}
				b.WriteString(safeVal(ex))
			}
		}
		b.WriteString("\n")
	}
	if notes := Notes(r); len(notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Notes lists caveats a reader should know about the report.
func Notes(r *profile.AnalysisReport) []string {
	var out []string
	for _, c := range r.Columns {
		if c.AnalyzedCount < c.TotalCount {
			out = append(out, fmt.Sprintf("%s: analyzed %d/%d values due to sample size", safeName(c.Name), c.AnalyzedCount, c.TotalCount))
		}
		if c.TotalCount < r.RowCount {
			out = append(out, fmt.Sprintf("%s: missing in %d short rows", safeName(c.Name), r.RowCount-c.TotalCount))
		}
		if c.UniqueApproximate {
			out = append(out, fmt.Sprintf("%s: unique count is approximate", safeName(c.Name)))
		}
	}
	return out
}

func uniqueText(c profile.ColumnReport) string {
	if c.UniqueApproximate {
		return fmt.Sprintf("~%d", c.UniqueValues)
	}
	return fmt.Sprintf("%d", c.UniqueValues)
}

func joinTypes(ts []profile.SemanticType, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

func delimiterName(d string) string {
	switch d {
	case "\t":
		return "tab"
	case "|":
		return "pipe"
	case ";":
		return "semicolon"
	case ",":
		return "comma"
	}
	return fmt.Sprintf("%q", d)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
