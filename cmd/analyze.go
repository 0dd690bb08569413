package cmd

import (
	"bytes"
	"fmt"
	"time"

	cfgpkg "github.com/KaramelBytes/csvscope/internal/config"
	"github.com/KaramelBytes/csvscope/internal/parser"
	"github.com/KaramelBytes/csvscope/internal/profile"
	"github.com/KaramelBytes/csvscope/internal/render"
	"github.com/KaramelBytes/csvscope/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	anaSampleSize    int
	anaDelimiter     string
	anaFormat        string
	anaQuery         string
	anaOutput        string
	anaDistinctLimit int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Profile the columns of a CSV/TSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, err := resolveFormat(anaFormat)
		if err != nil {
			return err
		}
		doc, err := parser.ReadFile(path)
		if err != nil {
			return err
		}
		env, err := analyzeDocument(cmd, doc, anaSampleSize, anaDelimiter, anaDistinctLimit)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if anaQuery != "" {
			err = render.WriteQuery(&buf, env, anaQuery)
		} else {
			err = render.Write(&buf, format, env)
		}
		if err != nil {
			return err
		}

		if anaOutput != "" {
			if err := utils.SafeWriteFile(anaOutput, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&anaSampleSize, "sample-size", 0, "analyze at most N values per column (default from config; unbounded)")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab'|'pipe' (default: detect)")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "output format: table|markdown|json|csv (default from config)")
	analyzeCmd.Flags().StringVarP(&anaQuery, "query", "q", "", "jq expression applied to the JSON output")
	analyzeCmd.Flags().StringVarP(&anaOutput, "output", "o", "", "write output to file instead of stdout")
	analyzeCmd.Flags().IntVar(&anaDistinctLimit, "distinct-limit", 0, "exact distinct values tracked per column before approximating")
}

// analyzerConfig merges config file settings, command flags and the
// document's delimiter hint. Flags win over config; config wins over the hint.
func analyzerConfig(cmd *cobra.Command, g *cfgpkg.Global, sampleSize int, delimiter string, distinctLimit int, hint rune) (profile.Config, error) {
	pc := g.AnalyzerConfig()
	if cmd.Flags().Changed("sample-size") {
		// zero and negative values reach the engine, which rejects them
		n := sampleSize
		pc.SampleSize = &n
	}
	if cmd.Flags().Changed("delimiter") {
		d, err := cfgpkg.ParseDelimiter(delimiter)
		if err != nil {
			return pc, err
		}
		pc.Delimiter = d
	}
	if cmd.Flags().Changed("distinct-limit") {
		pc.DistinctLimit = distinctLimit
	}
	if pc.Delimiter == 0 {
		pc.Delimiter = hint
	}
	return pc, nil
}

func analyzeDocument(cmd *cobra.Command, doc parser.Document, sampleSize int, delimiter string, distinctLimit int) (*render.Envelope, error) {
	pc, err := analyzerConfig(cmd, currentConfig(), sampleSize, delimiter, distinctLimit, doc.Delimiter)
	if err != nil {
		return nil, err
	}
	a, err := profile.NewAnalyzer(pc)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rep, err := a.Analyze(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", doc.Name, err)
	}
	logger.Debug("analyzed document",
		zap.String("file", doc.Name),
		zap.String("delimiter", rep.DetectedDelimiter),
		zap.Int("rows", rep.RowCount),
		zap.Int("columns", rep.ColumnCount),
		zap.Duration("elapsed", time.Since(start)),
	)
	return render.NewEnvelope(doc.Name, rep), nil
}

func resolveFormat(flag string) (string, error) {
	f := flag
	if f == "" {
		f = currentConfig().Format
	}
	if f == "md" {
		f = "markdown"
	}
	for _, x := range cfgpkg.Formats {
		if f == x {
			return f, nil
		}
	}
	if f == "" {
		return "table", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use table|markdown|json|csv)", f)
}
