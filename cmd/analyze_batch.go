package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/KaramelBytes/csvscope/internal/parser"
	"github.com/KaramelBytes/csvscope/internal/render"
	"github.com/KaramelBytes/csvscope/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	abSampleSize    int
	abDelimiter     string
	abFormat        string
	abDistinctLimit int
	abWorkers       int
	abOutDir        string
	abQuiet         bool
)

// formatExt maps an output format to the extension used under --out-dir.
var formatExt = map[string]string{
	"table":    "txt",
	"markdown": "md",
	"json":     "json",
	"csv":      "csv",
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Profile multiple CSV/TSV files concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		format, err := resolveFormat(abFormat)
		if err != nil {
			return err
		}
		workers := abWorkers
		if !cmd.Flags().Changed("workers") {
			workers = currentConfig().BatchWorkers
		}
		if workers <= 0 {
			workers = 1
		}

		out := cmd.OutOrStdout()
		// stdout carries only rendered results
		progress := cmd.ErrOrStderr()
		var mu sync.Mutex
		done := 0
		total := len(files)
		results := make([][]byte, total)

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(workers)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc, err := parser.ReadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				env, err := analyzeDocument(cmd, doc, abSampleSize, abDelimiter, abDistinctLimit)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := render.Write(&buf, format, env); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = buf.Bytes()

				mu.Lock()
				done++
				if !abQuiet {
					fmt.Fprintf(progress, "[%d/%d] Analyzed %s\n", done, total, filepath.Base(path))
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if abOutDir == "" {
			for i, path := range files {
				if total > 1 {
					fmt.Fprintf(out, "\n== %s ==\n", path)
				}
				if _, err := out.Write(results[i]); err != nil {
					return err
				}
			}
			return nil
		}

		if err := os.MkdirAll(abOutDir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		// names are resolved in input order so collision suffixes are stable
		for i, path := range files {
			dst := utils.UniquePath(filepath.Join(abOutDir, utils.OutputName(path, "profile."+formatExt[format])))
			if err := utils.SafeWriteFile(dst, results[i]); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			logger.Debug("wrote profile", zap.String("source", path), zap.String("dest", dst))
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", dst)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().IntVar(&abSampleSize, "sample-size", 0, "analyze at most N values per column (default from config; unbounded)")
	analyzeBatchCmd.Flags().StringVar(&abDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab'|'pipe' (default: detect per file)")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "output format: table|markdown|json|csv (default from config)")
	analyzeBatchCmd.Flags().IntVar(&abDistinctLimit, "distinct-limit", 0, "exact distinct values tracked per column before approximating")
	analyzeBatchCmd.Flags().IntVarP(&abWorkers, "workers", "w", 4, "files analyzed concurrently (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "write one profile per input into this directory")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress output")
}

// expandInputs resolves glob patterns, keeps literal paths that exist, and
// returns a sorted list without duplicates.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}
