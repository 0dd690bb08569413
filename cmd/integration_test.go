package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/csvscope/internal/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so values and Changed state
// do not leak between invocations of the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns its stdout.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := execCmdStreams(t, args...)
	return out, err
}

// execCmdStreams runs the root command with args and returns stdout and stderr.
func execCmdStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

type envelopeJSON struct {
	ID     string                 `json:"id"`
	Source string                 `json:"source"`
	Report profile.AnalysisReport `json:"report"`
}

func decodeEnvelope(t *testing.T, s string) envelopeJSON {
	t.Helper()
	var env envelopeJSON
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		t.Fatalf("decode json: %v\n%s", err, s)
	}
	return env
}

func TestCLI_AnalyzeJSON(t *testing.T) {
	home := isolateHome(t)
	p := writeFile(t, filepath.Join(home, "people.csv"), "id,name,joined\n1,Alice,2024-01-02\n2,Bob,\n")

	out := runCmd(t, "analyze", p, "--format", "json")
	env := decodeEnvelope(t, out)
	if env.ID == "" || env.Source != "people.csv" {
		t.Fatalf("envelope = %+v", env)
	}
	rep := env.Report
	if rep.RowCount != 2 || rep.ColumnCount != 3 || rep.DetectedDelimiter != "," {
		t.Fatalf("report = %+v", rep)
	}
	want := []profile.SemanticType{profile.Integer, profile.String, profile.Date}
	for i, c := range rep.Columns {
		if c.TypeName != want[i] {
			t.Fatalf("column %s type = %s, want %s", c.Name, c.TypeName, want[i])
		}
	}
	if rep.Columns[2].NullCount != 1 {
		t.Fatalf("joined nulls = %d", rep.Columns[2].NullCount)
	}
}

func TestCLI_AnalyzeTableDefault(t *testing.T) {
	home := isolateHome(t)
	p := writeFile(t, filepath.Join(home, "m.csv"), "a;b\n1;x\n2;y\n")

	out := runCmd(t, "analyze", p)
	if !strings.Contains(out, "m.csv: 2 rows, 2 columns, delimiter semicolon") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}

func TestCLI_AnalyzeQuery(t *testing.T) {
	home := isolateHome(t)
	p := writeFile(t, filepath.Join(home, "q.csv"), "ip,when\n10.0.0.1,09:30\n::1,10:00\n")

	out := runCmd(t, "analyze", p, "--query", "[.report.columns[].type_name]")
	var got []string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if strings.Join(got, ",") != "ip,time" {
		t.Fatalf("types = %v", got)
	}
}

func TestCLI_AnalyzeSampleSizeAndOutput(t *testing.T) {
	home := isolateHome(t)
	p := writeFile(t, filepath.Join(home, "s.csv"), "v\n1\n2\n3\n4\n")
	dst := filepath.Join(home, "out", "s.json")

	out := runCmd(t, "analyze", p, "--sample-size", "2", "-f", "json", "-o", dst)
	if !strings.Contains(out, "✓ Wrote analysis to") {
		t.Fatalf("missing confirmation: %q", out)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	env := decodeEnvelope(t, string(b))
	c := env.Report.Columns[0]
	if c.TotalCount != 4 || c.AnalyzedCount != 2 {
		t.Fatalf("total=%d analyzed=%d", c.TotalCount, c.AnalyzedCount)
	}
	if env.Report.SampleSize == nil || *env.Report.SampleSize != 2 {
		t.Fatalf("sample_size not echoed")
	}
}

func TestCLI_AnalyzeTSVUsesTab(t *testing.T) {
	home := isolateHome(t)
	// comma and tab tie here, so detection alone would pick comma
	p := writeFile(t, filepath.Join(home, "t.tsv"), "x\ty,z\n1\t2,3\n")

	env := decodeEnvelope(t, runCmd(t, "analyze", p, "-f", "json"))
	if env.Report.DetectedDelimiter != "\t" || env.Report.ColumnCount != 2 {
		t.Fatalf("report = %+v", env.Report)
	}
}

func TestCLI_AnalyzeDelimiterFlag(t *testing.T) {
	home := isolateHome(t)
	p := writeFile(t, filepath.Join(home, "d.csv"), "a|b,c\n1|2,3\n")

	env := decodeEnvelope(t, runCmd(t, "analyze", p, "--delimiter", "pipe", "-f", "json"))
	if env.Report.ColumnCount != 2 || env.Report.Columns[1].Name != "b,c" {
		t.Fatalf("columns = %+v", env.Report.Columns)
	}
}

func TestCLI_AnalyzeErrors(t *testing.T) {
	home := isolateHome(t)
	good := writeFile(t, filepath.Join(home, "g.csv"), "a\n1\n")
	bad := writeFile(t, filepath.Join(home, "bad.csv"), "a\n\"open\n")
	empty := writeFile(t, filepath.Join(home, "empty.csv"), "")

	if _, err := execCmd(t, "analyze", good, "--sample-size", "0"); !errors.Is(err, profile.ErrInvalidConfiguration) {
		t.Fatalf("sample-size 0: err = %v", err)
	}
	if _, err := execCmd(t, "analyze", bad); !errors.Is(err, profile.ErrMalformedQuoting) {
		t.Fatalf("malformed: err = %v", err)
	}
	if _, err := execCmd(t, "analyze", empty); !errors.Is(err, profile.ErrEmptyInput) {
		t.Fatalf("empty: err = %v", err)
	}
	if _, err := execCmd(t, "analyze", good, "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := execCmd(t, "analyze", filepath.Join(home, "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := isolateHome(t)
	runCmd(t, "config", "set", "sample_size", "25")
	runCmd(t, "config", "set", "format", "md")
	runCmd(t, "config", "set", "delimiter", "tab")

	if _, err := os.Stat(filepath.Join(home, ".csvscope", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	for _, want := range []string{"sample_size: 25", "format: markdown", "delimiter: tab"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}

	if _, err := execCmd(t, "config", "set", "format", "xml"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := execCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}

	// saved settings drive analyze
	p := writeFile(t, filepath.Join(home, "c.csv"), "a\tb\n1\t2\n")
	out = runCmd(t, "analyze", p)
	if !strings.Contains(out, "[DATASET SUMMARY]") || !strings.Contains(out, "Delimiter: tab") {
		t.Fatalf("expected markdown output:\n%s", out)
	}
}

func TestCLI_Schema(t *testing.T) {
	isolateHome(t)
	out := runCmd(t, "schema")
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if !strings.Contains(out, `"unique_values"`) {
		t.Fatalf("schema missing report fields:\n%s", out)
	}
}

func TestCLI_LogFile(t *testing.T) {
	home := isolateHome(t)
	p := writeFile(t, filepath.Join(home, "l.csv"), "a\n1\n")
	logPath := filepath.Join(home, "logs", "csvscope.log")

	runCmd(t, "analyze", p, "--debug", "--log-file", logPath)
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"analyzed document"`) || !strings.Contains(string(b), `"file":"l.csv"`) {
		t.Fatalf("unexpected log contents: %s", b)
	}
}
