package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/csvscope/internal/config"
	"github.com/KaramelBytes/csvscope/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagLogFile string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger   = zap.NewNop()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "csvscope",
	Short: "csvscope: profile the columns of a delimited text file",
	Long: `csvscope reads a CSV/TSV file without a schema, detects its delimiter, and reports
an inferred semantic type per column together with confidence, null and distinct counts,
value ranges and examples.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	err := rootCmd.Execute()
	_ = closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write JSON logs to this file (rotated)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaultConfig()
	}
	cfg = c
	setupLogger()
}

func setupLogger() {
	lc := logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}
	if debug {
		lc.Level = "debug"
	}
	if flagLogFile != "" {
		lc.FilePath = flagLogFile
	}
	l, cleanup, err := logging.New(lc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: logging disabled: %v\n", err)
		return
	}
	_ = closeLog()
	logger, closeLog = l, cleanup
}

func defaultConfig() *cfgpkg.Global {
	return &cfgpkg.Global{Format: "table", BatchWorkers: 4, LogLevel: "info"}
}

// currentConfig returns the loaded configuration or defaults when none was loaded.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		return defaultConfig()
	}
	return cfg
}
