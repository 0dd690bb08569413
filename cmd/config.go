package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/csvscope/internal/config"
	"github.com/KaramelBytes/csvscope/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set csvscope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		if c.SampleSize > 0 {
			fmt.Fprintf(out, "sample_size: %d\n", c.SampleSize)
		} else {
			fmt.Fprintln(out, "sample_size: unbounded")
		}
		delim := c.Delimiter
		if delim == "" {
			delim = "detect"
		}
		fmt.Fprintf(out, "delimiter: %s\n", delim)
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "distinct_limit: %d\n", c.DistinctLimit)
		fmt.Fprintf(out, "batch_workers: %d\n", c.BatchWorkers)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		if c.LogFile != "" {
			fmt.Fprintf(out, "log_file: %s\n", c.LogFile)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "sample_size":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for sample_size: %v", val)
			}
			next.SampleSize = i
		case "delimiter":
			next.Delimiter = val
		case "format":
			next.Format = strings.ToLower(val)
			if next.Format == "md" {
				next.Format = "markdown"
			}
		case "distinct_limit":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for distinct_limit: %v", val)
			}
			next.DistinctLimit = i
		case "batch_workers":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for batch_workers: %v", val)
			}
			next.BatchWorkers = i
		case "log_level":
			if _, err := logging.ParseLevel(val); err != nil {
				return err
			}
			next.LogLevel = strings.ToLower(val)
		case "log_file":
			next.LogFile = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
