package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/csvscope/internal/profile"
	"github.com/KaramelBytes/csvscope/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Formats accepted by the format setting.
var Formats = []string{"table", "markdown", "json", "csv"}

// Global configuration structure.
type Global struct {
	// SampleSize caps analyzed values per column; 0 means unbounded.
	SampleSize int `mapstructure:"sample_size" yaml:"sample_size"`
	// Delimiter forces a separator (",", ";", "tab", "pipe"); empty means detect.
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	Format        string `mapstructure:"format" yaml:"format"`
	DistinctLimit int    `mapstructure:"distinct_limit" yaml:"distinct_limit"`
	BatchWorkers  int    `mapstructure:"batch_workers" yaml:"batch_workers"`

	// Logging
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups" yaml:"log_max_backups"`
}

// Dir returns ~/.csvscope.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".csvscope"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.csvscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVSCOPE")
	v.AutomaticEnv()

	v.SetDefault("sample_size", 0)
	v.SetDefault("delimiter", "")
	v.SetDefault("format", "table")
	v.SetDefault("distinct_limit", profile.DefaultDistinctLimit)
	v.SetDefault("batch_workers", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 50)
	v.SetDefault("log_max_backups", 3)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing default config file is fine; an explicit one must exist
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks settings that do not depend on the input file.
func (c *Global) Validate() error {
	if c.SampleSize < 0 {
		return fmt.Errorf("sample_size must not be negative (0 = unbounded)")
	}
	if c.DistinctLimit < 0 {
		return fmt.Errorf("distinct_limit must not be negative")
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("batch_workers must not be negative")
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if c.Format != "" && !validFormat(c.Format) {
		return fmt.Errorf("unsupported format: %s (use %s)", c.Format, strings.Join(Formats, "|"))
	}
	return nil
}

// AnalyzerConfig converts the global settings into an engine configuration.
func (c *Global) AnalyzerConfig() profile.Config {
	var pc profile.Config
	if c.SampleSize > 0 {
		n := c.SampleSize
		pc.SampleSize = &n
	}
	pc.Delimiter, _ = ParseDelimiter(c.Delimiter)
	pc.DistinctLimit = c.DistinctLimit
	return pc
}

// ParseDelimiter maps a delimiter name or literal to a rune. Empty means detect.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab", `\t`:
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab'|'pipe')", s)
}

func validFormat(f string) bool {
	for _, x := range Formats {
		if f == x {
			return true
		}
	}
	return false
}
