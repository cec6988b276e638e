package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Metric selects the per-sample deviation policy: zscore|percent|absolute.
	Metric string `mapstructure:"metric" yaml:"metric"`
	// Top limits how many ranked matches reports show; 0 shows all.
	Top int `mapstructure:"top" yaml:"top"`
	// WithinPercent is the acceptance window for the within-percent count.
	WithinPercent float64 `mapstructure:"within_percent" yaml:"within_percent"`
	// Format is the default report format: text|markdown|json.
	Format string `mapstructure:"format" yaml:"format"`
	// ReferencePath is the default reference catalog used when the
	// match command gets no --reference flag.
	ReferencePath string `mapstructure:"reference_path" yaml:"reference_path"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.labmatch/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".labmatch")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LABMATCH")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("metric", "zscore")
	v.SetDefault("top", 0)
	v.SetDefault("within_percent", 30.0)
	v.SetDefault("format", "text")
	v.SetDefault("reference_path", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".labmatch")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
