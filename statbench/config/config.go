package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/statbench/statbench"

	"github.com/spf13/viper"
)

// Config stores all configuration of the benchmark.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Bench   BenchConfig   `mapstructure:"bench"`
	Tree    TreeConfig    `mapstructure:"tree"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BenchConfig selects the providers and the measurement schedule.
type BenchConfig struct {
	Providers []string     `mapstructure:"providers"`
	Stat      SeriesConfig `mapstructure:"stat"`
	Walk      SeriesConfig `mapstructure:"walk"`
}

// SeriesConfig describes the warmup rounds and measured rounds of one operation.
type SeriesConfig struct {
	WarmupIterations int   `mapstructure:"warmupIterations"`
	WarmupRounds     int   `mapstructure:"warmupRounds"`
	Tests            []int `mapstructure:"tests"`
}

// TreeConfig stores the shape and location of the synthetic directory tree.
type TreeConfig struct {
	WorkDir string `mapstructure:"workDir"`
	DirName string `mapstructure:"dirName"`
	Depth   int    `mapstructure:"depth"`
	Fanout  int    `mapstructure:"fanout"`
	Content string `mapstructure:"content"`
	Cleanup bool   `mapstructure:"cleanup"`
}

// ReportConfig controls what is emitted after the run.
type ReportConfig struct {
	Summary     bool   `mapstructure:"summary"`
	MetricsFile string `mapstructure:"metricsFile"`
}

// LoggingConfig stores logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

var (
	ErrInvalidIterations = errors.New("iteration counts cannot be negative")
	ErrInvalidDepth      = errors.New("tree depth cannot be negative")
	ErrInvalidFanout     = errors.New("tree fanout must be at least 1")
	ErrNoProviders       = errors.New("at least one provider must be configured")
)

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.AutomaticEnv()                                   // STATBENCH_TREE_DEPTH overrides tree.depth
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // dots become underscores in env var names

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults are plain values; decoding them cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bench.providers", []string{"native", "basic", "attrview"})

	v.SetDefault("bench.stat.warmupIterations", 1000)
	v.SetDefault("bench.stat.warmupRounds", 3)
	v.SetDefault("bench.stat.tests", []int{2000, 2000, 500000, 500000})

	v.SetDefault("bench.walk.warmupIterations", 500)
	v.SetDefault("bench.walk.warmupRounds", 3)
	v.SetDefault("bench.walk.tests", []int{2000, 2000, 5000, 5000})

	v.SetDefault("tree.workDir", internal.DefaultWorkDir)
	v.SetDefault("tree.dirName", internal.DefaultTreeDirName)
	v.SetDefault("tree.depth", internal.DefaultTreeDepth)
	v.SetDefault("tree.fanout", internal.DefaultTreeFanout)
	v.SetDefault("tree.content", internal.DefaultContent)
	v.SetDefault("tree.cleanup", false)

	v.SetDefault("report.summary", true)
	v.SetDefault("report.metricsFile", "")

	v.SetDefault("logging.level", "info")
}

// Validate checks the numeric bounds of the configuration.
func (c *Config) Validate() error {
	if len(c.Bench.Providers) == 0 {
		return ErrNoProviders
	}
	for _, s := range []SeriesConfig{c.Bench.Stat, c.Bench.Walk} {
		if s.WarmupIterations < 0 || s.WarmupRounds < 0 {
			return ErrInvalidIterations
		}
		for _, n := range s.Tests {
			if n < 0 {
				return ErrInvalidIterations
			}
		}
	}
	if c.Tree.Depth < 0 {
		return ErrInvalidDepth
	}
	if c.Tree.Fanout < 1 {
		return ErrInvalidFanout
	}
	return nil
}
