package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/coclust"
	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/minhash"
	"github.com/hupe1980/coclust/partition"
	"github.com/hupe1980/coclust/resource"
	"github.com/hupe1980/coclust/shingle"
)

// Config is the YAML structure of a run configuration.
// Every field can be overridden by the flag of the same name.
type Config struct {
	Workers       int    `yaml:"workers"`
	Seed          int64  `yaml:"seed"`
	MaxSlices     int    `yaml:"max_slices"`
	SketchSize    int    `yaml:"sketch_size"`
	ShingleLength int    `yaml:"shingle_length"`
	Exact         bool   `yaml:"exact"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	MemoryLimit   int64  `yaml:"memory_limit_bytes"`

	Ensemble EnsembleConfig `yaml:"ensemble"`
}

// EnsembleConfig holds the evidence accumulation settings.
type EnsembleConfig struct {
	Iterations int    `yaml:"iterations"`
	MinK       int    `yaml:"min_k"`
	MaxK       int    `yaml:"max_k"`
	Strategy   string `yaml:"strategy"`
	Clusters   int    `yaml:"clusters"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Seed:          1,
		MaxSlices:     partition.DefaultMaxSlices,
		SketchSize:    minhash.DefaultNumPerm,
		ShingleLength: shingle.DefaultLength,
		LogLevel:      "warn",
		LogFormat:     "text",
		Ensemble: EnsembleConfig{
			Iterations: ensemble.DefaultIterations,
			MinK:       ensemble.DefaultMinK,
			MaxK:       ensemble.DefaultMaxK,
			Strategy:   ensemble.CoAssociation.String(),
		},
	}
}

// LoadConfig reads the YAML file at path on top of DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyFlags overrides cfg with every flag the user set explicitly.
func (cfg *Config) ApplyFlags(fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers, _ = fs.GetInt(f.Name)
		case "seed":
			cfg.Seed, _ = fs.GetInt64(f.Name)
		case "max-slices":
			cfg.MaxSlices, _ = fs.GetInt(f.Name)
		case "sketch-size":
			cfg.SketchSize, _ = fs.GetInt(f.Name)
		case "shingle":
			cfg.ShingleLength, _ = fs.GetInt(f.Name)
		case "exact":
			cfg.Exact, _ = fs.GetBool(f.Name)
		case "log-level":
			cfg.LogLevel, _ = fs.GetString(f.Name)
		case "log-format":
			cfg.LogFormat, _ = fs.GetString(f.Name)
		case "memory-limit":
			cfg.MemoryLimit, _ = fs.GetInt64(f.Name)
		case "iterations":
			cfg.Ensemble.Iterations, _ = fs.GetInt(f.Name)
		case "min-k":
			cfg.Ensemble.MinK, _ = fs.GetInt(f.Name)
		case "max-k":
			cfg.Ensemble.MaxK, _ = fs.GetInt(f.Name)
		case "strategy":
			cfg.Ensemble.Strategy, _ = fs.GetString(f.Name)
		case "clusters":
			cfg.Ensemble.Clusters, _ = fs.GetInt(f.Name)
		}
	})
}

// ResolveStrategy returns the configured accumulation strategy.
func (c EnsembleConfig) ResolveStrategy() (ensemble.Strategy, error) {
	switch strings.ToLower(c.Strategy) {
	case "", ensemble.CoAssociation.String():
		return ensemble.CoAssociation, nil
	case ensemble.EnsembleDistance.String():
		return ensemble.EnsembleDistance, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", c.Strategy)
	}
}

func (cfg Config) logger() (*coclust.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		return coclust.NewJSONLogger(level), nil
	case "", "text":
		return coclust.NewTextLogger(level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
}

// Engine builds a coclust.Engine from cfg.
func (cfg Config) Engine(progress func(done, total int)) (*coclust.Engine, error) {
	logger, err := cfg.logger()
	if err != nil {
		return nil, err
	}

	opts := []coclust.Option{
		coclust.WithLogger(logger),
		coclust.WithWorkers(cfg.Workers),
		coclust.WithSeed(cfg.Seed),
		coclust.WithMaxSlices(cfg.MaxSlices),
		coclust.WithSketchSize(cfg.SketchSize),
	}
	if progress != nil {
		opts = append(opts, coclust.WithProgress(progress))
	}
	if cfg.MemoryLimit > 0 {
		opts = append(opts, coclust.WithResourceLimits(resource.Config{MemoryLimitBytes: cfg.MemoryLimit}))
	}
	return coclust.New(opts...), nil
}
