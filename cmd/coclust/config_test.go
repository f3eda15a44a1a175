package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/coclust/ensemble"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
		assert.Equal(t, 8, cfg.Ensemble.Iterations)
		assert.Equal(t, 16, cfg.MaxSlices)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "coclust.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
workers: 3
seed: 9
shingle_length: 1
log_format: json
ensemble:
  iterations: 30
  min_k: 2
  strategy: ensemble-distance
`), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Workers)
		assert.EqualValues(t, 9, cfg.Seed)
		assert.Equal(t, 1, cfg.ShingleLength)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 30, cfg.Ensemble.Iterations)
		assert.Equal(t, 2, cfg.Ensemble.MinK)
		// Unset keys keep their defaults.
		assert.Equal(t, 10, cfg.Ensemble.MaxK)
		assert.Equal(t, 128, cfg.SketchSize)

		s, err := cfg.Ensemble.ResolveStrategy()
		require.NoError(t, err)
		assert.Equal(t, ensemble.EnsembleDistance, s)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0o600))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestApplyFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 0, "")
	fs.Int("iterations", 8, "")
	fs.String("strategy", "co-association", "")
	fs.Bool("exact", false, "")
	require.NoError(t, fs.Parse([]string{"--iterations=20", "--exact"}))

	cfg := DefaultConfig()
	cfg.Workers = 6
	cfg.ApplyFlags(fs)

	assert.Equal(t, 6, cfg.Workers, "unset flags must not override")
	assert.Equal(t, 20, cfg.Ensemble.Iterations)
	assert.True(t, cfg.Exact)
	assert.Equal(t, "co-association", cfg.Ensemble.Strategy)
}

func TestResolveStrategy(t *testing.T) {
	s, err := EnsembleConfig{}.ResolveStrategy()
	require.NoError(t, err)
	assert.Equal(t, ensemble.CoAssociation, s)

	_, err = EnsembleConfig{Strategy: "average"}.ResolveStrategy()
	assert.Error(t, err)
}

func TestConfigEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.Seed = 4

	eng, err := cfg.Engine(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, eng.Workers())
	assert.EqualValues(t, 4, eng.Seed())

	cfg.LogLevel = "loud"
	_, err = cfg.Engine(nil)
	assert.Error(t, err)

	cfg.LogLevel = "info"
	cfg.LogFormat = "xml"
	_, err = cfg.Engine(nil)
	assert.Error(t, err)
}
