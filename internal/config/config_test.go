package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "ntl.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 3.0, cfg.Analysis.Threshold)
	assert.Equal(t, []float64{1, 2, 3, 5}, cfg.Analysis.SensitivityThresholds)
	assert.Equal(t, []float64{1000, 2000, 5000}, cfg.Analysis.RingWidthsM)
	assert.Equal(t, 8, cfg.Analysis.Sectors)
	assert.Equal(t, 463.0, cfg.Analysis.PixelSizeM)
	assert.Equal(t, 4, cfg.Analysis.Concurrency)
	assert.Equal(t, 30.0, cfg.Validate.FinePixelSizeM)
	assert.InDelta(t, 0.1, cfg.Validate.FineThreshold, 1e-9)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/ntl
analysis:
  threshold: 5.5
  sectors: 16
  input_dir: /data/dmsp
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/ntl", cfg.Store.DatabaseURL)
	assert.Equal(t, 5.5, cfg.Analysis.Threshold)
	assert.Equal(t, 16, cfg.Analysis.Sectors)
	assert.Equal(t, "/data/dmsp", cfg.Analysis.InputDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched defaults survive partial files
	assert.Equal(t, 463.0, cfg.Analysis.PixelSizeM)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("NTL_ANALYSIS_THRESHOLD", "7")
	t.Setenv("NTL_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Analysis.Threshold)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
