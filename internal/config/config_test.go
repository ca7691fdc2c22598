package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, DefaultDateFormats, cfg.Pipeline.DateFormats)
	assert.Equal(t, ExcelMaxRows-1, cfg.Pipeline.MaxRowsPerFile)
	assert.False(t, cfg.Pipeline.PassThroughUnknown)
	assert.Equal(t, 20, cfg.Pipeline.ErrorSampleSize)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
pipeline:
  datasets: [biometric]
  pass_through_unknown: true
  window_from: "2025-01-01"
  window_to: "2025-06-30"
  max_rows_per_file: 1000
logging:
  level: info
  file_path: logs/test.log
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"biometric"}, cfg.Pipeline.Datasets)
	assert.True(t, cfg.Pipeline.PassThroughUnknown)
	assert.Equal(t, 1000, cfg.Pipeline.MaxRowsPerFile)
	assert.Equal(t, "logs/test.log", cfg.Logging.FilePath)

	from, to, err := cfg.Pipeline.Window()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", from.Format("2006-01-02"))
	assert.Equal(t, "2025-06-30", to.Format("2006-01-02"))
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: warn\n"), 0644))

	t.Setenv("AADHAAR_LOGGING_LEVEL", "debug")

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFrom_InvalidWindow(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
pipeline:
  window_from: "2025-06-30"
  window_to: "2025-01-01"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	_, err := LoadFrom(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "window_to")
}

func TestLoadFrom_InvalidLogLevel(t *testing.T) {
	t.Setenv("AADHAAR_LOGGING_LEVEL", "loud")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPipelineConfig_Window_Unset(t *testing.T) {
	var p PipelineConfig
	from, to, err := p.Window()
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}

func TestCanonicalStates_Count(t *testing.T) {
	// The official state/UT set has exactly 36 entries.
	assert.Len(t, CanonicalStates, 36)

	seen := make(map[string]bool)
	for _, s := range CanonicalStates {
		assert.False(t, seen[s], "duplicate canonical state %q", s)
		seen[s] = true
	}
}
