package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/pkg/contracts/domain"
)

func TestNewPaths_Layout(t *testing.T) {
	p := NewPaths("/opt/aadhaar")

	assert.Equal(t, "/opt/aadhaar", p.ExecutableDir)
	assert.Equal(t, filepath.Join("/opt/aadhaar", "data"), p.DataDir)
	assert.Equal(t, filepath.Join("/opt/aadhaar", "data", "raw"), p.InputDir)
	assert.Equal(t, filepath.Join("/opt/aadhaar", "data", "cleaned"), p.CleanedDir)
	assert.Equal(t, filepath.Join("/opt/aadhaar", "logs"), p.LogsDir)
	assert.Equal(t, filepath.Join("/opt/aadhaar", "config.yaml"), p.ConfigFile)
}

func TestPaths_DatasetInputDir(t *testing.T) {
	p := NewPaths("/base")
	assert.Equal(t, filepath.Join("/base", "data", "raw", "biometric"),
		p.DatasetInputDir(domain.DatasetBiometric))
}

func TestGetPaths_BaseDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AADHAAR_BASE_DIR", dir)

	p, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, dir, p.ExecutableDir)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	require.NoError(t, p.EnsureDirectories())

	for _, want := range []string{
		p.DataDir,
		p.InputDir,
		p.CleanedDir,
		p.LogsDir,
		p.DatasetInputDir(domain.DatasetEnrolment),
		p.DatasetInputDir(domain.DatasetBiometric),
		p.DatasetInputDir(domain.DatasetDemographic),
	} {
		info, err := os.Stat(want)
		require.NoError(t, err, "missing directory %s", want)
		assert.True(t, info.IsDir())
	}
}

func TestPaths_CleaningReportPath(t *testing.T) {
	p := NewPaths("/base")
	assert.Equal(t, filepath.Join("/base", "data", "cleaned", "cleaning_report.txt"),
		p.CleaningReportPath())
}
