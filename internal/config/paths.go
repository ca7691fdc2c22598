package config

import (
	"fmt"
	"os"
	"path/filepath"

	"aadhaarcli/pkg/contracts/domain"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: everything is
// resolved relative to the executable directory, never the working directory,
// so the tool behaves identically from any launch location.
type Paths struct {
	ExecutableDir string
	DataDir       string
	InputDir      string
	CleanedDir    string
	LogsDir       string

	ConfigFile string
}

// GetPaths returns the application paths relative to the executable location.
// AADHAAR_BASE_DIR overrides the executable directory, which tests and
// containerized runs rely on.
func GetPaths() (*Paths, error) {
	baseDir := os.Getenv(EnvPrefix + "_BASE_DIR")
	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
		}
		baseDir = filepath.Dir(exe)
	}

	return NewPaths(baseDir), nil
}

// NewPaths builds the path set rooted at baseDir.
//
// Directory structure:
//
//	<base>/
//	  ├── config.yaml
//	  ├── data/
//	  │   ├── raw/
//	  │   │   ├── enrolment/     (raw CSV/XLSX fragments)
//	  │   │   ├── biometric/
//	  │   │   └── demographic/
//	  │   └── cleaned/           (part files + cleaning report)
//	  └── logs/
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, DefaultDataDir)
	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		InputDir:      filepath.Join(dataDir, "raw"),
		CleanedDir:    filepath.Join(dataDir, "cleaned"),
		LogsDir:       filepath.Join(baseDir, DefaultLogsDir),
		ConfigFile:    filepath.Join(baseDir, ConfigFile),
	}
}

// DatasetInputDir returns the raw-input directory for one dataset.
func (p *Paths) DatasetInputDir(ds domain.Dataset) string {
	return filepath.Join(p.InputDir, string(ds))
}

// CleaningReportPath returns the location of the plain-text cleaning report.
func (p *Paths) CleaningReportPath() string {
	return filepath.Join(p.CleanedDir, CleaningReportFile)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.InputDir,
		p.CleanedDir,
		p.LogsDir,
	}
	for _, ds := range domain.Datasets {
		directories = append(directories, p.DatasetInputDir(ds))
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
