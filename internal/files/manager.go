package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager removes previously written output so a rerun starts clean. It is
// rooted at the cleaned-output directory.
type Manager struct {
	basePath string
}

// NewManager creates a new file manager instance
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// DeleteFile removes a file
func (m *Manager) DeleteFile(path string) error {
	return os.Remove(m.resolve(path))
}

// ClearCleanedOutput removes previously written part files for an output base
// so a full rework starts from a clean slate.
func (m *Manager) ClearCleanedOutput(dir, outputBase string) error {
	discovery := NewDiscovery(m.basePath)
	parts, err := discovery.FindCleanedParts(dir, outputBase)
	if err != nil {
		return err
	}

	for _, part := range parts {
		slog.Debug("Removing stale part file", slog.String("path", part.Path))
		if err := m.DeleteFile(part.Path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", part.Path, err)
		}
	}
	return nil
}

func (m *Manager) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.basePath, path)
}
