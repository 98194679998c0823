package files

import (
	"fmt"
	"log/slog"
	"os"

	"empresascli/internal/config"
)

// Manager tracks which sources already have snapshots in the processed
// directory. A snapshot's existence is the only "already processed" signal.
type Manager struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{paths: paths, logger: logger}
}

// SnapshotExists reports whether the snapshot for stem exists
func (m *Manager) SnapshotExists(stem string) bool {
	path := m.paths.GetSnapshotPath(stem)
	exists := config.FileExists(path)

	m.logger.Debug("Snapshot check",
		slog.String("stem", stem),
		slog.String("path", path),
		slog.Bool("exists", exists))

	return exists
}

// Pending returns the files without a snapshot, in order
func (m *Manager) Pending(files []FileInfo) []FileInfo {
	var pending []FileInfo
	for _, f := range files {
		if m.SnapshotExists(f.Stem) {
			m.logger.Info("Skipping already processed file", slog.String("file", f.Name))
			continue
		}
		pending = append(pending, f)
	}
	return pending
}

// RemoveSnapshots deletes every snapshot derived from stem so the source is
// processed again. Missing snapshots are ignored.
func (m *Manager) RemoveSnapshots(stem string) error {
	for _, path := range []string{
		m.paths.GetSnapshotPath(stem),
		m.paths.GetActivityCodeSnapshotPath(stem),
	} {
		err := os.Remove(path)
		switch {
		case err == nil:
			m.logger.Info("Removed snapshot for reprocessing", slog.String("path", path))
		case os.IsNotExist(err):
		default:
			return fmt.Errorf("failed to remove snapshot %s: %w", path, err)
		}
	}
	return nil
}
