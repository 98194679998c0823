package files

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empresascli/internal/config"
)

func newTestManager(t *testing.T) (*Manager, *config.Paths) {
	t.Helper()
	paths := config.ResolvePaths(t.TempDir(), config.Default().Paths)
	require.NoError(t, paths.EnsureDirectories())
	return NewManager(paths, slog.New(slog.NewTextHandler(io.Discard, nil))), paths
}

func TestNewManager(t *testing.T) {
	paths := config.ResolvePaths("/base", config.Default().Paths)
	manager := NewManager(paths, nil)

	assert.NotNil(t, manager)
	assert.Same(t, paths, manager.paths)
	assert.NotNil(t, manager.logger)
}

func TestPending(t *testing.T) {
	manager, paths := newTestManager(t)

	require.NoError(t, os.WriteFile(paths.GetSnapshotPath("LISTAGEM CADASTRO 2023"), []byte("x"), 0644))

	sources := []FileInfo{
		{Name: "LISTAGEM CADASTRO 2023.xlsx", Stem: "LISTAGEM CADASTRO 2023"},
		{Name: "LISTAGEM CADASTRO 2024.xlsx", Stem: "LISTAGEM CADASTRO 2024"},
	}

	pending := manager.Pending(sources)
	require.Len(t, pending, 1)
	assert.Equal(t, "LISTAGEM CADASTRO 2024", pending[0].Stem)

	assert.True(t, manager.SnapshotExists("LISTAGEM CADASTRO 2023"))
	assert.False(t, manager.SnapshotExists("LISTAGEM CADASTRO 2024"))
}

func TestPendingIgnoresActivityCodeSnapshot(t *testing.T) {
	manager, paths := newTestManager(t)

	require.NoError(t, os.WriteFile(paths.GetActivityCodeSnapshotPath("LISTAGEM CADASTRO"), []byte("x"), 0644))

	pending := manager.Pending([]FileInfo{{Name: "LISTAGEM CADASTRO.xlsx", Stem: "LISTAGEM CADASTRO"}})
	assert.Len(t, pending, 1)
}

func TestRemoveSnapshots(t *testing.T) {
	manager, paths := newTestManager(t)
	stem := "LISTAGEM CADASTRO"

	require.NoError(t, os.WriteFile(paths.GetSnapshotPath(stem), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(paths.GetActivityCodeSnapshotPath(stem), []byte("x"), 0644))

	require.NoError(t, manager.RemoveSnapshots(stem))
	assert.False(t, config.FileExists(paths.GetSnapshotPath(stem)))
	assert.False(t, config.FileExists(paths.GetActivityCodeSnapshotPath(stem)))

	require.NoError(t, manager.RemoveSnapshots(stem))
}
