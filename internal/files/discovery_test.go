package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindExcelFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "only workbooks",
			files:    []string{"b.xlsx", "a.XLSX"},
			expected: []string{"a.XLSX", "b.xlsx"},
		},
		{
			name:     "mixed file types",
			files:    []string{"report.xlsx", "data.csv", "legacy.xls", "notes.txt"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "lock files skipped",
			files:    []string{"LISTAGEM CADASTRO 2024.xlsx", "~$LISTAGEM CADASTRO 2024.xlsx"},
			expected: []string{"LISTAGEM CADASTRO 2024.xlsx"},
		},
		{
			name:     "empty directory",
			files:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)
			require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0755))

			found, err := NewDiscovery(dir).FindExcelFiles(".")
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindSourceFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"LISTAGEM CADASTRO 2024.xlsx",
		"LISTAGEM CADASTRO 2023.xlsx",
		"CNPJ DE MOGI 2024.xlsx",
		"listagem cadastro lower.xlsx",
	)

	found, err := NewDiscovery("/unused").FindSourceFiles(dir, "LISTAGEM CADASTRO")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "LISTAGEM CADASTRO 2023", found[0].Stem)
	assert.Equal(t, "LISTAGEM CADASTRO 2024", found[1].Stem)

	found, err = NewDiscovery(dir).FindSourceFiles(".", "CNPJ DE MOGI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].Size)
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"LISTAGEM CADASTRO.xlsx":         "LISTAGEM CADASTRO",
		"LISTAGEM CADASTRO 2024.01.xlsx": "LISTAGEM CADASTRO 2024.01",
		"/raw/CNPJ DE MOGI.xlsx":         "CNPJ DE MOGI",
		"noext":                          "noext",
	}
	for in, want := range tests {
		assert.Equal(t, want, Stem(in), in)
	}
}

func TestFindExcelFilesMissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindExcelFiles("does-not-exist")
	assert.Error(t, err)
}
