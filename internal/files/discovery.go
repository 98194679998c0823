package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// lockFilePrefix marks the owner files Excel leaves next to open workbooks
const lockFilePrefix = "~$"

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Stem    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExcelFiles finds all .xlsx workbooks in dir, sorted by name.
// Excel lock files are skipped.
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, lockFilePrefix) || !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Stem:    Stem(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindSourceFiles finds the workbooks in dir whose name starts with prefix
func (d *Discovery) FindSourceFiles(dir, prefix string) ([]FileInfo, error) {
	all, err := d.FindExcelFiles(dir)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, f := range all {
		if strings.HasPrefix(f.Name, prefix) {
			files = append(files, f)
		}
	}
	return files, nil
}

// Stem returns the file name without its extension
// ("LISTAGEM CADASTRO 2024.01.xlsx" -> "LISTAGEM CADASTRO 2024.01").
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
