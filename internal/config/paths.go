package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths.
// This is the single source of truth for every file the jobs read or write.
type Paths struct {
	WorkingDir   string
	RawDir       string
	ProcessedDir string
	ReportsDir   string
}

// GetPaths resolves the configured directories against the process working
// directory at start time.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(wd, cfg), nil
}

// ResolvePaths resolves the configured directories against base.
// Absolute entries are kept as they are.
func ResolvePaths(base string, cfg PathsConfig) *Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		WorkingDir:   base,
		RawDir:       resolve(cfg.RawDir),
		ProcessedDir: resolve(cfg.ProcessedDir),
		ReportsDir:   resolve(cfg.ReportsDir),
	}
}

// EnsureDirectories creates the output directories if they don't exist.
// The raw directory is an input and is never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ProcessedDir, p.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetSnapshotPath returns the snapshot path for a source stem
func (p *Paths) GetSnapshotPath(stem string) string {
	return filepath.Join(p.ProcessedDir, stem+SnapshotExt)
}

// GetActivityCodeSnapshotPath returns the path of the derived activity-code
// snapshot for a source stem (e.g. "LISTAGEM CADASTRO 2024 - outros cnae.parquet").
func (p *Paths) GetActivityCodeSnapshotPath(stem string) string {
	return filepath.Join(p.ProcessedDir, stem+ActivityCodeSuffix+SnapshotExt)
}

// GetSummarySnapshotPath returns the default snapshot consumed by the report
// job for the given day (e.g. summary_Mar-15-2024.parquet).
func (p *Paths) GetSummarySnapshotPath(day time.Time) string {
	return filepath.Join(p.ProcessedDir, SummarySnapshotStem+day.Format(ReportDateLayout)+SnapshotExt)
}

// GetReportPath returns the report path for the given day and extension
// (e.g. Excel_Analysis_Mar-15-2024.xlsx).
func (p *Paths) GetReportPath(day time.Time, ext string) string {
	return filepath.Join(p.ReportsDir, ReportFilePrefix+day.Format(ReportDateLayout)+ext)
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("working", p.WorkingDir),
			slog.String("raw", p.RawDir),
			slog.String("processed", p.ProcessedDir),
			slog.String("reports", p.ReportsDir),
		))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
