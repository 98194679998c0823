package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"empresascli/internal/config"
	apperrors "empresascli/internal/errors"
)

// FileValidator checks job inputs and outputs before any work starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory checks that dir exists and is a directory. Finding
// no workbook with the given prefix is logged but is not an error.
func (v *FileValidator) ValidateInputDirectory(dir, prefix string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return apperrors.NewNotFoundError("input directory").WithContext("path", dir)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat input directory", err).WithContext("path", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewMalformedInputError("input path is not a directory", nil).WithContext("path", dir)
	}

	if prefix != "" {
		n, err := v.CountFiles(dir, prefix+"*.xlsx")
		if err != nil {
			return err
		}
		if n == 0 {
			v.logger.Warn("No source workbooks found",
				slog.String("directory", dir),
				slog.String("prefix", prefix))
			return nil
		}
		v.logger.Info("Input directory validated",
			slog.String("directory", dir),
			slog.Int("files_found", n),
			slog.String("prefix", prefix))
	}

	return nil
}

// ValidateOutputDirectory ensures dir exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("path", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path exists and is a readable regular file
func (v *FileValidator) ValidateFile(path, what string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apperrors.NewNotFoundError(what).WithContext("path", path)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat "+what, err).WithContext("path", path)
	}
	if info.IsDir() {
		return apperrors.NewMalformedInputError(what+" is a directory", nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError(what+" is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSnapshotFile checks that path is a readable parquet snapshot
func (v *FileValidator) ValidateSnapshotFile(path string) error {
	if err := v.ValidateFile(path, "snapshot"); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != config.SnapshotExt {
		return apperrors.NewMalformedInputError("snapshot is not a parquet file", nil).
			WithContext("path", path).
			WithContext("extension", ext)
	}
	return nil
}

// CountFiles counts regular files matching a glob pattern in dir. Excel lock
// files ("~$...") are not counted.
func (v *FileValidator) CountFiles(dir, pattern string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0, apperrors.NewMalformedInputError("invalid file pattern", err).WithContext("pattern", pattern)
	}

	count := 0
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), "~$") {
			continue
		}
		if info, err := os.Stat(match); err == nil && !info.IsDir() {
			count++
		}
	}
	return count, nil
}
