package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"empresascli/internal/config"
	"empresascli/internal/table"
)

const defaultColumnWidth = 18

// XLSXWriter writes report tables as a single-sheet workbook
type XLSXWriter struct {
	sheet  string
	logger *slog.Logger
}

// NewXLSXWriter creates a writer that puts the table in the Report sheet
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{sheet: config.ReportSheetName, logger: logger}
}

// WriteTable writes a header row followed by the rows of t. Rows are
// streamed so large snapshots do not build the whole sheet in memory.
func (w *XLSXWriter) WriteTable(path string, t *table.Table) error {
	w.logger.Info("Writing workbook",
		slog.String("file_path", path),
		slog.String("sheet", w.sheet),
		slog.Int("record_count", t.NumRows()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet stream: %w", err)
	}

	if n := t.NumColumns(); n > 0 {
		if err := sw.SetColWidth(1, n, defaultColumnWidth); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	header := make([]interface{}, t.NumColumns())
	for i, name := range t.Names() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < t.NumRows(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(t, i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
