package exporter

import (
	"fmt"
	"log/slog"

	"empresascli/internal/table"
	"empresascli/pkg/contracts/domain"
)

// TableWriter writes a report table to a file
type TableWriter interface {
	WriteTable(path string, t *table.Table) error
}

// New returns the writer for a report format
func New(format domain.ReportFormat, logger *slog.Logger) (TableWriter, error) {
	switch format {
	case domain.ReportFormatXLSX:
		return NewXLSXWriter(logger), nil
	case domain.ReportFormatCSV:
		return NewCSVWriter(logger), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}
