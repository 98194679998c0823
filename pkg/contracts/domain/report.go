package domain

import (
	"fmt"
	"strings"
)

// ReportFormat is the file format of an exploratory report
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatCSV  ReportFormat = "csv"
)

// ParseReportFormat validates a format name (case-insensitive)
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ReportFormatXLSX, ReportFormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want xlsx or csv)", s)
	}
}

// Ext returns the file extension including the dot
func (f ReportFormat) Ext() string {
	return "." + string(f)
}

// ReportRequest describes one run of the report job
type ReportRequest struct {
	SnapshotPath string       `json:"snapshot_path" validate:"required"`
	Analysis     string       `json:"analysis" validate:"required"`
	Format       ReportFormat `json:"format" validate:"required,oneof=xlsx csv"`
	OutputPath   string       `json:"output_path" validate:"required"`
}
