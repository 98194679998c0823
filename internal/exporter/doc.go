// Package exporter writes report tables to disk.
//
// XLSXWriter: single-sheet workbook (sheet "Report") with a bold header row,
// streamed row by row.
//
// CSVWriter: CSV with a header row and a UTF-8 BOM for Excel compatibility.
//
// Both render dates as YYYY-MM-DD and nulls as blank cells. New picks the
// writer for a domain.ReportFormat:
//
//	w, err := exporter.New(domain.ReportFormatXLSX, logger)
//	if err != nil {
//	    return err
//	}
//	err = w.WriteTable(paths.GetReportPath(time.Now(), ".xlsx"), report)
package exporter
