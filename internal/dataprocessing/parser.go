package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "empresascli/internal/errors"
	"empresascli/internal/table"
)

// ReadSheet reads a worksheet into a table of String columns. The first row
// is the header; the remaining rows are records. An empty sheet name selects
// the first worksheet.
//
// Cells are read as their raw stored value, never the display-formatted one,
// so leading zeros and long digit strings survive. Cells the workbook stored
// as numbers are marked Numeric; text that merely looks numeric is not.
// Blank cells are null and rows with no value at all are dropped.
func ReadSheet(path, sheet string, logger *slog.Logger) (*table.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewMalformedInputError("failed to open workbook", err).WithContext("file", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewMalformedInputError("workbook has no worksheets", nil).WithContext("file", path)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !containsSheet(sheets, sheet) {
		return nil, apperrors.NewMalformedInputError(fmt.Sprintf("worksheet %q not found", sheet), nil).
			WithContext("file", path).
			WithContext("sheets", sheets)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewMalformedInputError("failed to read worksheet", err).
			WithContext("file", path).
			WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewMalformedInputError("worksheet has no header row", nil).
			WithContext("file", path).
			WithContext("sheet", sheet)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	columns := make([]*table.Column, width)
	for j, name := range headerNames(rows[0], width) {
		columns[j] = table.NewColumn(name, table.String)
	}
	t, err := table.New(columns...)
	if err != nil {
		return nil, apperrors.NewMalformedInputError("invalid header row", err).WithContext("file", path)
	}

	cells := make([]table.Value, width)
	dropped := 0
	for i, row := range rows[1:] {
		blank := true
		for j := range cells {
			if j >= len(row) || row[j] == "" {
				cells[j] = table.Null()
				continue
			}
			blank = false
			cells[j] = table.StringValue(row[j])
			if _, err := strconv.ParseFloat(row[j], 64); err != nil {
				continue
			}
			numeric, err := storedAsNumber(f, sheet, i+1, j)
			if err != nil {
				return nil, apperrors.NewMalformedInputError("failed to read cell type", err).
					WithContext("file", path).
					WithContext("sheet", sheet)
			}
			cells[j].Numeric = numeric
		}
		if blank {
			dropped++
			continue
		}
		if err := t.AppendRow(cells...); err != nil {
			return nil, err
		}
	}

	logger.Debug("Worksheet read",
		slog.String("file", path),
		slog.String("sheet", sheet),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumColumns()),
		slog.Int("blank_rows_dropped", dropped))

	return t, nil
}

// storedAsNumber reports whether the cell at the zero-based row and column
// holds a number. Cells without an explicit type are numbers in OOXML.
func storedAsNumber(f *excelize.File, sheet string, row, col int) (bool, error) {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false, err
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return false, err
	}
	return typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber, nil
}

// headerNames returns one unique name per column. Blank headers become
// "unnamed: <index>" and repeated headers get a ".<n>" suffix.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for j := 0; j < width; j++ {
		name := ""
		if j < len(header) {
			name = header[j]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("unnamed: %d", j)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[j] = name
	}
	return names
}

// RequireColumns checks that every name is a column of t.
func RequireColumns(t *table.Table, names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperrors.NewMalformedInputError("required columns missing: "+strings.Join(missing, ", "), nil).
		WithContext("missing", missing)
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
