package dataprocessing

import (
	"sort"
	"strings"

	apperrors "empresascli/internal/errors"
	"empresascli/internal/normalize"
	"empresascli/internal/table"
)

// firstDataRow is the spreadsheet row number of table row 0 (row 1 is the header)
const firstDataRow = 2

// normalizeHeaders canonicalizes every header, checks the required columns
// and applies the rename table.
func normalizeHeaders(t *table.Table, required []string, renames map[string]string) error {
	if err := t.MapNames(normalize.ColumnName); err != nil {
		return apperrors.NewMalformedInputError("duplicate column after header normalization", err)
	}
	if err := RequireColumns(t, required...); err != nil {
		return err
	}
	if err := t.RenameColumns(renames); err != nil {
		return apperrors.NewMalformedInputError("duplicate column after renaming", err)
	}
	return nil
}

// transformColumn rewrites every non-null cell of column with fn. Errors are
// annotated with the column and the spreadsheet row number.
func transformColumn(t *table.Table, column string, fn func(string) (table.Value, error)) error {
	return convertColumn(t, column, table.String, func(v table.Value) (table.Value, error) {
		return fn(v.Str)
	})
}

// convertColumn is like transformColumn but sees the whole cell and sets the
// column kind.
func convertColumn(t *table.Table, column string, kind table.Kind, fn func(table.Value) (table.Value, error)) error {
	err := t.Convert(column, kind, func(row int, v table.Value) (table.Value, error) {
		if !v.Valid {
			return v, nil
		}
		nv, err := fn(v)
		if err != nil {
			return table.Value{}, apperrors.Annotate(
				apperrors.Annotate(err, "column", column), "row", row+firstDataRow)
		}
		return nv, nil
	})
	if err != nil && !t.Has(column) {
		return apperrors.NewMalformedInputError("column missing: "+column, err)
	}
	return err
}

// stringRule lifts an infallible string rule to a cell rule
func stringRule(fn func(string) string) func(string) (table.Value, error) {
	return func(s string) (table.Value, error) {
		return table.StringValue(fn(s)), nil
	}
}

// DuplicateValues returns the non-null values of column that occur more than
// once, with their counts.
func DuplicateValues(t *table.Table, column string) map[string]int {
	c, ok := t.Column(column)
	if !ok {
		return nil
	}
	counts := make(map[string]int)
	for i := 0; i < c.Len(); i++ {
		if v := c.Value(i); v.Valid {
			counts[v.Str]++
		}
	}
	for k, n := range counts {
		if n < 2 {
			delete(counts, k)
		}
	}
	return counts
}

// NonDigitResidues returns the distinct strings left in column after removing
// every digit, sorted. Null cells are ignored.
func NonDigitResidues(t *table.Table, column string) []string {
	c, ok := t.Column(column)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		v := c.Value(i)
		if !v.Valid {
			continue
		}
		residue := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return -1
			}
			return r
		}, v.Str)
		seen[residue] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// sampleKeys returns up to n keys of m, sorted
func sampleKeys(m map[string]int, n int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
