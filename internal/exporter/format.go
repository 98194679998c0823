package exporter

import (
	"empresascli/internal/table"
)

// record renders row i of t as text. Nulls are empty and dates use
// table.DateLayout.
func record(t *table.Table, i int) []string {
	cols := t.Columns()
	out := make([]string, len(cols))
	for j, c := range cols {
		out[j] = c.Value(i).Text(c.Kind)
	}
	return out
}

// cells renders row i of t for a worksheet. Nulls stay nil so the cell is
// left blank.
func cells(t *table.Table, i int) []interface{} {
	cols := t.Columns()
	out := make([]interface{}, len(cols))
	for j, c := range cols {
		v := c.Value(i)
		if !v.Valid {
			continue
		}
		out[j] = v.Text(c.Kind)
	}
	return out
}
