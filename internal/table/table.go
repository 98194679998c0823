package table

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the logical type of a column.
type Kind int

const (
	String Kind = iota
	Date
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Date:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DateLayout is the textual form of Date values.
const DateLayout = "2006-01-02"

// Value is a nullable cell. Str is set for String columns, Time for Date
// columns. A Value with Valid false is null.
//
// Numeric marks a string cell whose source stored it as a number rather
// than text. It is not persisted and does not take part in equality.
type Value struct {
	Str     string
	Time    time.Time
	Valid   bool
	Numeric bool
}

// StringValue returns a non-null string cell
func StringValue(s string) Value {
	return Value{Str: s, Valid: true}
}

// NumericValue returns a non-null string cell holding the text of a number
func NumericValue(s string) Value {
	return Value{Str: s, Valid: true, Numeric: true}
}

// DateValue returns a non-null date cell truncated to the calendar day in UTC
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// Null returns a null cell
func Null() Value {
	return Value{}
}

// Text renders the cell as text for the given kind. Null renders as "".
func (v Value) Text(kind Kind) string {
	if !v.Valid {
		return ""
	}
	if kind == Date {
		return v.Time.Format(DateLayout)
	}
	return v.Str
}

func (v Value) equal(o Value, kind Kind) bool {
	if v.Valid != o.Valid {
		return false
	}
	if !v.Valid {
		return true
	}
	if kind == Date {
		return v.Time.Equal(o.Time)
	}
	return v.Str == o.Str
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Kind   Kind
	values []Value
}

// NewColumn creates a column holding values
func NewColumn(name string, kind Kind, values ...Value) *Column {
	return &Column{Name: name, Kind: kind, values: values}
}

// Len returns the number of cells
func (c *Column) Len() int {
	return len(c.values)
}

// Value returns the cell at row i
func (c *Column) Value(i int) Value {
	return c.values[i]
}

// Values returns a copy of the cells
func (c *Column) Values() []Value {
	out := make([]Value, len(c.values))
	copy(out, c.values)
	return out
}

// Table is an ordered list of columns of equal length. Column order is
// significant and is preserved by every operation.
type Table struct {
	columns []*Column
	rows    int
}

// New builds a table from columns. Names must be unique and all columns must
// have the same length.
func New(columns ...*Column) (*Table, error) {
	t := &Table{}
	seen := make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), t.rows)
		}
	}
	t.columns = columns
	return t, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(columns ...*Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Empty returns a table with the given string columns and no rows.
func Empty(names ...string) (*Table, error) {
	cols := make([]*Column, len(names))
	for i, n := range names {
		cols[i] = NewColumn(n, String)
	}
	return New(cols...)
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Columns returns the columns in order
func (t *Table) Columns() []*Column {
	return t.columns
}

// Names returns the column names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1
func (t *Table) Index(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Column returns the named column
func (t *Table) Column(name string) (*Column, bool) {
	if i := t.Index(name); i >= 0 {
		return t.columns[i], true
	}
	return nil, false
}

// ColumnAt returns the column at position i
func (t *Table) ColumnAt(i int) *Column {
	return t.columns[i]
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.values[i]
	}
	return row
}

// AppendRow appends one row. The number of cells must match the column count.
func (t *Table) AppendRow(cells ...Value) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	for j, c := range t.columns {
		c.values = append(c.values, cells[j])
	}
	t.rows++
	return nil
}

// RenameColumns renames columns found in mapping. Names absent from the
// table are ignored. A rename that would produce a duplicate name fails and
// leaves the table unchanged.
func (t *Table) RenameColumns(mapping map[string]string) error {
	return t.MapNames(func(name string) string {
		if to, ok := mapping[name]; ok {
			return to
		}
		return name
	})
}

// MapNames replaces every column name with fn(name).
func (t *Table) MapNames(fn func(string) string) error {
	names := make([]string, len(t.columns))
	seen := make(map[string]struct{}, len(t.columns))
	for i, c := range t.columns {
		n := fn(c.Name)
		if _, dup := seen[n]; dup {
			return fmt.Errorf("duplicate column %q after renaming %q", n, c.Name)
		}
		seen[n] = struct{}{}
		names[i] = n
	}
	for i, c := range t.columns {
		c.Name = names[i]
	}
	return nil
}

// Transform replaces every cell of the named column with fn(row, cell). The
// column keeps its kind. The first error stops the transformation.
func (t *Table) Transform(name string, fn func(row int, v Value) (Value, error)) error {
	return t.Convert(name, -1, fn)
}

// Convert is like Transform but also changes the column kind. A negative
// kind keeps the current one. The column is only replaced once every cell
// converted successfully.
func (t *Table) Convert(name string, kind Kind, fn func(row int, v Value) (Value, error)) error {
	c, ok := t.Column(name)
	if !ok {
		return fmt.Errorf("column %q not found", name)
	}
	out := make([]Value, len(c.values))
	for i, v := range c.values {
		nv, err := fn(i, v)
		if err != nil {
			return err
		}
		out[i] = nv
	}
	c.values = out
	if kind >= 0 {
		c.Kind = kind
	}
	return nil
}

// TrimStrings trims leading and trailing whitespace from every non-null cell
// of every String column.
func (t *Table) TrimStrings() {
	for _, c := range t.columns {
		if c.Kind != String {
			continue
		}
		for i, v := range c.values {
			if v.Valid {
				c.values[i].Str = strings.TrimSpace(v.Str)
			}
		}
	}
}

// Equal reports whether both tables have the same columns, in the same
// order, with the same kinds and cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.rows != o.rows || len(t.columns) != len(o.columns) {
		return false
	}
	for j, c := range t.columns {
		oc := o.columns[j]
		if c.Name != oc.Name || c.Kind != oc.Kind {
			return false
		}
		for i := range c.values {
			if !c.values[i].equal(oc.values[i], c.Kind) {
				return false
			}
		}
	}
	return true
}
