package table

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Table {
	return MustNew(
		NewColumn("cnpj", String, StringValue(" 1 "), Null(), StringValue("3")),
		NewColumn("rua", String, StringValue("A"), StringValue("B "), Null()),
		NewColumn("inicio", Date, DateValue(time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)), Null(), Null()),
	)
}

func TestNewValidatesShape(t *testing.T) {
	_, err := New(NewColumn("a", String, Null()), NewColumn("b", String))
	assert.Error(t, err)

	_, err = New(NewColumn("a", String), NewColumn("a", String))
	assert.Error(t, err)

	tbl, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
}

func TestAccessors(t *testing.T) {
	tbl := sample()

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumColumns())
	assert.Equal(t, []string{"cnpj", "rua", "inicio"}, tbl.Names())
	assert.Equal(t, 1, tbl.Index("rua"))
	assert.Equal(t, -1, tbl.Index("missing"))
	assert.True(t, tbl.Has("inicio"))

	row := tbl.Row(0)
	require.Len(t, row, 3)
	assert.Equal(t, " 1 ", row[0].Str)
	assert.Equal(t, "2024-03-15", row[2].Text(Date))
	assert.Equal(t, "", tbl.Row(1)[0].Text(String))
}

func TestDateValueTruncatesToUTCDay(t *testing.T) {
	v := DateValue(time.Date(2024, 3, 15, 23, 59, 0, 0, time.FixedZone("BRT", -3*3600)))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), v.Time)
}

func TestAppendRow(t *testing.T) {
	tbl, err := Empty("a", "b")
	require.NoError(t, err)

	require.NoError(t, tbl.AppendRow(StringValue("x"), Null()))
	assert.Error(t, tbl.AppendRow(StringValue("x")))
	assert.Equal(t, 1, tbl.NumRows())
}

func TestRenameColumns(t *testing.T) {
	tbl := sample()

	require.NoError(t, tbl.RenameColumns(map[string]string{"rua": "logradouro", "absent": "x"}))
	assert.Equal(t, []string{"cnpj", "logradouro", "inicio"}, tbl.Names())

	err := tbl.RenameColumns(map[string]string{"cnpj": "inicio"})
	assert.Error(t, err)
	assert.Equal(t, []string{"cnpj", "logradouro", "inicio"}, tbl.Names())
}

func TestMapNames(t *testing.T) {
	tbl := MustNew(NewColumn(" CEP ", String), NewColumn("Rua", String))
	require.NoError(t, tbl.MapNames(func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }))
	assert.Equal(t, []string{"cep", "rua"}, tbl.Names())
}

func TestTransformAndConvert(t *testing.T) {
	tbl := sample()

	var rows []int
	err := tbl.Transform("cnpj", func(row int, v Value) (Value, error) {
		rows = append(rows, row)
		if !v.Valid {
			return v, nil
		}
		return StringValue("x" + v.Str), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, rows)
	c, _ := tbl.Column("cnpj")
	assert.Equal(t, "x 1 ", c.Value(0).Str)
	assert.False(t, c.Value(1).Valid)

	err = tbl.Convert("rua", Date, func(row int, v Value) (Value, error) {
		if row == 1 {
			return Value{}, errors.New("bad")
		}
		return Null(), nil
	})
	assert.Error(t, err)
	rua, _ := tbl.Column("rua")
	assert.Equal(t, String, rua.Kind)
	assert.Equal(t, "A", rua.Value(0).Str)

	require.NoError(t, tbl.Convert("rua", Date, func(int, Value) (Value, error) { return Null(), nil }))
	assert.Equal(t, Date, rua.Kind)

	assert.Error(t, tbl.Transform("missing", func(_ int, v Value) (Value, error) { return v, nil }))
}

func TestTrimStrings(t *testing.T) {
	tbl := sample()
	tbl.TrimStrings()

	c, _ := tbl.Column("cnpj")
	assert.Equal(t, "1", c.Value(0).Str)
	r, _ := tbl.Column("rua")
	assert.Equal(t, "B", r.Value(1).Str)
	assert.False(t, r.Value(2).Valid)
}

func TestEqual(t *testing.T) {
	assert.True(t, sample().Equal(sample()))

	other := sample()
	require.NoError(t, other.RenameColumns(map[string]string{"rua": "logradouro"}))
	assert.False(t, sample().Equal(other))

	other = sample()
	other.TrimStrings()
	assert.False(t, sample().Equal(other))

	reordered := MustNew(sample().ColumnAt(1), sample().ColumnAt(0), sample().ColumnAt(2))
	assert.False(t, sample().Equal(reordered))

	numeric := MustNew(NewColumn("n", String, NumericValue("45366")))
	assert.True(t, numeric.Equal(MustNew(NewColumn("n", String, StringValue("45366")))))

	var nilTable *Table
	assert.False(t, sample().Equal(nilTable))
	assert.True(t, nilTable.Equal(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "date", Date.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
