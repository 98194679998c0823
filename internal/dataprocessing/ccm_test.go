package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "empresascli/internal/errors"
	"empresascli/internal/table"
	"empresascli/pkg/contracts/domain"
)

func readCommercialFixture(t *testing.T) *table.Table {
	t.Helper()
	path := writeWorkbook(t, t.TempDir(), "LISTAGEM CADASTRO 2024.xlsx", "FINAL", commercialRows())
	tbl, err := ReadSheet(path, "FINAL", discardLogger())
	require.NoError(t, err)
	return tbl
}

func cell(t *testing.T, tbl *table.Table, column string, row int) table.Value {
	t.Helper()
	c, ok := tbl.Column(column)
	require.True(t, ok, "column %s", column)
	return c.Value(row)
}

func TestNormalizeCommercial(t *testing.T) {
	tbl := readCommercialFixture(t)
	require.NoError(t, NormalizeCommercial(tbl))

	assert.Equal(t, []string{
		"cnpj_cpf", "nome", "logradouro", "complemento", "cep", "telefone", "ramal", "email",
		"qtde_empregados", "descricao_cnae", "bairro", "cidade", "uf", "cnae 1", "cnae 2",
	}, tbl.Names())

	assert.Equal(t, "00028500097841", cell(t, tbl, "cnpj_cpf", 0).Str)
	assert.False(t, cell(t, tbl, "cnpj_cpf", 1).Valid)
	assert.Equal(t, "00028500097841", cell(t, tbl, "cnpj_cpf", 2).Str)

	assert.Equal(t, "1147891234", cell(t, tbl, "telefone", 0).Str)
	assert.False(t, cell(t, tbl, "telefone", 1).Valid)
	assert.False(t, cell(t, tbl, "telefone", 2).Valid)

	assert.Equal(t, "08780000", cell(t, tbl, "cep", 0).Str)
	assert.Equal(t, "08780000", cell(t, tbl, "cep", 1).Str)
	assert.Equal(t, "01234567", cell(t, tbl, "cep", 2).Str)

	assert.Equal(t, "Rua A", cell(t, tbl, "logradouro", 0).Str)
	assert.Equal(t, "0", cell(t, tbl, "ramal", 0).Str)
}

func TestNormalizeCommercialMissingColumn(t *testing.T) {
	tbl := table.MustNew(
		table.NewColumn("CNPJ/CPF", table.String),
		table.NewColumn("Telefone", table.String),
		table.NewColumn("CEP", table.String),
	)

	err := NormalizeCommercial(tbl)
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedInput(err))
	assert.Contains(t, err.Error(), "ramal")
}

func TestExtractActivityCodes(t *testing.T) {
	tbl := readCommercialFixture(t)
	require.NoError(t, NormalizeCommercial(tbl))

	codes := ExtractActivityCodes(tbl)
	assert.Equal(t, []domain.ActivityCode{
		{TaxID: "00028500097841", Code: "4711-3/02"},
		{TaxID: "00028500097841", Code: "5611-2/01"},
		{TaxID: "", Code: "6422-1/00"},
	}, codes)

	out := ActivityCodeTable(codes)
	assert.Equal(t, []string{"cnpj_cpf", "cnae"}, out.Names())
	assert.Equal(t, 3, out.NumRows())
	assert.False(t, out.Row(2)[0].Valid)
}

// wideRow builds a normalized commercial table with one row: tax ID, name
// and an activity code at column 13.
func wideRow(taxID, name table.Value) *table.Table {
	cols := []*table.Column{
		table.NewColumn(ColTaxID, table.String, taxID),
		table.NewColumn(ColName, table.String, name),
	}
	for j := 2; j < activityCodeFirstColumn; j++ {
		// a formatted code before column 13 is never extracted
		cols = append(cols, table.NewColumn(fmt.Sprintf("c%d", j), table.String, table.StringValue("1111-1/11")))
	}
	cols = append(cols, table.NewColumn("cnae 1", table.String, table.StringValue("4711-3/02")))
	return table.MustNew(cols...)
}

func TestExtractActivityCodesSentinel(t *testing.T) {
	tests := []struct {
		name  string
		taxID table.Value
		nome  table.Value
		want  int
	}{
		{"regular row", table.StringValue("00028500097841"), table.StringValue("PADARIA"), 1},
		{"sentinel without bank name", table.StringValue("191"), table.StringValue("PADARIA"), 0},
		{"sentinel with null name", table.StringValue("191"), table.Null(), 0},
		{"sentinel bank", table.StringValue("191"), table.StringValue("BANCO DO BRASIL SA"), 1},
		{"padded sentinel is a regular row", table.StringValue("00000000000191"), table.StringValue("PADARIA"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := ExtractActivityCodes(wideRow(tt.taxID, tt.nome))
			assert.Len(t, codes, tt.want)
			for _, c := range codes {
				assert.Equal(t, "4711-3/02", c.Code)
			}
		})
	}
}

func TestExtractActivityCodesWithoutNameColumn(t *testing.T) {
	tbl := wideRow(table.StringValue("191"), table.Null())
	require.NoError(t, tbl.RenameColumns(map[string]string{ColName: "razao"}))
	assert.Empty(t, ExtractActivityCodes(tbl))
}

func TestDuplicateValues(t *testing.T) {
	tbl := readCommercialFixture(t)
	require.NoError(t, NormalizeCommercial(tbl))

	assert.Equal(t, map[string]int{"00028500097841": 2}, DuplicateValues(tbl, ColTaxID))
	assert.Nil(t, DuplicateValues(tbl, "missing"))
	assert.Equal(t, []string{"a", "b"}, sampleKeys(map[string]int{"c": 2, "a": 2, "b": 3}, 2))
}
