package exporter

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empresascli/internal/table"
	"empresascli/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func reportTable() *table.Table {
	return table.MustNew(
		table.NewColumn("cnpj", table.String,
			table.StringValue("28500097000141"), table.StringValue("00000000000191")),
		table.NewColumn("nome_empresarial", table.String,
			table.StringValue("PADARIA, PÃO & CIA"), table.Null()),
		table.NewColumn("inicio_atividade", table.Date,
			table.DateValue(time.Date(2005, 3, 15, 0, 0, 0, 0, time.UTC)), table.Null()),
	)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		options  WriteOptions
		validate func(t *testing.T, content []byte)
	}{
		{
			name: "basic write with headers",
			options: WriteOptions{
				Headers: []string{"Name", "Age", "City"},
				Records: [][]string{
					{"John", "25", "New York"},
					{"Jane", "30", "London"},
				},
			},
			validate: func(t *testing.T, content []byte) {
				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 3)
				assert.Equal(t, "Name,Age,City", lines[0])
				assert.Equal(t, "John,25,New York", lines[1])
			},
		},
		{
			name: "write with BOM prefix",
			options: WriteOptions{
				Headers:   []string{"cnae", "empresas"},
				Records:   [][]string{{"4711-3/02", "2"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, content []byte) {
				require.True(t, bytes.HasPrefix(content, utf8BOM))
				lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
				assert.Equal(t, "cnae,empresas", lines[0])
				assert.Equal(t, "4711-3/02,2", lines[1])
			},
		},
		{
			name: "write without headers",
			options: WriteOptions{
				Records: [][]string{{"a", "b"}},
			},
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "a,b\n", string(content))
			},
		},
		{
			name: "empty records",
			options: WriteOptions{
				Headers: []string{"Col1", "Col2"},
			},
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "Col1,Col2\n", string(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "test.csv")
			require.NoError(t, NewCSVWriter(discardLogger()).WriteCSV(path, tt.options))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.validate(t, content)
		})
	}
}

func TestCSVWriter_WriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Excel_Analysis_Mar-15-2024.csv")
	require.NoError(t, NewCSVWriter(discardLogger()).WriteTable(path, reportTable()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(content[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"cnpj", "nome_empresarial", "inicio_atividade"},
		{"28500097000141", "PADARIA, PÃO & CIA", "2005-03-15"},
		{"00000000000191", "", ""},
	}, records)
}

func TestCSVWriter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteCSV(path, WriteOptions{Records: [][]string{{"old"}, {"old"}}}))
	require.NoError(t, w.WriteCSV(path, WriteOptions{Records: [][]string{{"new"}}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestNew(t *testing.T) {
	w, err := New(domain.ReportFormatXLSX, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &XLSXWriter{}, w)

	w, err = New(domain.ReportFormatCSV, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	_, err = New(domain.ReportFormat("ods"), discardLogger())
	assert.Error(t, err)
}
