package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCaptureHandler(t *testing.T) {
	logger, h := NewTestLogger(t)

	logger.With("component", "rfb").Warn("Duplicate tax IDs", slog.Int("count", 2))
	logger.WithGroup("job").Info("Run complete", slog.Int("failed", 0))
	logger.Error("File failed", slog.Group("error", slog.String("type", "MALFORMED_INPUT")))

	require.Len(t, h.Records(), 3)

	r, ok := h.Find("Duplicate")
	require.True(t, ok)
	assert.Equal(t, "rfb", r.Attrs["component"])
	assert.Equal(t, int64(2), r.Attrs["count"])

	r, _ = h.Find("Run complete")
	assert.Equal(t, int64(0), r.Attrs["job.failed"])

	r, _ = h.Find("File failed")
	assert.Equal(t, "MALFORMED_INPUT", r.Attrs["error.type"])

	assert.Equal(t, 1, h.Count(slog.LevelError))
	AssertLogContains(t, h, slog.LevelWarn, "Duplicate tax IDs")

	_, ok = h.Find("missing")
	assert.False(t, ok)
}

func TestWriteWorkbook(t *testing.T) {
	path := WriteWorkbook(t, t.TempDir(), "LISTAGEM CADASTRO 2024.xlsx", "FINAL", [][]any{
		{"CNPJ/CPF", "Nome"},
		{nil, "PADARIA"},
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"FINAL"}, f.GetSheetList())
	rows, err := f.GetRows("FINAL")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"CNPJ/CPF", "Nome"}, {"", "PADARIA"}}, rows)
}
