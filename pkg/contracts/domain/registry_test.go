package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSummaryCount(t *testing.T) {
	s := JobSummary{Registry: RegistryCommercial}
	assert.Zero(t, s.Count(FileStatusProcessed))
	assert.False(t, s.Failed())

	s.Results = []FileResult{
		{Source: "a.xlsx", Status: FileStatusProcessed},
		{Source: "b.xlsx", Status: FileStatusSkipped},
		{Source: "c.xlsx", Status: FileStatusProcessed},
		{Source: "d.xlsx", Status: FileStatusFailed, Err: errors.New("boom")},
	}
	assert.Equal(t, 2, s.Count(FileStatusProcessed))
	assert.Equal(t, 1, s.Count(FileStatusSkipped))
	assert.True(t, s.Failed())
}

func TestFileResultJSONOmitsError(t *testing.T) {
	data, err := json.Marshal(FileResult{Source: "a.xlsx", Status: FileStatusFailed, Err: errors.New("boom")})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "boom")
	assert.NotContains(t, string(data), "activity_codes")
}

func TestActivityCodeJSON(t *testing.T) {
	data, err := json.Marshal(ActivityCode{TaxID: "00028500097841", Code: "4711-3/02"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cnpj_cpf":"00028500097841","cnae":"4711-3/02"}`, string(data))
}

func TestParseReportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ReportFormat
		wantErr bool
	}{
		{"xlsx", ReportFormatXLSX, false},
		{" CSV ", ReportFormatCSV, false},
		{"ods", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReportFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, ".csv", ReportFormatCSV.Ext())
}

func TestReportRequestValidation(t *testing.T) {
	v := validator.New()

	ok := ReportRequest{SnapshotPath: "s.parquet", Analysis: "identity", Format: ReportFormatXLSX, OutputPath: "r.xlsx"}
	assert.NoError(t, v.Struct(ok))

	bad := ok
	bad.Format = "ods"
	assert.Error(t, v.Struct(bad))

	bad = ok
	bad.Analysis = ""
	assert.Error(t, v.Struct(bad))
}
