package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrTypeMalformedInput, "MALFORMED_INPUT"},
		{ErrTypeUnparseableValue, "UNPARSEABLE_VALUE"},
		{ErrTypeStorage, "STORAGE"},
		{ErrTypeNotFound, "NOT_FOUND"},
		{ErrTypeConfig, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewMalformedInputError("missing column cep", nil),
			want: "[MALFORMED_INPUT] missing column cep",
		},
		{
			name: "with cause",
			err:  NewStorageError("failed to write snapshot", fmt.Errorf("disk full")),
			want: "[STORAGE] failed to write snapshot: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewStorageError("wrapped", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestClassification(t *testing.T) {
	malformed := fmt.Errorf("file x.xlsx: %w", NewMalformedInputError("missing sheet FINAL", nil))
	unparseable := fmt.Errorf("row 3: %w", NewUnparseableValueError("not-a-date", "unrecognized date"))
	plain := errors.New("plain")

	assert.True(t, IsMalformedInput(malformed))
	assert.False(t, IsUnparseableValue(malformed))

	assert.True(t, IsUnparseableValue(unparseable))
	assert.False(t, IsMalformedInput(unparseable))

	assert.False(t, IsMalformedInput(plain))
	assert.Equal(t, ErrorType(""), TypeOf(plain))
	assert.Equal(t, ErrTypeUnparseableValue, TypeOf(unparseable))

	assert.True(t, IsNotFound(NewNotFoundError("snapshot")))
}

func TestAnnotate(t *testing.T) {
	base := NewUnparseableValueError("2024/99/99", "unrecognized date")
	err := Annotate(fmt.Errorf("wrap: %w", base), "column", "data_situacao")

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "data_situacao", appErr.Context["column"])
	assert.Equal(t, "2024/99/99", appErr.Context["value"])

	plain := errors.New("plain")
	assert.Equal(t, plain, Annotate(plain, "k", "v"))
}

func TestAppError_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := NewUnparseableValueError("abc", "bad cnae").WithContext("row", 7)
	logger.Error("failed", slog.Any("error", err))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	group, ok := entry["error"].(map[string]interface{})
	require.True(t, ok, "error should be logged as a group")
	assert.Equal(t, "UNPARSEABLE_VALUE", group["type"])
	assert.Equal(t, "bad cnae", group["message"])
	assert.Equal(t, "abc", group["value"])
	assert.Equal(t, float64(7), group["row"])
}
