package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("should round total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta("ok", nil, 41, 1, 20)

		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(41), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("should tolerate a zero page size", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta("ok", nil, 41, 1, 0)

		require.NotNil(t, resp.Meta)
		assert.Equal(t, 0, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Mutation not found", "req-123")

	assert.False(t, resp.OK)
	assert.Equal(t, "Mutation not found", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Nil(t, resp.Meta)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-123", []ValidationField{
		{Field: "quantity", Message: "must be greater than 0"},
	})

	assert.False(t, resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Fields, 1)
	assert.Equal(t, "quantity", resp.Error.Fields[0].Field)
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"INSUFFICIENT_STOCK", http.StatusBadRequest},
		{"STOCK_DRIFT", http.StatusBadRequest},
		{"DUPLICATE_REQUEST", http.StatusBadRequest},
		{"SAME_WAREHOUSE", http.StatusBadRequest},
		{"FORBIDDEN_WAREHOUSE", http.StatusForbidden},
		{"NO_DONOR_WAREHOUSE", http.StatusNotFound},
		{ErrCodeNotFound, http.StatusNotFound},
		{"JOURNAL_MISMATCH", http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(tt.code), "code %s", tt.code)
	}

	t.Run("unknown codes default to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
	})
}
