package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodePeacock/pdf-parser/internal/ingestion"
	"github.com/CodePeacock/pdf-parser/internal/reference"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "failed required"}
	assert.Equal(t, "validation error: text - failed required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrTooLarge(t *testing.T) {
	err := &ErrTooLarge{Limit: 1024}
	assert.Equal(t, "request body exceeds 1024 bytes", err.Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))
}

func TestErrUnsupportedMediaType(t *testing.T) {
	err := &ErrUnsupportedMediaType{MediaType: "application/pdf"}
	assert.Equal(t, "unsupported media type: application/pdf", err.Error())
	assert.Equal(t, http.StatusUnsupportedMediaType, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "format", Message: "failed oneof"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped ErrValidation",
			err:      fmt.Errorf("decode: %w", &ErrValidation{Field: "body"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "InputError",
			err:      &ingestion.InputError{Path: "a.txt", Message: "file not found"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "UnavailableError",
			err:      &reference.UnavailableError{Kind: reference.Designations, Attempts: 3},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "ErrTooLarge",
			err:      &ErrTooLarge{Limit: 1},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "generic error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
