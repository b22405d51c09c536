package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CodePeacock/pdf-parser/internal/ingestion"
	"github.com/CodePeacock/pdf-parser/internal/reference"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrTooLarge indicates a request body over the size limit
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrUnsupportedMediaType indicates a body the server cannot read
type ErrUnsupportedMediaType struct {
	MediaType string
}

func (e *ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("unsupported media type: %s", e.MediaType)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		tooLargeErr    *ErrTooLarge
		mediaTypeErr   *ErrUnsupportedMediaType
		inputErr       *ingestion.InputError
		unavailableErr *reference.UnavailableError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &mediaTypeErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
