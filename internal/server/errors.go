// Package server provides the HTTP UI host for job analysis.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/job-analysis/internal/board"
	"github.com/jonathan/job-analysis/internal/ingestion"
	"github.com/jonathan/job-analysis/internal/sorting"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// errNoFile is returned by an upload without a file part or body
var errNoFile = &ErrValidation{Field: "file", Message: "no file uploaded"}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		parseErr      *ingestion.ParseError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.Is(err, sorting.ErrUnknownField), errors.Is(err, sorting.ErrUnknownDirection):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrFileTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, board.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, board.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
