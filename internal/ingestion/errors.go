package ingestion

import (
	"errors"
	"fmt"
)

// ErrFileTooLarge is returned when a document exceeds the configured size limit
var ErrFileTooLarge = errors.New("file too large")

// ParseError represents a document that is not a JSON array of objects.
// Message carries the underlying parser or validator message.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("error parsing file: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("error parsing file: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
