// Package domain defines domain-specific errors.
// These errors describe visualization failures and are independent of the rendering host.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services and adapters can return.
var (
	// ErrSurfaceUnavailable is reported when there is no drawable surface.
	// The driver treats it as a silent no-op, never as a failure.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

	// ErrUnknownMood is returned by strict lookups of a mood name.
	ErrUnknownMood = errors.New("unknown mood")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat is returned when a frame export format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrFileNotFound is returned when a file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFilePath is returned when a file path is empty or invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrNoFrame is returned when a frame is requested before one was rendered.
	ErrNoFrame = errors.New("no frame rendered yet")
)

// ValidationError describes an attribute or setting that was rejected or corrected.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RenderError wraps a failure to encode or write a rendered frame.
type RenderError struct {
	Op     string // Operation that failed (e.g., "encode", "write")
	Format string // Output format (e.g., "png", "svg")
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s) failed: %v", e.Op, e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(op, format string, err error) *RenderError {
	return &RenderError{
		Op:     op,
		Format: format,
		Err:    err,
	}
}
