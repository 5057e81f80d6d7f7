// Package errors provides sentinel errors and structured error types
// for the bashmod CLI.
package errors

import (
	"fmt"
	"strings"
)

// DetailError captures structured error information for user-facing
// failures: what went wrong, where, and what to do about it.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path, URL, or module id involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewMalformedRegistryError creates a registry validation error with details.
func NewMalformedRegistryError(message, location, hint string) error {
	return &DetailError{
		Type:     "malformed registry",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrMalformedRegistry,
	}
}

// NewInvalidModuleIDError creates an invalid module id error with details.
func NewInvalidModuleIDError(id, message string) error {
	return &DetailError{
		Type:     "invalid module id",
		Message:  message,
		Location: id,
		Hint:     "module ids may only contain letters, digits, '-' and '_'",
		Cause:    ErrInvalidModuleID,
	}
}

// NewFetchError creates a fetch failure error with details.
func NewFetchError(message, url string, cause error) error {
	wrapped := error(ErrFetchFailure)
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrFetchFailure, cause)
	}
	return &DetailError{
		Type:     "fetch failure",
		Message:  message,
		Location: url,
		Hint:     "check the URL and your network connection",
		Cause:    wrapped,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// ExitError carries a process exit code across the cobra boundary.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed indicates the command layer already printed the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
