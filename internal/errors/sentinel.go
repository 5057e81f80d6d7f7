package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrMalformedRegistry indicates a registry manifest (or a single
	// entry within it) failed validation.
	ErrMalformedRegistry = errors.New("malformed registry")

	// ErrInvalidModuleID indicates a module id that is empty or unsafe
	// to use as a filename.
	ErrInvalidModuleID = errors.New("invalid module id")

	// ErrFetchFailure indicates a network or transport failure. The core
	// never retries; retry policy belongs to the caller.
	ErrFetchFailure = errors.New("fetch failure")

	// ErrNotFound indicates a module, file, or registry entry was not found.
	ErrNotFound = errors.New("not found")
)
