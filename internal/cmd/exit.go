// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"

	berrors "github.com/raremonarch/bashmod/internal/errors"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitMalformedRegistry indicates the registry manifest failed validation.
	ExitMalformedRegistry = 2

	// ExitFetchFailure indicates a manifest or script download failed.
	ExitFetchFailure = 3

	// ExitInvalidModuleID indicates a module id unsafe to use as a filename.
	ExitInvalidModuleID = 4

	// ExitNotFound indicates a module was not found in the registry or store.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitMalformedRegistry:
		return "Malformed Registry"
	case ExitFetchFailure:
		return "Fetch Failure"
	case ExitInvalidModuleID:
		return "Invalid Module ID"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *berrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, berrors.ErrMalformedRegistry):
		return ExitMalformedRegistry
	case errors.Is(err, berrors.ErrFetchFailure):
		return ExitFetchFailure
	case errors.Is(err, berrors.ErrInvalidModuleID):
		return ExitInvalidModuleID
	case errors.Is(err, berrors.ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// exitWith wraps err with the exit code derived from its sentinel.
func exitWith(err error) error {
	if err == nil {
		return nil
	}
	return &berrors.ExitError{Code: ExitCodeFromError(err), Err: err}
}
