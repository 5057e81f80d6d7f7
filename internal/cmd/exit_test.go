package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	berrors "github.com/raremonarch/bashmod/internal/errors"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"malformed registry", berrors.NewMalformedRegistryError("bad", "", ""), ExitMalformedRegistry},
		{"fetch failure", berrors.NewFetchError("timeout", "https://example.test", nil), ExitFetchFailure},
		{"invalid module id", berrors.NewInvalidModuleIDError("../evil", "traversal"), ExitInvalidModuleID},
		{"not found", berrors.NewNotFoundError("no such module", "ghost", ""), ExitNotFound},
		{"wrapped sentinel", fmt.Errorf("context: %w", berrors.ErrNotFound), ExitNotFound},
		{"explicit exit error", &berrors.ExitError{Code: 42, Err: errors.New("custom")}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}

func TestExitWith(t *testing.T) {
	assert.NoError(t, exitWith(nil))

	err := exitWith(berrors.NewFetchError("down", "https://example.test", nil))
	var exitErr *berrors.ExitError
	assert.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitFetchFailure, exitErr.Code)
}
