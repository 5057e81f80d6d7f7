package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	berrors "github.com/raremonarch/bashmod/internal/errors"
)

func TestDetailError_WrapsSentinel(t *testing.T) {
	err := berrors.NewMalformedRegistryError("entry missing version", "registry.json", "")
	assert.True(t, stderrors.Is(err, berrors.ErrMalformedRegistry))
	assert.False(t, stderrors.Is(err, berrors.ErrFetchFailure))
}

func TestDetailError_Message(t *testing.T) {
	err := berrors.NewInvalidModuleIDError("../evil", "id contains path separators")
	assert.Contains(t, err.Error(), "invalid module id")
	assert.Contains(t, err.Error(), "../evil")
	assert.True(t, stderrors.Is(err, berrors.ErrInvalidModuleID))
}

func TestNewFetchError_PreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := berrors.NewFetchError("fetching manifest", "https://example.test/registry.json", cause)
	assert.True(t, stderrors.Is(err, berrors.ErrFetchFailure))
	assert.True(t, stderrors.Is(err, cause))
}

func TestNewFetchError_NilCause(t *testing.T) {
	err := berrors.NewFetchError("fetching manifest", "https://example.test/r.json", nil)
	assert.True(t, stderrors.Is(err, berrors.ErrFetchFailure))
}

func TestExitError_Unwrap(t *testing.T) {
	inner := berrors.NewNotFoundError("module not installed", "git-helpers", "")
	err := &berrors.ExitError{Code: 5, Err: inner}

	var exitErr *berrors.ExitError
	require.True(t, stderrors.As(err, &exitErr))
	assert.Equal(t, 5, exitErr.Code)
	assert.True(t, stderrors.Is(err, berrors.ErrNotFound))
}
