package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raremonarch/bashmod/internal/version"
)

func TestGetInfo(t *testing.T) {
	info := version.GetInfo()
	assert.Equal(t, version.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestInfoString(t *testing.T) {
	s := version.GetInfo().String()
	assert.Contains(t, s, "bashmod")
	assert.Contains(t, s, version.Version)
}
