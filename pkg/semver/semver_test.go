package semver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raremonarch/bashmod/pkg/semver"
)

// --- Parse ---

func TestParse_Valid(t *testing.T) {
	v, err := semver.Parse("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 3}, v)
}

func TestParse_ZeroComponents(t *testing.T) {
	v, err := semver.Parse("0.0.0")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", v.String())
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"v1.2.3",
		"1.2.x",
		"1.-2.3",
		"1.+2.3",
		"1..3",
		"1.2.3-beta",
	}
	for _, c := range cases {
		_, err := semver.Parse(c)
		assert.Error(t, err, "expected parse failure for %q", c)
	}
}

// --- Compare ---

func TestCompare_NumericNotLexical(t *testing.T) {
	// "1.10.0" sorts before "1.2.0" lexically; numeric comparison must not.
	a := semver.MustParse("1.2.0")
	b := semver.MustParse("1.10.0")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestCompare_Equal(t *testing.T) {
	a := semver.MustParse("1.2.0")
	b := semver.MustParse("1.2.0")
	assert.Equal(t, 0, a.Compare(b))
}

func TestCompare_MajorDominates(t *testing.T) {
	a := semver.MustParse("2.0.0")
	b := semver.MustParse("1.99.99")
	assert.Equal(t, 1, a.Compare(b))
}

func TestCompare_PatchOrdering(t *testing.T) {
	a := semver.MustParse("0.1.2")
	b := semver.MustParse("0.1.10")
	assert.Equal(t, -1, a.Compare(b))
}
