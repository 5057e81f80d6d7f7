package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raremonarch/bashmod/internal/script"
	"github.com/raremonarch/bashmod/internal/state"
)

func entry(id, version string, installedAt time.Time) state.InstalledModule {
	return state.InstalledModule{
		ID:          id,
		Version:     version,
		InstalledAt: installedAt,
		Exports:     script.ExportSet{Aliases: []string{"a-" + id}},
	}
}

// --- Store ---

func TestStore_UpsertReplacesByID(t *testing.T) {
	s := state.NewStore()
	now := time.Now()

	s.Upsert(entry("git-helpers", "1.0.0", now))
	s.Upsert(entry("git-helpers", "1.1.0", now.Add(time.Hour)))

	require.Equal(t, 1, s.Len())
	got, ok := s.Get("git-helpers")
	require.True(t, ok)
	assert.Equal(t, "1.1.0", got.Version)
}

func TestStore_RemoveMissingIsNoOp(t *testing.T) {
	s := state.NewStore()
	s.Remove("never-installed")
	assert.Equal(t, 0, s.Len())
}

func TestStore_ListOrderedByID(t *testing.T) {
	s := state.NewStore()
	now := time.Now()
	s.Upsert(entry("zsh-extras", "1.0.0", now))
	s.Upsert(entry("aws-tools", "1.0.0", now.Add(time.Minute)))
	s.Upsert(entry("git-helpers", "1.0.0", now.Add(2*time.Minute)))

	var ids []string
	for _, m := range s.List() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"aws-tools", "git-helpers", "zsh-extras"}, ids)
}

func TestStore_ListByInstalledAt(t *testing.T) {
	s := state.NewStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Upsert(entry("zsh-extras", "1.0.0", base))
	s.Upsert(entry("aws-tools", "1.0.0", base.Add(time.Minute)))
	// Same timestamp as zsh-extras: id breaks the tie.
	s.Upsert(entry("git-helpers", "1.0.0", base))

	var ids []string
	for _, m := range s.ListByInstalledAt() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"git-helpers", "zsh-extras", "aws-tools"}, ids)
}

// --- persistence ---

func TestLoad_MissingFileYieldsEmptyStore(t *testing.T) {
	s, err := state.Load(filepath.Join(t.TempDir(), state.MetadataFileName))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoad_CorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), state.MetadataFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := state.Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), state.MetadataFileName)

	s := state.NewStore()
	installedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Upsert(state.InstalledModule{
		ID:          "git-helpers",
		Version:     "1.2.0",
		InstalledAt: installedAt,
		Exports: script.ExportSet{
			Aliases:   []string{"gco", "gst"},
			Functions: []string{"gclean"},
			Variables: []string{"GIT_EDITOR"},
		},
	})
	require.NoError(t, s.Save(path))

	loaded, err := state.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())

	got, ok := loaded.Get("git-helpers")
	require.True(t, ok)
	assert.Equal(t, "1.2.0", got.Version)
	assert.True(t, got.InstalledAt.Equal(installedAt))
	assert.Equal(t, []string{"gco", "gst"}, got.Exports.Aliases)
	assert.Equal(t, []string{"gclean"}, got.Exports.Functions)
	assert.Equal(t, []string{"GIT_EDITOR"}, got.Exports.Variables)
}

func TestLoad_MapKeyIsAuthoritativeForID(t *testing.T) {
	path := filepath.Join(t.TempDir(), state.MetadataFileName)
	raw := `{"git-helpers": {"id": "stale-id", "version": "1.0.0", "installedAt": "2026-03-01T12:00:00Z", "exports": {"aliases": [], "functions": [], "variables": []}}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	loaded, err := state.Load(path)
	require.NoError(t, err)
	got, ok := loaded.Get("git-helpers")
	require.True(t, ok)
	assert.Equal(t, "git-helpers", got.ID)
}
