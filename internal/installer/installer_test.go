package installer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raremonarch/bashmod/internal/conflict"
	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/installer"
	"github.com/raremonarch/bashmod/internal/registry"
	"github.com/raremonarch/bashmod/internal/state"
)

func descriptor(id, version string) registry.Descriptor {
	return registry.Descriptor{
		ID:       id,
		Name:     id,
		Version:  version,
		URL:      "https://example.test/" + id + ".sh",
		Category: "misc",
	}
}

func newInstaller(t *testing.T) (*installer.Installer, string) {
	t.Helper()
	dir := t.TempDir()
	return installer.New(dir, state.NewStore()), dir
}

// --- ValidateID ---

func TestValidateID(t *testing.T) {
	valid := []string{"git-helpers", "net_utils", "a", "mod2"}
	for _, id := range valid {
		assert.NoError(t, installer.ValidateID(id), "id %q", id)
	}

	invalid := []string{"", "../evil", "a/b", `a\b`, ".", "..", ".hidden"}
	for _, id := range invalid {
		err := installer.ValidateID(id)
		require.Error(t, err, "id %q", id)
		assert.True(t, errors.Is(err, berrors.ErrInvalidModuleID), "id %q", id)
	}
}

// --- Install ---

func TestInstall_WritesFileAndStore(t *testing.T) {
	inst, dir := newInstaller(t)

	script := "alias gst='git status'\nexport GIT_EDITOR=vim\n"
	conflicts, err := inst.Install(descriptor("git-helpers", "1.2.0"), []byte(script))
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Script on disk under the id-derived filename.
	data, err := os.ReadFile(filepath.Join(dir, "git-helpers.sh"))
	require.NoError(t, err)
	assert.Equal(t, script, string(data))

	// Observed exports recorded, not the registry's declared ones.
	entry, ok := inst.Store().Get("git-helpers")
	require.True(t, ok)
	assert.Equal(t, "1.2.0", entry.Version)
	assert.Equal(t, []string{"gst"}, entry.Exports.Aliases)
	assert.Equal(t, []string{"GIT_EDITOR"}, entry.Exports.Variables)

	// Store file persisted alongside the script.
	persisted, err := state.Load(state.MetadataPath(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, persisted.Len())
}

func TestInstall_PathTraversalID_WritesNothing(t *testing.T) {
	inst, dir := newInstaller(t)

	_, err := inst.Install(descriptor("../evil", "1.0.0"), []byte("alias x=y"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, berrors.ErrInvalidModuleID))

	// Nothing escaped the install dir, nothing was written at all.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
	assert.Equal(t, 0, inst.Store().Len())
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "evil.sh"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstall_ReturnsConflictsFromFullRescan(t *testing.T) {
	inst, _ := newInstaller(t)

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)

	conflicts, err := inst.Install(descriptor("git-shortcuts", "1.0.0"), []byte("alias gst='git st'"))
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "gst", conflicts[0].Name)
	assert.Equal(t, conflict.KindAlias, conflicts[0].Kind)
	assert.Equal(t, []string{"git-helpers", "git-shortcuts"}, conflicts[0].Modules)
}

func TestInstall_ReinstallReplacesEntry(t *testing.T) {
	inst, dir := newInstaller(t)

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)

	_, err = inst.Install(descriptor("git-helpers", "1.1.0"), []byte("alias gco='git checkout'"))
	require.NoError(t, err)

	assert.Equal(t, 1, inst.Store().Len())
	entry, _ := inst.Store().Get("git-helpers")
	assert.Equal(t, "1.1.0", entry.Version)
	assert.Equal(t, []string{"gco"}, entry.Exports.Aliases)

	data, err := os.ReadFile(filepath.Join(dir, "git-helpers.sh"))
	require.NoError(t, err)
	assert.Equal(t, "alias gco='git checkout'", string(data))
}

func TestInstall_StoreSaveFailure_RollsBackFile(t *testing.T) {
	dir := t.TempDir()
	inst := installer.New(dir, state.NewStore())

	// Make the metadata path unwritable by occupying it with a directory:
	// the save's rename over a directory fails on every platform.
	require.NoError(t, os.MkdirAll(state.MetadataPath(dir), 0o755))

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.Error(t, err)

	// Rollback: no script file, no store entry.
	_, statErr := os.Stat(filepath.Join(dir, "git-helpers.sh"))
	assert.True(t, os.IsNotExist(statErr), "rolled-back install must remove the script")
	assert.Equal(t, 0, inst.Store().Len())
}

func TestInstall_StoreSaveFailureOnUpgrade_RestoresPrevious(t *testing.T) {
	dir := t.TempDir()
	inst := installer.New(dir, state.NewStore())

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)

	// Break the store file for the next save.
	require.NoError(t, os.Remove(state.MetadataPath(dir)))
	require.NoError(t, os.MkdirAll(state.MetadataPath(dir), 0o755))

	_, err = inst.Install(descriptor("git-helpers", "2.0.0"), []byte("alias gco='git checkout'"))
	require.Error(t, err)

	// Previous version restored on disk and in the store.
	data, readErr := os.ReadFile(filepath.Join(dir, "git-helpers.sh"))
	require.NoError(t, readErr)
	assert.Equal(t, "alias gst='git status'", string(data))

	entry, ok := inst.Store().Get("git-helpers")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", entry.Version)
}

// --- Uninstall ---

func TestUninstall_RemovesFileAndEntry(t *testing.T) {
	inst, dir := newInstaller(t)

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)

	require.NoError(t, inst.Uninstall("git-helpers"))

	_, statErr := os.Stat(filepath.Join(dir, "git-helpers.sh"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, 0, inst.Store().Len())
}

func TestUninstall_Idempotent(t *testing.T) {
	inst, _ := newInstaller(t)

	require.NoError(t, inst.Uninstall("never-installed"))
	require.NoError(t, inst.Uninstall("never-installed"))
}

func TestUninstall_MissingFileTolerated(t *testing.T) {
	inst, dir := newInstaller(t)

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)

	// Someone deleted the script behind our back.
	require.NoError(t, os.Remove(filepath.Join(dir, "git-helpers.sh")))

	require.NoError(t, inst.Uninstall("git-helpers"))
	assert.Equal(t, 0, inst.Store().Len())
}

func TestInstallThenUninstall_RestoresObservableState(t *testing.T) {
	inst, dir := newInstaller(t)

	before, err := os.ReadDir(dir)
	require.NoError(t, err)

	_, err = inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)
	require.NoError(t, inst.Uninstall("git-helpers"))

	after, err := os.ReadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 0, inst.Store().Len())
	// Only the (now empty) store file may differ; no module scripts remain.
	var scripts []string
	for _, e := range after {
		if filepath.Ext(e.Name()) == installer.ScriptExtension {
			scripts = append(scripts, e.Name())
		}
	}
	assert.Empty(t, scripts)
	assert.GreaterOrEqual(t, len(after), len(before))
}

// --- PreviewConflicts ---

func TestPreviewConflicts_DoesNotTouchDiskOrStore(t *testing.T) {
	inst, dir := newInstaller(t)

	_, err := inst.Install(descriptor("git-helpers", "1.0.0"), []byte("alias gst='git status'"))
	require.NoError(t, err)

	conflicts, err := inst.PreviewConflicts(descriptor("git-shortcuts", "1.0.0"), []byte("alias gst='git st'"))
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"git-helpers", "git-shortcuts"}, conflicts[0].Modules)

	// Candidate was never installed.
	assert.Equal(t, 1, inst.Store().Len())
	_, statErr := os.Stat(filepath.Join(dir, "git-shortcuts.sh"))
	assert.True(t, os.IsNotExist(statErr))
}

// --- CheckForUpdate ---

func TestCheckForUpdate(t *testing.T) {
	installed := state.InstalledModule{ID: "m", Version: "1.2.0", InstalledAt: time.Now()}

	update, err := installer.CheckForUpdate(installed, descriptor("m", "1.10.0"))
	require.NoError(t, err)
	assert.True(t, update, "1.2.0 -> 1.10.0 compares numerically, not lexically")

	update, err = installer.CheckForUpdate(installed, descriptor("m", "1.2.0"))
	require.NoError(t, err)
	assert.False(t, update, "equal versions are not an update")

	update, err = installer.CheckForUpdate(installed, descriptor("m", "1.1.9"))
	require.NoError(t, err)
	assert.False(t, update)
}

func TestCheckForUpdate_BadVersion(t *testing.T) {
	installed := state.InstalledModule{ID: "m", Version: "not-a-version"}
	_, err := installer.CheckForUpdate(installed, descriptor("m", "1.0.0"))
	assert.Error(t, err)
}
