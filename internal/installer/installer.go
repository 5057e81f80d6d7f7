// Package installer orchestrates module installation: symbol
// extraction, script file writes, installed-state updates, and conflict
// scans. File write and store save are treated as one logical unit: a
// failure in either rolls the other back so a store entry always
// corresponds to a real file on disk.
//
// Installer operations are not safe for concurrent invocation on the
// same store; callers serialize installs and uninstalls.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raremonarch/bashmod/internal/conflict"
	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/registry"
	"github.com/raremonarch/bashmod/internal/script"
	"github.com/raremonarch/bashmod/internal/state"
	"github.com/raremonarch/bashmod/pkg/semver"
)

// ScriptExtension is appended to a module id to form its filename.
const ScriptExtension = ".sh"

// Installer installs and removes modules under a single install
// directory, keeping the store file in that directory in sync.
type Installer struct {
	dir       string
	store     *state.Store
	storePath string

	// now is swappable for tests.
	now func() time.Time
}

// New creates an Installer over the given install directory and store.
// The store file lives inside the install directory.
func New(installDir string, store *state.Store) *Installer {
	return &Installer{
		dir:       installDir,
		store:     store,
		storePath: state.MetadataPath(installDir),
		now:       time.Now,
	}
}

// Store exposes the underlying store for read-only use (listing,
// conflict scans). Mutations go through Install and Uninstall only.
func (i *Installer) Store() *state.Store {
	return i.store
}

// ScriptPath returns the on-disk path a module id installs to.
func (i *Installer) ScriptPath(id string) string {
	return filepath.Join(i.dir, id+ScriptExtension)
}

// ValidateID rejects ids that are empty or unsafe to use as a filename.
// The filename is derived solely from the id, so an id containing path
// separators or traversal components could escape the install directory.
func ValidateID(id string) error {
	switch {
	case id == "":
		return berrors.NewInvalidModuleIDError(id, "module id is empty")
	case strings.ContainsAny(id, `/\`):
		return berrors.NewInvalidModuleIDError(id, "module id contains path separators")
	case id == "." || id == "..":
		return berrors.NewInvalidModuleIDError(id, "module id is a path traversal component")
	case strings.HasPrefix(id, "."):
		return berrors.NewInvalidModuleIDError(id, "module id starts with a dot")
	}
	return nil
}

// Install writes scriptBytes to the install directory under the
// module's id, records the observed export set in the store, and
// returns the conflict list from a full rescan in install order.
//
// On any failure after the file write, the previous on-disk and store
// state is restored: either the full entry lands or nothing does.
func (i *Installer) Install(desc registry.Descriptor, scriptBytes []byte) ([]conflict.Conflict, error) {
	if err := ValidateID(desc.ID); err != nil {
		return nil, err
	}

	exports := script.Extract(string(scriptBytes))
	path := i.ScriptPath(desc.ID)

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating install directory: %w", err)
	}

	// Remember what was there before, for rollback on re-install.
	prevEntry, hadEntry := i.store.Get(desc.ID)
	prevBytes, hadFile, err := readIfExists(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting existing script: %w", err)
	}

	if err := os.WriteFile(path, scriptBytes, 0o644); err != nil {
		return nil, fmt.Errorf("writing module script: %w", err)
	}

	i.store.Upsert(state.InstalledModule{
		ID:          desc.ID,
		Version:     desc.Version,
		InstalledAt: i.now(),
		Exports:     exports,
	})

	if err := i.store.Save(i.storePath); err != nil {
		i.rollback(desc.ID, path, prevEntry, hadEntry, prevBytes, hadFile)
		return nil, fmt.Errorf("saving installed state (install rolled back): %w", err)
	}

	output.Debug("installed module", "id", desc.ID, "version", desc.Version, "symbols", exports.Count())
	return conflict.Scan(i.store.ListByInstalledAt()), nil
}

// PreviewConflicts reports the conflicts installing desc would create,
// without touching the filesystem or the store.
func (i *Installer) PreviewConflicts(desc registry.Descriptor, scriptBytes []byte) ([]conflict.Conflict, error) {
	if err := ValidateID(desc.ID); err != nil {
		return nil, err
	}

	candidate := state.InstalledModule{
		ID:          desc.ID,
		Version:     desc.Version,
		InstalledAt: i.now(),
		Exports:     script.Extract(string(scriptBytes)),
	}
	return conflict.ScanWithCandidate(i.store.ListByInstalledAt(), candidate), nil
}

// Uninstall removes a module's script file and store entry. A missing
// file or missing entry is tolerated; the operation is idempotent.
func (i *Installer) Uninstall(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	if err := os.Remove(i.ScriptPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing module script: %w", err)
	}

	if _, ok := i.store.Get(id); !ok {
		return nil
	}

	i.store.Remove(id)
	if err := i.store.Save(i.storePath); err != nil {
		return fmt.Errorf("saving installed state: %w", err)
	}

	output.Debug("uninstalled module", "id", id)
	return nil
}

// Scan runs a conflict scan over the current store, in install order.
func (i *Installer) Scan() []conflict.Conflict {
	return conflict.Scan(i.store.ListByInstalledAt())
}

// rollback undoes a half-finished install: restores the previous script
// bytes and store entry if there were any, removes both otherwise.
// Restore errors are logged, not surfaced; the install already failed
// and the caller gets that error.
func (i *Installer) rollback(id, path string, prevEntry state.InstalledModule, hadEntry bool, prevBytes []byte, hadFile bool) {
	if hadFile {
		if err := os.WriteFile(path, prevBytes, 0o644); err != nil {
			output.Error("rollback: restoring previous script failed", "id", id, "error", err)
		}
	} else {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			output.Error("rollback: removing written script failed", "id", id, "error", err)
		}
	}

	if hadEntry {
		i.store.Upsert(prevEntry)
	} else {
		i.store.Remove(id)
	}
}

func readIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// CheckForUpdate reports whether the registry offers a strictly newer
// version than the installed one. Versions compare numerically by
// major, minor, patch; equal versions are not an update.
func CheckForUpdate(installed state.InstalledModule, desc registry.Descriptor) (bool, error) {
	have, err := semver.Parse(installed.Version)
	if err != nil {
		return false, fmt.Errorf("installed version for %s: %w", installed.ID, err)
	}
	available, err := semver.Parse(desc.Version)
	if err != nil {
		return false, fmt.Errorf("registry version for %s: %w", desc.ID, err)
	}
	return have.Less(available), nil
}
