package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MetadataFileName is the store's on-disk file, kept inside the install
// directory next to the module scripts it describes.
const MetadataFileName = ".bashmod-installed.json"

// MetadataPath returns the store file path for an install directory.
func MetadataPath(installDir string) string {
	return filepath.Join(installDir, MetadataFileName)
}

// Load reads a store from path. A missing file yields an empty store:
// first run is not an error.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("reading installed-state file: %w", err)
	}

	var entries map[string]InstalledModule
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing installed-state file %s: %w", path, err)
	}

	store := NewStore()
	for id, m := range entries {
		// The map key is authoritative; a stale inner id would break
		// the unique-id invariant.
		m.ID = id
		store.Upsert(m)
	}
	return store, nil
}

// Save writes the store to path as indented JSON keyed by module id.
// The write goes through a temp file and rename so a crash mid-write
// cannot leave a truncated store behind.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing installed state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing installed-state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing installed-state file: %w", err)
	}
	return nil
}
