package registry

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveSnapshot caches raw manifest bytes under the bashmod cache
// directory so listing and diffing work offline.
func SaveSnapshot(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing registry snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads previously cached manifest bytes.
// Returns (nil, false, nil) when no snapshot exists yet.
func LoadSnapshot(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading registry snapshot: %w", err)
	}
	return data, true, nil
}
