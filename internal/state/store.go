// Package state provides the installed-module store: the durable local
// record of which modules are installed, at what version, and which
// symbols each was observed to export at install time.
//
// The store never validates cross-module consistency; that is the
// conflict engine's job. Entries are mutated only by the installer.
package state

import (
	"sort"
	"time"

	"github.com/raremonarch/bashmod/internal/script"
)

// InstalledModule is one installed module's durable record.
//
// ID matched a registry descriptor at install time, but the descriptor
// may later disappear from the registry; nothing here depends on it
// still existing. Exports is the set observed by the extractor at
// install time, which is authoritative for conflict detection (the
// registry's declared exports are advisory only).
type InstalledModule struct {
	ID          string           `json:"id"`
	Version     string           `json:"version"`
	InstalledAt time.Time        `json:"installedAt"`
	Exports     script.ExportSet `json:"exports"`
}

// Store is an in-memory mapping from module id to InstalledModule.
// It is not safe for concurrent use; callers serialize mutations.
type Store struct {
	entries map[string]InstalledModule
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: map[string]InstalledModule{}}
}

// Upsert adds an entry, replacing any existing entry with the same id.
func (s *Store) Upsert(m InstalledModule) {
	s.entries[m.ID] = m
}

// Remove deletes the entry with the given id.
// Removing a non-existent id is a no-op, not an error.
func (s *Store) Remove(id string) {
	delete(s.entries, id)
}

// Get returns the entry for id, if present.
func (s *Store) Get(id string) (InstalledModule, bool) {
	m, ok := s.entries[id]
	return m, ok
}

// Len returns the number of installed modules.
func (s *Store) Len() int {
	return len(s.entries)
}

// List returns all entries ordered by id ascending. The explicit sort
// key keeps display and conflict output reproducible across runs
// instead of leaning on map iteration order.
func (s *Store) List() []InstalledModule {
	list := s.collect()
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// ListByInstalledAt returns all entries ordered by install time
// ascending, ties broken by id. Feeding this order to the conflict
// engine makes conflict module lists read in install order, which is
// what communicates "last-installed wins" to the user.
func (s *Store) ListByInstalledAt() []InstalledModule {
	list := s.collect()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].InstalledAt.Equal(list[j].InstalledAt) {
			return list[i].InstalledAt.Before(list[j].InstalledAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (s *Store) collect() []InstalledModule {
	list := make([]InstalledModule, 0, len(s.entries))
	for _, m := range s.entries {
		list = append(list, m)
	}
	return list
}
