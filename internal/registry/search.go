package registry

import (
	"sort"
	"strings"
)

// FindByID returns the descriptor with the given id, if present.
func (m Manifest) FindByID(id string) (Descriptor, bool) {
	for _, mod := range m.Modules {
		if mod.ID == id {
			return mod, true
		}
	}
	return Descriptor{}, false
}

// Search returns modules whose id, name, description, or category
// contains the query, case-insensitively. Manifest order is preserved.
func (m Manifest) Search(query string) []Descriptor {
	q := strings.ToLower(query)

	var results []Descriptor
	for _, mod := range m.Modules {
		if strings.Contains(strings.ToLower(mod.ID), q) ||
			strings.Contains(strings.ToLower(mod.Name), q) ||
			strings.Contains(strings.ToLower(mod.Description), q) ||
			strings.Contains(strings.ToLower(mod.Category), q) {
			results = append(results, mod)
		}
	}
	return results
}

// Categories returns the sorted set of unique categories.
func (m Manifest) Categories() []string {
	set := map[string]struct{}{}
	for _, mod := range m.Modules {
		set[mod.Category] = struct{}{}
	}

	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
