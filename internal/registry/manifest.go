// Package registry provides the typed registry manifest model, its
// validation rules, and the HTTP client that fetches manifest and
// module script bytes.
package registry

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"

	berrors "github.com/raremonarch/bashmod/internal/errors"
	"github.com/raremonarch/bashmod/internal/script"
	"github.com/raremonarch/bashmod/pkg/semver"
)

// SupportedManifestVersion is the only registry schema version this
// build understands.
const SupportedManifestVersion = "1.0"

// Descriptor describes one module as listed in a registry manifest.
// Descriptors are ephemeral: rebuilt on every fetch, never persisted.
type Descriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	URL         string `json:"url"`
	Category    string `json:"category"`

	// Dependencies lists other module ids. Advisory only: installation
	// order is not enforced from it.
	Dependencies []string `json:"dependencies,omitempty"`

	// Exports is the author-declared symbol set. Display-only; the
	// extractor's observed set is authoritative for conflict detection.
	Exports script.ExportSet `json:"exports,omitempty"`
}

// Manifest is a parsed and validated registry manifest.
type Manifest struct {
	Version string       `json:"version"`
	Modules []Descriptor `json:"modules"`
}

// Issue records a single invalid manifest entry that was excluded from
// the parse result. Issues are reported, never fatal to the batch.
type Issue struct {
	// Index is the entry's position in the manifest.
	Index int

	// ModuleID is the entry's id, if one was present.
	ModuleID string

	// Reason describes what was wrong with the entry.
	Reason string
}

// Error implements the error interface.
func (i Issue) Error() string {
	id := i.ModuleID
	if id == "" {
		id = fmt.Sprintf("entry %d", i.Index)
	}
	return fmt.Sprintf("%s: %s", id, i.Reason)
}

// Unwrap marks every Issue as a malformed-registry condition.
func (i Issue) Unwrap() error {
	return berrors.ErrMalformedRegistry
}

// ParseResult carries the valid entries of a manifest together with the
// per-entry validation issues found alongside them.
type ParseResult struct {
	Manifest Manifest
	Issues   []Issue
}

// rawManifest mirrors the wire shape before validation.
type rawManifest struct {
	Version string       `json:"version"`
	Modules []Descriptor `json:"modules"`
}

// Parse decodes and validates raw manifest bytes.
//
// Manifests may be authored in JSON or YAML; bytes are normalized
// YAML-to-JSON first so a single decode path validates both.
//
// A broken top-level structure or unsupported schema version fails the
// whole manifest. A broken entry (missing required field, duplicate id,
// invalid version) is excluded from the result and reported as an Issue;
// the remaining entries still parse. First occurrence wins on duplicate
// ids; the duplicate is reported rather than silently dropped, since a
// silent drop would hide real authoring errors.
func Parse(data []byte) (*ParseResult, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, berrors.NewMalformedRegistryError(
			fmt.Sprintf("manifest is not valid JSON or YAML: %v", err), "", "")
	}

	var raw rawManifest
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, berrors.NewMalformedRegistryError(
			fmt.Sprintf("manifest has unexpected shape: %v", err), "", "")
	}

	if raw.Version != SupportedManifestVersion {
		return nil, berrors.NewMalformedRegistryError(
			fmt.Sprintf("unsupported registry version %q (supported: %s)", raw.Version, SupportedManifestVersion),
			"", "upgrade bashmod or fix the manifest's version field")
	}

	result := &ParseResult{
		Manifest: Manifest{Version: raw.Version},
	}

	seen := make(map[string]struct{}, len(raw.Modules))
	for idx, mod := range raw.Modules {
		if reason := validateEntry(mod); reason != "" {
			result.Issues = append(result.Issues, Issue{Index: idx, ModuleID: mod.ID, Reason: reason})
			continue
		}
		if _, dup := seen[mod.ID]; dup {
			result.Issues = append(result.Issues, Issue{Index: idx, ModuleID: mod.ID, Reason: "duplicate module id"})
			continue
		}
		seen[mod.ID] = struct{}{}
		result.Manifest.Modules = append(result.Manifest.Modules, mod)
	}

	return result, nil
}

// validateEntry returns a non-empty reason when the entry is invalid.
func validateEntry(mod Descriptor) string {
	switch {
	case mod.ID == "":
		return "missing required field: id"
	case mod.Name == "":
		return "missing required field: name"
	case mod.Version == "":
		return "missing required field: version"
	case mod.URL == "":
		return "missing required field: url"
	case mod.Category == "":
		return "missing required field: category"
	}
	if _, err := semver.Parse(mod.Version); err != nil {
		return fmt.Sprintf("invalid version %q: expected major.minor.patch", mod.Version)
	}
	return ""
}

// Merge concatenates manifests from multiple registries, in order.
// Cross-registry duplicate ids follow the same rule as within one
// manifest: first occurrence wins, the duplicate becomes an Issue.
func Merge(results ...*ParseResult) *ParseResult {
	merged := &ParseResult{
		Manifest: Manifest{Version: SupportedManifestVersion},
	}

	seen := map[string]struct{}{}
	for _, r := range results {
		if r == nil {
			continue
		}
		merged.Issues = append(merged.Issues, r.Issues...)
		for idx, mod := range r.Manifest.Modules {
			if _, dup := seen[mod.ID]; dup {
				merged.Issues = append(merged.Issues, Issue{Index: idx, ModuleID: mod.ID, Reason: "duplicate module id across registries"})
				continue
			}
			seen[mod.ID] = struct{}{}
			merged.Manifest.Modules = append(merged.Manifest.Modules, mod)
		}
	}

	return merged
}
