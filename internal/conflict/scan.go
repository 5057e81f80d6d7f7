// Package conflict computes cross-module symbol collisions: two or more
// installed modules defining the same alias, function, or exported
// variable name.
//
// The engine is read-only over the installed state and never resolves
// anything: which module "wins" at shell start-up is a user decision.
// Conflict module lists preserve the order modules appear in the input,
// so a caller that passes install order gets install order back.
package conflict

import (
	"sort"

	"github.com/raremonarch/bashmod/internal/state"
)

// Kind is the symbol kind a conflict is about.
type Kind string

// Symbol kinds, in report order.
const (
	KindAlias    Kind = "alias"
	KindFunction Kind = "function"
	KindVariable Kind = "variable"
)

// Conflict is one colliding symbol and the modules that define it.
// Derived on demand, never stored.
type Conflict struct {
	// Name is the colliding symbol name.
	Name string

	// Kind is the symbol kind.
	Kind Kind

	// Modules lists the ids of the modules defining the symbol, in the
	// order they appeared in the scan input. Always at least two.
	Modules []string
}

// Scan computes all symbol collisions across the given modules.
//
// Results are sorted by (kind, name) ascending so output is
// deterministic regardless of input order; only the module list inside
// each Conflict reflects input order.
func Scan(installed []state.InstalledModule) []Conflict {
	aliases := map[string][]string{}
	functions := map[string][]string{}
	variables := map[string][]string{}

	for _, mod := range installed {
		for _, name := range mod.Exports.Aliases {
			aliases[name] = append(aliases[name], mod.ID)
		}
		for _, name := range mod.Exports.Functions {
			functions[name] = append(functions[name], mod.ID)
		}
		for _, name := range mod.Exports.Variables {
			variables[name] = append(variables[name], mod.ID)
		}
	}

	var conflicts []Conflict
	conflicts = appendConflicts(conflicts, KindAlias, aliases)
	conflicts = appendConflicts(conflicts, KindFunction, functions)
	conflicts = appendConflicts(conflicts, KindVariable, variables)

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Kind != conflicts[j].Kind {
			return conflicts[i].Kind < conflicts[j].Kind
		}
		return conflicts[i].Name < conflicts[j].Name
	})
	return conflicts
}

// ScanWithCandidate scans the installed set plus one module that is not
// installed yet, for pre-install conflict preview. The input slice and
// the store behind it are not mutated.
func ScanWithCandidate(installed []state.InstalledModule, candidate state.InstalledModule) []Conflict {
	combined := make([]state.InstalledModule, 0, len(installed)+1)
	combined = append(combined, installed...)
	combined = append(combined, candidate)
	return Scan(combined)
}

func appendConflicts(conflicts []Conflict, kind Kind, symbols map[string][]string) []Conflict {
	for name, moduleIDs := range symbols {
		if len(moduleIDs) < 2 {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Name:    name,
			Kind:    kind,
			Modules: moduleIDs,
		})
	}
	return conflicts
}
