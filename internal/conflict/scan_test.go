package conflict_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raremonarch/bashmod/internal/conflict"
	"github.com/raremonarch/bashmod/internal/script"
	"github.com/raremonarch/bashmod/internal/state"
)

func mod(id string, exports script.ExportSet) state.InstalledModule {
	return state.InstalledModule{
		ID:          id,
		Version:     "1.0.0",
		InstalledAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Exports:     exports,
	}
}

func TestScan_NoSharedSymbols_NoConflicts(t *testing.T) {
	installed := []state.InstalledModule{
		mod("git-helpers", script.ExportSet{Aliases: []string{"gst"}}),
		mod("docker-tools", script.ExportSet{Aliases: []string{"dps"}, Functions: []string{"dsh"}}),
		mod("net-utils", script.ExportSet{Variables: []string{"PROXY_URL"}}),
	}
	assert.Empty(t, conflict.Scan(installed))
}

func TestScan_SingleAliasCollision(t *testing.T) {
	installed := []state.InstalledModule{
		mod("git-helpers", script.ExportSet{Aliases: []string{"gst"}}),
		mod("git-shortcuts", script.ExportSet{Aliases: []string{"gst"}}),
	}

	conflicts := conflict.Scan(installed)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "gst", conflicts[0].Name)
	assert.Equal(t, conflict.KindAlias, conflicts[0].Kind)
	assert.Equal(t, []string{"git-helpers", "git-shortcuts"}, conflicts[0].Modules)
}

func TestScan_ModuleOrderFollowsInput(t *testing.T) {
	// Reversed input order must reverse the module list, not the set of
	// conflicts: the list communicates install order to the caller.
	installed := []state.InstalledModule{
		mod("git-shortcuts", script.ExportSet{Aliases: []string{"gst"}}),
		mod("git-helpers", script.ExportSet{Aliases: []string{"gst"}}),
	}

	conflicts := conflict.Scan(installed)
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"git-shortcuts", "git-helpers"}, conflicts[0].Modules)
}

func TestScan_SortedByKindThenName(t *testing.T) {
	installed := []state.InstalledModule{
		mod("one", script.ExportSet{
			Aliases:   []string{"zz", "aa"},
			Functions: []string{"deploy"},
			Variables: []string{"EDITOR"},
		}),
		mod("two", script.ExportSet{
			Aliases:   []string{"zz", "aa"},
			Functions: []string{"deploy"},
			Variables: []string{"EDITOR"},
		}),
	}

	conflicts := conflict.Scan(installed)
	require.Len(t, conflicts, 4)

	assert.Equal(t, conflict.KindAlias, conflicts[0].Kind)
	assert.Equal(t, "aa", conflicts[0].Name)
	assert.Equal(t, conflict.KindAlias, conflicts[1].Kind)
	assert.Equal(t, "zz", conflicts[1].Name)
	assert.Equal(t, conflict.KindFunction, conflicts[2].Kind)
	assert.Equal(t, "deploy", conflicts[2].Name)
	assert.Equal(t, conflict.KindVariable, conflicts[3].Kind)
	assert.Equal(t, "EDITOR", conflicts[3].Name)
}

func TestScan_SameNameDifferentKindIsNotAConflict(t *testing.T) {
	installed := []state.InstalledModule{
		mod("one", script.ExportSet{Aliases: []string{"deploy"}}),
		mod("two", script.ExportSet{Functions: []string{"deploy"}}),
	}
	assert.Empty(t, conflict.Scan(installed))
}

func TestScan_ThreeWayCollision(t *testing.T) {
	installed := []state.InstalledModule{
		mod("a", script.ExportSet{Functions: []string{"extract"}}),
		mod("b", script.ExportSet{Functions: []string{"extract"}}),
		mod("c", script.ExportSet{Functions: []string{"extract"}}),
	}

	conflicts := conflict.Scan(installed)
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"a", "b", "c"}, conflicts[0].Modules)
}

func TestScan_EmptyInput(t *testing.T) {
	assert.Empty(t, conflict.Scan(nil))
}

func TestScanWithCandidate_DoesNotMutateInput(t *testing.T) {
	installed := []state.InstalledModule{
		mod("git-helpers", script.ExportSet{Aliases: []string{"gst"}}),
	}
	candidate := mod("git-shortcuts", script.ExportSet{Aliases: []string{"gst"}})

	conflicts := conflict.ScanWithCandidate(installed, candidate)
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"git-helpers", "git-shortcuts"}, conflicts[0].Modules)

	// Input unchanged: the candidate was never appended to it.
	require.Len(t, installed, 1)
	assert.Equal(t, "git-helpers", installed[0].ID)
}

func TestScanWithCandidate_NoCollision(t *testing.T) {
	installed := []state.InstalledModule{
		mod("git-helpers", script.ExportSet{Aliases: []string{"gst"}}),
	}
	candidate := mod("net-utils", script.ExportSet{Aliases: []string{"myip"}})
	assert.Empty(t, conflict.ScanWithCandidate(installed, candidate))
}
