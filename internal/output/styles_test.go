package output_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raremonarch/bashmod/internal/conflict"
	"github.com/raremonarch/bashmod/internal/output"
)

func TestStatusStyle_KnownStatuses(t *testing.T) {
	// Styles differ per status; unknown statuses fall back to unstyled.
	known := []string{
		output.StatusInstalled,
		output.StatusUpdate,
		output.StatusAvailable,
		output.StatusRemoved,
		output.StatusConflict,
		output.StatusFailed,
	}
	for _, status := range known {
		s := output.StatusStyle(status)
		assert.NotNil(t, s, "style for %q", status)
	}
}

func TestFormatModuleLine_ContainsParts(t *testing.T) {
	line := output.FormatModuleLine("git-helpers", "1.2.0", output.StatusInstalled)
	assert.Contains(t, line, "git-helpers")
	assert.Contains(t, line, "1.2.0")
	assert.Contains(t, line, "installed")
}

func TestFormatCheckmark(t *testing.T) {
	msg := output.FormatCheckmark("no conflicts detected")
	assert.Contains(t, msg, "no conflicts detected")
}

func TestRenderConflictTable(t *testing.T) {
	conflicts := []conflict.Conflict{
		{Name: "gst", Kind: conflict.KindAlias, Modules: []string{"git-helpers", "git-shortcuts"}},
	}
	rendered := output.RenderConflictTable(conflicts)
	assert.Contains(t, rendered, "gst")
	assert.Contains(t, rendered, "alias")
	assert.Contains(t, rendered, "git-helpers, git-shortcuts")
}

func TestRenderModuleTable(t *testing.T) {
	rows := []output.ModuleRow{
		{ID: "net-utils", Version: "2.0.0", Category: "network", Status: "available", Description: "Networking helpers"},
	}
	rendered := output.RenderModuleTable(rows)
	for _, want := range []string{"net-utils", "2.0.0", "network", "Networking helpers"} {
		assert.True(t, strings.Contains(rendered, want), "table should contain %q", want)
	}
}
