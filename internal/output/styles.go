package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module ids, symbol names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "installed" module status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "update available" module status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "removed" module status.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "conflict" and "failed" statuses.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (module ids, symbol names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (installing, removing, refreshing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (separators, timestamps, versions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Module status constants.
const (
	StatusInstalled = "installed"
	StatusUpdate    = "update available"
	StatusAvailable = "available"
	StatusRemoved   = "removed"
	StatusConflict  = "conflict"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a given module status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusInstalled:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusUpdate:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusAvailable:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusConflict, StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth is the minimum width for the module id column
// before the status suffix, so status words align consistently.
const minModuleColumnWidth = 32

// FormatModuleLine renders a module id and version with a right-aligned,
// color-coded status suffix.
//
// Format: m:<id> <version>  <status>
func FormatModuleLine(id, version, status string) string {
	path := fmt.Sprintf("%s %s", id, version)

	padding := minModuleColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("m:")
	styledID := StyleNoun.Render(id)
	styledVersion := StyleDim.Render(version)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledID + " " + styledVersion + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
