package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/raremonarch/bashmod/internal/conflict"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// ModuleRow is one row of the module listing table.
type ModuleRow struct {
	ID          string
	Version     string
	Category    string
	Status      string
	Description string
}

// RenderModuleTable renders the module listing table.
func RenderModuleTable(rows []ModuleRow) string {
	t := NewTable("ID", "VERSION", "CATEGORY", "STATUS", "DESCRIPTION")
	for _, r := range rows {
		t.Row(r.ID, r.Version, r.Category, r.Status, r.Description)
	}
	return t.String()
}

// RenderConflictTable renders a conflict list as a table.
func RenderConflictTable(conflicts []conflict.Conflict) string {
	t := NewTable("KIND", "SYMBOL", "MODULES")
	for _, c := range conflicts {
		t.Row(string(c.Kind), c.Name, strings.Join(c.Modules, ", "))
	}
	return t.String()
}
