// Package tui provides the interactive module browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/raremonarch/bashmod/internal/conflict"
	"github.com/raremonarch/bashmod/internal/registry"
)

// Actions are the operations the browser can trigger. Each callback
// runs on a background goroutine driven by bubbletea; implementations
// do their own fetching and state updates.
type Actions struct {
	// Install installs the module and returns the conflicts involving it.
	Install func(id string) ([]conflict.Conflict, error)

	// Uninstall removes the module.
	Uninstall func(id string) error

	// Refresh re-fetches the registry listing and the installed map.
	Refresh func() ([]registry.Descriptor, map[string]string, error)

	// Conflicts scans the installed modules for symbol collisions.
	Conflicts func() []conflict.Conflict
}

// Options configures the browser.
type Options struct {
	// Modules is the registry listing to browse.
	Modules []registry.Descriptor

	// Installed maps installed module ids to their installed version.
	Installed map[string]string

	// Actions provide install and uninstall behavior.
	Actions Actions
}

// moduleItem implements list.Item for one registry module.
type moduleItem struct {
	desc      registry.Descriptor
	installed string
}

func (i moduleItem) Title() string {
	if i.installed != "" {
		return fmt.Sprintf("%s (installed %s)", i.desc.ID, i.installed)
	}
	return i.desc.ID
}

func (i moduleItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.desc.Version, i.desc.Category, i.desc.Description)
}

func (i moduleItem) FilterValue() string {
	return i.desc.ID + " " + i.desc.Name + " " + i.desc.Category
}

// actionDoneMsg reports the outcome of an install or uninstall.
type actionDoneMsg struct {
	id        string
	installed bool
	conflicts []conflict.Conflict
	err       error
}

// refreshDoneMsg carries a re-fetched registry listing.
type refreshDoneMsg struct {
	modules   []registry.Descriptor
	installed map[string]string
	err       error
}

type browserModel struct {
	list    list.Model
	actions Actions
	status  string
	busy    bool

	// showConflicts switches the view to the conflict report.
	showConflicts bool
	conflicts     []conflict.Conflict
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Never intercept keys while the user is typing a filter query.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.showConflicts {
				m.showConflicts = false
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.showConflicts {
				m.showConflicts = false
				return m, nil
			}
		case "i":
			return m.startAction(true)
		case "u":
			return m.startAction(false)
		case "r":
			return m.startRefresh()
		case "c":
			if m.actions.Conflicts != nil {
				m.conflicts = m.actions.Conflicts()
				m.showConflicts = true
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
	case actionDoneMsg:
		m.busy = false
		m = m.applyResult(msg)
	case refreshDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("refresh failed: %v", msg.err)
			break
		}
		items := make([]list.Item, len(msg.modules))
		for i, desc := range msg.modules {
			items[i] = moduleItem{desc: desc, installed: msg.installed[desc.ID]}
		}
		m.status = fmt.Sprintf("refreshed, %d modules", len(items))
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) startAction(install bool) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	item, ok := m.list.SelectedItem().(moduleItem)
	if !ok {
		return m, nil
	}

	m.busy = true
	id := item.desc.ID
	if install {
		m.status = "installing " + id + "..."
		return m, func() tea.Msg {
			conflicts, err := m.actions.Install(id)
			return actionDoneMsg{id: id, installed: true, conflicts: conflicts, err: err}
		}
	}

	m.status = "removing " + id + "..."
	return m, func() tea.Msg {
		err := m.actions.Uninstall(id)
		return actionDoneMsg{id: id, installed: false, err: err}
	}
}

func (m browserModel) startRefresh() (tea.Model, tea.Cmd) {
	if m.busy || m.actions.Refresh == nil {
		return m, nil
	}
	m.busy = true
	m.status = "refreshing..."
	return m, func() tea.Msg {
		modules, installed, err := m.actions.Refresh()
		return refreshDoneMsg{modules: modules, installed: installed, err: err}
	}
}

func (m browserModel) applyResult(msg actionDoneMsg) browserModel {
	if msg.err != nil {
		m.status = fmt.Sprintf("%s: %v", msg.id, msg.err)
		return m
	}

	if msg.installed {
		m.status = msg.id + " installed"
		if n := len(msg.conflicts); n > 0 {
			m.status = fmt.Sprintf("%s installed, %d conflicts (run 'bashmod conflicts')", msg.id, n)
		}
	} else {
		m.status = msg.id + " removed"
	}

	// Refresh the installed marker on the affected row.
	for idx, it := range m.list.Items() {
		item, ok := it.(moduleItem)
		if !ok || item.desc.ID != msg.id {
			continue
		}
		if msg.installed {
			item.installed = item.desc.Version
		} else {
			item.installed = ""
		}
		m.list.SetItem(idx, item)
	}
	return m
}

func (m browserModel) View() string {
	if m.showConflicts {
		return m.conflictView()
	}
	view := m.list.View()
	if m.status != "" {
		view += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}
	return view
}

func (m browserModel) conflictView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Symbol conflicts")
	if len(m.conflicts) == 0 {
		return title + "\n\n  none\n\n" + lipgloss.NewStyle().Faint(true).Render("esc to go back")
	}

	lines := make([]string, 0, len(m.conflicts)+3)
	lines = append(lines, title, "")
	for _, c := range m.conflicts {
		lines = append(lines, fmt.Sprintf("  %-8s %-20s %s", c.Kind, c.Name, strings.Join(c.Modules, ", ")))
	}
	lines = append(lines, "", lipgloss.NewStyle().Faint(true).Render("esc to go back"))
	return strings.Join(lines, "\n")
}

// browseHelpKeys lists the browser's extra key bindings in the help bar.
func browseHelpKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "uninstall")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "conflicts")),
	}
}

// newBrowserModel builds the list model from options.
func newBrowserModel(opts Options) browserModel {
	items := make([]list.Item, len(opts.Modules))
	for i, desc := range opts.Modules {
		items[i] = moduleItem{desc: desc, installed: opts.Installed[desc.ID]}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 80, 20)
	l.Title = "bashmod modules"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	l.AdditionalShortHelpKeys = browseHelpKeys
	l.AdditionalFullHelpKeys = browseHelpKeys

	return browserModel{list: l, actions: opts.Actions}
}

// Run starts the interactive browser and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(newBrowserModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
