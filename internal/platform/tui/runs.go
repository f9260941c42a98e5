package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/registry"
	"github.com/vovakirdan/rigidbox/internal/storage"
)

// Run board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show scene list sidebar
	sidebarWidth       = 20  // Width of scene list sidebar
	maxRuns            = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the run board.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing the run log.
type RunsModel struct {
	scenes      []registry.Info
	sceneCursor int
	store       *storage.Store
	runs        []storage.RunEntry
	stats       *storage.SceneStats
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a new run board model.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		scenes:      registry.List(),
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.scenes) > 0 {
		m.loadRuns(m.scenes[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Source", Width: 9},
		{Title: "Ticks", Width: 8},
		{Title: "Contacts", Width: 9},
		{Title: "KE", Width: 16},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the run log for the given scene.
func (m *RunsModel) loadRuns(sceneID string) {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(sceneID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.SceneStats(sceneID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		source := r.Source
		if r.Corrupted {
			source += "!"
		}
		rows[i] = table.Row{
			source,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Contacts),
			fmt.Sprintf("%.0f>%.0f", r.EnergyStart, r.EnergyEnd),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run board model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.sceneCursor = (m.sceneCursor + 1) % len(m.scenes)
				m.loadRuns(m.scenes[m.sceneCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.sceneCursor--
				if m.sceneCursor < 0 {
					m.sceneCursor = len(m.scenes) - 1
				}
				m.loadRuns(m.scenes[m.sceneCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run board.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUNS"
	if len(m.scenes) > 0 {
		title = fmt.Sprintf("RUNS - %s", m.scenes[m.sceneCursor].Title)
	}
	b.WriteString(menuTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunsModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  %d ticks  %d contacts  %d diverged",
		m.stats.Runs, m.stats.TotalTicks, m.stats.TotalContacts, m.stats.Corrupted)
}

// renderWideLayout renders the board with a sidebar for scene selection.
func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.sceneCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := s.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows only the current scene above the table.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.scenes) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.scenes[m.sceneCursor].ID), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nWatch a scene to log one.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the run board.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRunsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
