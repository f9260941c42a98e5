package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/registry"
	"github.com/vovakirdan/rigidbox/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for watching and poking a scenario.
type Model struct {
	id         int64
	scenario   registry.Scenario
	screen     *core.Screen
	store      *storage.Store
	source     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	help       help.Model
	state      core.SimState
	lastTick   time.Time
	started    time.Time
	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
	runSaved   *bool // Shared across value copies so a run is logged once
}

// NewModel creates a new Bubble Tea model for the given scenario.
// source tags the run in the run log.
func NewModel(scenario registry.Scenario, store *storage.Store, cfg core.RuntimeConfig, source string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		id:         nextModelID(),
		scenario:   scenario,
		screen:     core.NewScreen(cfg.ScreenW, viewportHeight(cfg.ScreenH)),
		store:      store,
		source:     source,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		started:    time.Now(),
		runSaved:   new(bool),
	}
}

// viewportHeight leaves the last terminal row for the help bar.
func viewportHeight(h int) int {
	return core.Max(h-1, 1)
}

// Init resets the scenario and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scenario.Reset(m.config)
	return tickCmd(m.id, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, viewportHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.saveRun()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick advances the scenario by the measured frame time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	dt := frameDelta(m.lastTick, now)
	if dt <= 0 {
		dt = 1 / float64(core.Max(m.config.TickRate, 1))
	}
	m.lastTick = now

	if m.inputFrame.Has(core.ActionRestart) {
		// A reload starts a new run; log the old one first.
		m.saveRun()
		*m.runSaved = false
		m.started = now
	}

	result := m.scenario.Step(m.inputFrame, dt)
	if result.State.Corrupted && !m.state.Corrupted {
		log.Warn("simulation diverged", "scene", m.scenario.ID(), "tick", result.State.Tick)
	}
	m.state = result.State

	m.inputFrame.Clear()
	return m, tickCmd(m.id, m.config.TickRate)
}

// saveRun appends the current run to the run log once.
func (m Model) saveRun() {
	if m.store == nil || *m.runSaved {
		return
	}
	summary := m.scenario.Summary()
	if summary.Ticks == 0 {
		return
	}
	if _, err := m.store.SaveRun(m.source, summary, time.Since(m.started)); err != nil {
		log.Warn("could not save run", "scene", summary.SceneID, "error", err)
		return
	}
	*m.runSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scenario.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rigidbox", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.scenario.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, simulation continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scenario.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// State returns the last observed simulation state.
func (m Model) State() core.SimState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given scenario.
func Run(scenario registry.Scenario, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(scenario, store, cfg, storage.SourceTUI)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
