package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rigidbox/internal/core"
)

// KeyMap holds the sandbox key bindings. It implements help.KeyMap.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	SpinCCW  key.Binding
	SpinCW   key.Binding
	Next     key.Binding
	Pause    key.Binding
	StepOnce key.Binding
	Restart  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.SpinCCW, k.Next, k.Pause, k.StepOnce, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.SpinCCW, k.SpinCW, k.Next},
		{k.Pause, k.StepOnce, k.Restart},
		{k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default sandbox bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("wasd/arrows", "push"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "push right"),
		),
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/up", "push up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "push down"),
		),
		SpinCCW: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q/e", "spin"),
		),
		SpinCW: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "spin clockwise"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next body"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		StepOnce: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to sandbox actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultKeyMap()}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionPushLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionPushRight, false
	case key.Matches(msg, k.Up):
		return core.ActionPushUp, false
	case key.Matches(msg, k.Down):
		return core.ActionPushDown, false
	case key.Matches(msg, k.SpinCCW):
		return core.ActionRotateCCW, false
	case key.Matches(msg, k.SpinCW):
		return core.ActionRotateCW, false
	case key.Matches(msg, k.Next):
		return core.ActionNextBody, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.StepOnce):
		return core.ActionStepOnce, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}

	return MenuActionNone
}
