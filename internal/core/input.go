package core

// Action represents a semantic sandbox action, abstracted from physical key presses.
// This allows scenarios to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionPushLeft           // A, Left arrow - push selected body left
	ActionPushRight          // D, Right arrow - push selected body right
	ActionPushUp             // W, Up arrow - push selected body up
	ActionPushDown           // S, Down arrow - push selected body down
	ActionRotateCCW          // Q - spin counter-clockwise
	ActionRotateCW           // E - spin clockwise
	ActionNextBody           // Tab - select next movable body
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R key - reload the scene
	ActionQuit               // Ctrl+C - exit session
	ActionPause              // P, Space - pause/unpause
	ActionStepOnce           // N - advance one tick while paused
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPushLeft:
		return "PushLeft"
	case ActionPushRight:
		return "PushRight"
	case ActionPushUp:
		return "PushUp"
	case ActionPushDown:
		return "PushDown"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRotateCW:
		return "RotateCW"
	case ActionNextBody:
		return "NextBody"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionStepOnce:
		return "StepOnce"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one render tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
