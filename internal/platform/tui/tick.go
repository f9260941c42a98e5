// Package tui provides the Bubble Tea integration for the sandbox viewer.
// It handles the terminal UI loop, input mapping, and scenario orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a render tick. Its timestamp is used to
// measure the real frame time.
type TickMsg struct {
	ID   int64 // Model that scheduled the tick
	Time time.Time
}

var lastModelID atomic.Int64

// nextModelID returns a fresh ID for a model's tick loop. A model ignores
// ticks scheduled by earlier models it replaced.
func nextModelID() int64 {
	return lastModelID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

// frameDelta returns seconds between two ticks, or 0 for the first tick.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	return now.Sub(prev).Seconds()
}
