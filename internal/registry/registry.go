// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/sim"
)

// ErrUnknownScenario is returned by Create for IDs that were never registered.
var ErrUnknownScenario = errors.New("registry: unknown scenario")

// Scenario is the interface every runnable simulation implements.
// Scenarios contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Scenario interface {
	// ID returns a unique identifier (e.g., "drop", "stack").
	// Used for CLI commands and the run log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds the world from scratch.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by dt seconds of wall time.
	// Input is abstracted to platform-level actions (push, spin, pause).
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render clears the screen buffer and draws the current world into it.
	Render(dst *core.Screen)

	// State returns the current simulation status.
	State() core.SimState

	// Summary returns the aggregate of the run since the last Reset.
	Summary() core.RunSummary

	// World exposes the underlying body arena.
	World() *sim.World
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scenario by its ID.
// Returns an error wrapping ErrUnknownScenario if the ID is not registered.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScenario, id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
