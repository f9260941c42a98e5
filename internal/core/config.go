package core

// RuntimeConfig contains configuration passed to scenarios at initialization.
// Scenarios use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Render ticks per second (default 60)
	Seed     int64 // RNG seed for seeded scenes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// SimState represents the observable status of a running scenario.
// Returned by Scenario.State() to communicate status to the platform.
type SimState struct {
	Tick      uint64  // Completed physics steps
	Bodies    int     // Number of bodies in the world
	Contacts  int     // Pairs resolved during the last tick
	Selected  int     // Index of the body receiving input, -1 if none
	Energy    float64 // Total kinetic energy
	Paused    bool    // Whether the simulation is paused
	Corrupted bool    // Whether any body has non-finite state
}

// StepResult is returned by Scenario.Step() after each render tick.
type StepResult struct {
	State SimState
}

// RunSummary aggregates a finished or interrupted run for the run log.
type RunSummary struct {
	SceneID     string
	Seed        int64
	Ticks       uint64  // Physics steps taken
	Bodies      int     // Bodies in the world at the end
	Contacts    int     // Resolved pairs over the whole run
	EnergyStart float64 // Kinetic energy after Reset
	EnergyEnd   float64 // Kinetic energy at the end
	Corrupted   bool    // Whether any body went non-finite
}
