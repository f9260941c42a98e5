package config

import "embed"

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

//go:embed scenes/*.yaml
var builtinScenes embed.FS

// DefaultSimConfig returns the hardcoded simulation configuration.
// It mirrors defaults/sim.yaml.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Physics: PhysicsConfig{
			Gravity:               Vec{X: 0, Y: -981},
			Restitution:           0.5,
			ContactTolerance:      0.1,
			FaceRelativeTolerance: 0.95,
			FaceAbsoluteTolerance: 0.001,
			SeparationRate:        1.0,
		},
		Timing: TimingConfig{
			TickRate:      60,
			Substeps:      8,
			FallbackDelta: 1.0 / 500.0,
			MaxDelta:      0.02,
		},
		View: ViewConfig{
			UnitsPerCell: 10,
			CellAspect:   2,
			ShowHUD:      true,
		},
	}
}

// GetDefaultYAML returns the embedded default simulation YAML.
func GetDefaultYAML() []byte {
	return defaultSimYAML
}
