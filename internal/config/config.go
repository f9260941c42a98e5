// Package config provides YAML-based simulation configuration and scene
// loading for rigidbox.
package config

// Vec is a 2D vector in YAML form.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SimConfig contains all tunables for running a simulation.
type SimConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Timing  TimingConfig  `yaml:"timing"`
	View    ViewConfig    `yaml:"view"`
}

// PhysicsConfig defines body defaults and resolver knobs.
type PhysicsConfig struct {
	Gravity     Vec     `yaml:"gravity"`
	Restitution float64 `yaml:"restitution"`

	ContactTolerance      float64 `yaml:"contact_tolerance"`
	FaceRelativeTolerance float64 `yaml:"face_relative_tolerance"`
	FaceAbsoluteTolerance float64 `yaml:"face_absolute_tolerance"`
	SeparationRate        float64 `yaml:"separation_rate"`
}

// TimingConfig defines how wall-clock frames map to simulation steps.
type TimingConfig struct {
	TickRate      int     `yaml:"tick_rate"`   // Render ticks per second
	Substeps      int     `yaml:"substeps"`    // Physics steps per render tick
	FallbackDelta float64 `yaml:"fallback_dt"` // Used when a measured dt is unusable
	MaxDelta      float64 `yaml:"max_dt"`      // Upper clamp for a single step
}

// ViewConfig defines the world-to-terminal camera.
type ViewConfig struct {
	UnitsPerCell float64 `yaml:"units_per_cell"` // World units covered by one cell horizontally
	CellAspect   float64 `yaml:"cell_aspect"`    // Cell height divided by cell width
	ShowHUD      bool    `yaml:"show_hud"`
}

// SceneFile is the YAML layout of a scene.
type SceneFile struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	Gravity     *Vec        `yaml:"gravity,omitempty"` // Overrides the physics default
	Camera      CameraSpec  `yaml:"camera,omitempty"`
	Bodies      []BodySpec  `yaml:"bodies"`
	Rain        *RainSpec   `yaml:"rain,omitempty"`
	Metadata    SceneExtras `yaml:"metadata,omitempty"`
}

// SceneExtras holds free-form scene annotations.
type SceneExtras map[string]string

// CameraSpec positions the view over the world.
type CameraSpec struct {
	Center       Vec     `yaml:"center"`
	UnitsPerCell float64 `yaml:"units_per_cell,omitempty"` // 0 keeps the config default
}

// BodySpec describes a single rectangle.
type BodySpec struct {
	Name            string   `yaml:"name"`
	Position        Vec      `yaml:"position"`
	Rotation        float64  `yaml:"rotation"`
	Width           float64  `yaml:"width"`
	Height          float64  `yaml:"height"`
	Mass            float64  `yaml:"mass"`
	Static          bool     `yaml:"static,omitempty"`
	Restitution     *float64 `yaml:"restitution,omitempty"`
	Velocity        Vec      `yaml:"velocity,omitempty"`
	AngularVelocity float64  `yaml:"angular_velocity,omitempty"`
	Color           string   `yaml:"color,omitempty"`
}

// RainSpec spawns seeded random boxes above the scene.
type RainSpec struct {
	Count     int     `yaml:"count"`
	MinX      float64 `yaml:"min_x"`
	MaxX      float64 `yaml:"max_x"`
	MinY      float64 `yaml:"min_y"`
	MaxY      float64 `yaml:"max_y"`
	MinSize   float64 `yaml:"min_size"`
	MaxSize   float64 `yaml:"max_size"`
	MinMass   float64 `yaml:"min_mass"`
	MaxMass   float64 `yaml:"max_mass"`
	MaxRotate float64 `yaml:"max_rotate"` // Degrees either side of zero
}

// Preset represents a named timing precision level.
type Preset string

const (
	PresetCoarse  Preset = "coarse"
	PresetNormal  Preset = "normal"
	PresetPrecise Preset = "precise"
)

// ParsePreset maps a CLI value to a Preset. Unknown values yield "".
func ParsePreset(s string) Preset {
	switch Preset(s) {
	case PresetCoarse, PresetNormal, PresetPrecise:
		return Preset(s)
	default:
		return ""
	}
}

// SubstepsForPreset returns the physics substeps per tick for a preset.
func SubstepsForPreset(p Preset) int {
	switch p {
	case PresetCoarse:
		return 2
	case PresetPrecise:
		return 16
	default:
		return 8
	}
}
