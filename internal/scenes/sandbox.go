// Package scenes provides the sandbox scenario that runs YAML scenes on
// top of the physics world, plus the built-in scene registrations.
package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rigidbox/internal/config"
	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/sim"
)

// Input response tuning.
const (
	PushSpeed = 120.0 // Velocity change (units/s) per push key press
	SpinSpeed = 90.0  // Angular velocity change (deg/s) per spin key press
)

// Sandbox runs one scene and lets the user push bodies around.
type Sandbox struct {
	scene   config.SceneFile
	cfg     config.SimConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	world    *sim.World
	colors   []core.Color
	movable  []sim.BodyID
	selected int // Index into movable

	paused  bool
	state   core.SimState
	summary core.RunSummary
}

// NewSandbox creates a sandbox for the scene. Call Reset before stepping.
func NewSandbox(scene config.SceneFile, cfg config.SimConfig) *Sandbox {
	s := &Sandbox{
		scene:  scene,
		cfg:    cfg,
		logger: log.Default().WithPrefix("scene"),
	}
	s.Reset(core.DefaultConfig())
	return s
}

// ID returns the scene ID.
func (s *Sandbox) ID() string { return s.scene.ID }

// Title returns the scene title.
func (s *Sandbox) Title() string {
	if s.scene.Title == "" {
		return s.scene.ID
	}
	return s.scene.Title
}

// World returns the underlying world.
func (s *Sandbox) World() *sim.World { return s.world }

// Scene returns the scene definition the sandbox was built from.
func (s *Sandbox) Scene() config.SceneFile { return s.scene }

// Reset rebuilds the world from the scene definition.
func (s *Sandbox) Reset(rc core.RuntimeConfig) {
	s.runtime = rc
	s.world, s.colors = buildWorld(s.scene, s.cfg, rc.Seed, s.logger)

	s.movable = s.movable[:0]
	for i, b := range s.world.Bodies() {
		if !b.Static {
			s.movable = append(s.movable, sim.BodyID(i))
		}
	}
	s.selected = 0
	s.paused = false

	energy := s.world.KineticEnergy()
	s.summary = core.RunSummary{
		SceneID:     s.scene.ID,
		Seed:        rc.Seed,
		Bodies:      s.world.Len(),
		EnergyStart: energy,
		EnergyEnd:   energy,
	}
	s.refreshState(0)
}

// Selected returns the body receiving input, if any.
func (s *Sandbox) Selected() (sim.BodyID, bool) {
	if len(s.movable) == 0 {
		return -1, false
	}
	return s.movable[s.selected], true
}

// Step handles input and advances the world by dt seconds split into
// the configured number of substeps.
func (s *Sandbox) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionRestart) {
		s.Reset(s.runtime)
		return core.StepResult{State: s.state}
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionNextBody) && len(s.movable) > 0 {
		s.selected = (s.selected + 1) % len(s.movable)
	}

	if s.paused && !in.Has(core.ActionStepOnce) {
		s.refreshState(s.state.Contacts)
		return core.StepResult{State: s.state}
	}

	substeps := core.Max(s.cfg.Timing.Substeps, 1)
	stepDt := sim.ClampDelta(dt/float64(substeps), s.cfg.Timing.FallbackDelta, s.cfg.Timing.MaxDelta)
	frame := stepDt * float64(substeps)

	force, torque := s.inputForces(in, frame)
	id, hasSelection := s.Selected()

	contacts := 0
	for i := 0; i < substeps; i++ {
		if hasSelection {
			//nolint:errcheck // id comes from the world itself
			s.world.ApplyForce(id, force)
			//nolint:errcheck // id comes from the world itself
			s.world.ApplyTorque(id, torque)
		}
		res := s.world.Step(stepDt)
		contacts += res.Contacts
		if len(res.Corrupted) > 0 {
			s.summary.Corrupted = true
		}
	}

	s.summary.Contacts += contacts
	s.refreshState(contacts)
	return core.StepResult{State: s.state}
}

// inputForces converts push and spin actions into a force and torque that,
// held for the whole frame, change the selected body's velocity by
// PushSpeed and its spin by roughly SpinSpeed.
func (s *Sandbox) inputForces(in core.InputFrame, frame float64) (mgl64.Vec2, float64) {
	id, ok := s.Selected()
	if !ok || frame <= 0 {
		return mgl64.Vec2{}, 0
	}
	b, _ := s.world.Body(id)

	var dir mgl64.Vec2
	if in.Has(core.ActionPushLeft) {
		dir = dir.Add(mgl64.Vec2{-1, 0})
	}
	if in.Has(core.ActionPushRight) {
		dir = dir.Add(mgl64.Vec2{1, 0})
	}
	if in.Has(core.ActionPushUp) {
		dir = dir.Add(mgl64.Vec2{0, 1})
	}
	if in.Has(core.ActionPushDown) {
		dir = dir.Add(mgl64.Vec2{0, -1})
	}

	var spin float64
	if in.Has(core.ActionRotateCCW) {
		spin += SpinSpeed
	}
	if in.Has(core.ActionRotateCW) {
		spin -= SpinSpeed
	}

	force := dir.Mul(b.Mass() * PushSpeed / frame)
	torque := b.MomentOfInertia() * mgl64.DegToRad(spin) / frame
	return force, torque
}

func (s *Sandbox) refreshState(contacts int) {
	selected := -1
	if id, ok := s.Selected(); ok {
		selected = int(id)
	}
	energy := s.world.KineticEnergy()

	s.summary.Ticks = s.world.Tick()
	s.summary.Bodies = s.world.Len()
	s.summary.EnergyEnd = energy

	s.state = core.SimState{
		Tick:      s.world.Tick(),
		Bodies:    s.world.Len(),
		Contacts:  contacts,
		Selected:  selected,
		Energy:    energy,
		Paused:    s.paused,
		Corrupted: s.summary.Corrupted,
	}
}

// State returns the current simulation status.
func (s *Sandbox) State() core.SimState { return s.state }

// Summary returns the run aggregate since the last Reset.
func (s *Sandbox) Summary() core.RunSummary { return s.summary }

// Camera returns the camera used to render onto a screen of the given size.
func (s *Sandbox) Camera(w, h int) Camera {
	upc := s.cfg.View.UnitsPerCell
	if s.scene.Camera.UnitsPerCell > 0 {
		upc = s.scene.Camera.UnitsPerCell
	}
	if upc <= 0 {
		upc = 10
	}
	aspect := s.cfg.View.CellAspect
	if aspect <= 0 {
		aspect = 2
	}
	return Camera{
		Center:       vec(s.scene.Camera.Center),
		UnitsPerCell: upc,
		Aspect:       aspect,
		W:            w,
		H:            h,
	}
}

// Render draws every body, then the HUD on top.
func (s *Sandbox) Render(dst *core.Screen) {
	dst.Clear()
	cam := s.Camera(dst.Width(), dst.Height())
	selected, _ := s.Selected()

	for i, b := range s.world.Bodies() {
		glyph := DynamicGlyph
		switch {
		case b.Static:
			glyph = StaticGlyph
		case sim.BodyID(i) == selected:
			glyph = SelectedGlyph
		}
		drawBody(dst, cam, b, glyph, s.colors[i])
	}

	if !s.cfg.View.ShowHUD {
		return
	}

	hud := fmt.Sprintf(" %s  t=%d  bodies=%d  contacts=%d  KE=%.0f ",
		s.Title(), s.state.Tick, s.state.Bodies, s.state.Contacts, s.state.Energy)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	if s.state.Selected >= 0 {
		sel := fmt.Sprintf(" selected: %s ", s.world.Name(sim.BodyID(s.state.Selected)))
		dst.DrawTextColor(0, 1, sel, core.ColorGray)
	}

	switch {
	case s.state.Corrupted:
		dst.DrawTextColor(0, dst.Height()-1, " simulation diverged: press R to reload ", core.ColorBrightRed)
	case s.paused:
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	}
}
