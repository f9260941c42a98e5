// Package sim drives a set of physics bodies through fixed ticks.
// The world is an indexed arena: callers hold BodyIDs, never pointers into
// a registry owned by the physics package.
package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rigidbox/internal/physics"
)

// BodyID identifies a body inside a World. IDs are dense and stable.
type BodyID int

// ErrUnknownBody is returned for IDs that were never issued by the world.
var ErrUnknownBody = errors.New("sim: unknown body")

// StepResult summarises one World.Step call.
type StepResult struct {
	Tick      uint64
	Contacts  int      // Pairs that were resolved this tick
	Corrupted []BodyID // Bodies whose state is no longer finite
}

// World owns an ordered collection of bodies and the resolver used for them.
type World struct {
	bodies   []*physics.RigidBody
	names    []string
	resolver physics.Resolver
	logger   *log.Logger

	tick     uint64
	reported map[BodyID]bool
}

// Option configures a World.
type Option func(*World)

// WithResolver replaces the default collision resolver.
func WithResolver(r physics.Resolver) Option {
	return func(w *World) { w.resolver = r }
}

// WithLogger sets the logger used for corruption reports.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		resolver: physics.DefaultResolver(),
		logger:   log.Default().WithPrefix("sim"),
		reported: make(map[BodyID]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add appends a body and returns its ID. Names are informational and need
// not be unique.
func (w *World) Add(name string, b *physics.RigidBody) BodyID {
	w.bodies = append(w.bodies, b)
	w.names = append(w.names, name)
	return BodyID(len(w.bodies) - 1)
}

// Body returns the body for id.
func (w *World) Body(id BodyID) (*physics.RigidBody, bool) {
	if id < 0 || int(id) >= len(w.bodies) {
		return nil, false
	}
	return w.bodies[id], true
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies returns the bodies in ID order. The slice is a copy; the bodies are not.
func (w *World) Bodies() []*physics.RigidBody {
	out := make([]*physics.RigidBody, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Name returns the name given to id, or "" for unknown IDs.
func (w *World) Name(id BodyID) string {
	if id < 0 || int(id) >= len(w.names) {
		return ""
	}
	return w.names[id]
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Resolver returns the resolver used by Step and Resolve.
func (w *World) Resolver() physics.Resolver {
	return w.resolver
}

func (w *World) lookup(id BodyID) (*physics.RigidBody, error) {
	b, ok := w.Body(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	return b, nil
}

// ApplyForce accumulates a force at the centre of body id for the next step.
func (w *World) ApplyForce(id BodyID, force mgl64.Vec2) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.ApplyForce(force)
	return nil
}

// ApplyTorque accumulates torque on body id for the next step.
func (w *World) ApplyTorque(id BodyID, amount float64) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.ApplyTorque(amount)
	return nil
}

// Colliding reports whether two bodies overlap.
func (w *World) Colliding(a, b BodyID) (bool, error) {
	ba, err := w.lookup(a)
	if err != nil {
		return false, err
	}
	bb, err := w.lookup(b)
	if err != nil {
		return false, err
	}
	return ba.Colliding(bb), nil
}

// Resolve resolves a single pair with the world's resolver.
func (w *World) Resolve(a, b BodyID) (physics.Contact, error) {
	ba, err := w.lookup(a)
	if err != nil {
		return physics.Contact{}, err
	}
	bb, err := w.lookup(b)
	if err != nil {
		return physics.Contact{}, err
	}
	return w.resolver.Resolve(ba, bb), nil
}

// Step integrates every body by dt, then resolves every unordered pair
// once in index order.
func (w *World) Step(dt float64) StepResult {
	for _, b := range w.bodies {
		b.Update(dt)
	}

	var res StepResult
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			if w.resolver.Resolve(w.bodies[i], w.bodies[j]).Resolved {
				res.Contacts++
			}
		}
	}

	w.tick++
	res.Tick = w.tick

	for i, b := range w.bodies {
		if b.Finite() {
			continue
		}
		id := BodyID(i)
		res.Corrupted = append(res.Corrupted, id)
		if !w.reported[id] {
			w.reported[id] = true
			w.logger.Error("body state is not finite",
				"body", w.names[i],
				"id", i,
				"tick", w.tick,
				"position", b.Position,
				"velocity", b.LinearVelocity,
			)
		}
	}

	return res
}

// KineticEnergy returns the total linear plus rotational kinetic energy of
// all movable bodies. Angular velocity is converted to rad/s.
func (w *World) KineticEnergy() float64 {
	var total float64
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		v := b.LinearVelocity
		omega := mgl64.DegToRad(b.AngularVelocity)
		total += 0.5*b.Mass()*v.Dot(v) + 0.5*b.MomentOfInertia()*omega*omega
	}
	return total
}
