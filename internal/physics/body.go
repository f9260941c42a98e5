// Package physics implements a small 2D rigid-body core for oriented
// rectangles: explicit-Euler integration, SAT collision detection and
// impulse-based pairwise resolution.
// It holds no registry of bodies; callers own and iterate their own
// collection (see package sim).
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default body parameters.
const (
	DefaultRestitution = 0.5
	AngularDamping     = 0.98 // Applied to angular velocity every update
)

// DefaultGravity is the gravity applied to new bodies (cm/s² scale).
var DefaultGravity = mgl64.Vec2{0, -981}

var (
	// ErrInvalidMass is returned when a body is built with a mass that is
	// not a finite value greater than zero.
	ErrInvalidMass = errors.New("physics: mass must be finite and greater than zero")

	// ErrInvalidSize is returned for negative or non-finite extents.
	ErrInvalidSize = errors.New("physics: width and height must be finite and non-negative")
)

// RigidBody is a single oriented rectangle with mass and motion state.
type RigidBody struct {
	Position mgl64.Vec2 // Centre of mass in world space
	Rotation float64    // Orientation in degrees, counter-clockwise

	LinearVelocity  mgl64.Vec2
	AngularVelocity float64 // Degrees per second

	Restitution float64 // Bounciness in [0,1]
	Static      bool    // Static bodies are never moved by Update or resolution
	Gravity     mgl64.Vec2

	width, height   float64
	mass            float64
	momentOfInertia float64

	force  mgl64.Vec2
	torque float64
}

// NewRigidBody creates a body with the given pose, extents and mass.
// Extents are fixed for the lifetime of the body.
func NewRigidBody(position mgl64.Vec2, rotation, width, height, mass float64) (*RigidBody, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	if !validExtent(width) || !validExtent(height) {
		return nil, fmt.Errorf("%w: got %vx%v", ErrInvalidSize, width, height)
	}

	return &RigidBody{
		Position:        position,
		Rotation:        rotation,
		Restitution:     DefaultRestitution,
		Gravity:         DefaultGravity,
		width:           width,
		height:          height,
		mass:            mass,
		momentOfInertia: rectangleInertia(mass, width, height),
	}, nil
}

func validExtent(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// rectangleInertia is the moment of inertia of a solid rectangle about its centroid.
func rectangleInertia(mass, width, height float64) float64 {
	return mass * (width*width + height*height) / 12.0
}

// Width returns the rectangle width.
func (b *RigidBody) Width() float64 { return b.width }

// Height returns the rectangle height.
func (b *RigidBody) Height() float64 { return b.height }

// Mass returns the body mass.
func (b *RigidBody) Mass() float64 { return b.mass }

// InverseMass returns 1/mass, or 0 for static bodies.
func (b *RigidBody) InverseMass() float64 {
	if b.Static {
		return 0
	}
	return 1 / b.mass
}

// MomentOfInertia returns the inertia computed at construction.
func (b *RigidBody) MomentOfInertia() float64 { return b.momentOfInertia }

// Force returns the force accumulated since the last Update.
func (b *RigidBody) Force() mgl64.Vec2 { return b.force }

// Torque returns the torque accumulated since the last Update.
func (b *RigidBody) Torque() float64 { return b.torque }

// Finite reports whether every pose and velocity component is a finite number.
func (b *RigidBody) Finite() bool {
	for _, v := range [...]float64{
		b.Position.X(), b.Position.Y(), b.Rotation,
		b.LinearVelocity.X(), b.LinearVelocity.Y(), b.AngularVelocity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
