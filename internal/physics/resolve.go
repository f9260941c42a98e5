package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Resolver holds the tuning knobs for pairwise collision resolution.
type Resolver struct {
	// ContactTolerance suppresses angular response when the collision point
	// is this close to either centre (world units) or either body is within
	// this many degrees of a face-aligned orientation.
	ContactTolerance float64

	// FaceRelativeTolerance and FaceAbsoluteTolerance decide which axes are
	// close enough to the minimum overlap to be used for positional
	// correction instead of it.
	FaceRelativeTolerance float64
	FaceAbsoluteTolerance float64

	// SeparationRate (1/s) turns penetration depth into a minimum separation
	// speed, scaled by restitution, so resting overlaps still push apart.
	SeparationRate float64
}

// DefaultResolver returns the resolver used by RigidBody.ResolveCollision.
func DefaultResolver() Resolver {
	return Resolver{
		ContactTolerance:      0.1,
		FaceRelativeTolerance: 0.95,
		FaceAbsoluteTolerance: 0.001,
		SeparationRate:        1.0,
	}
}

// Contact describes what a resolution call did.
type Contact struct {
	Resolved bool

	Normal mgl64.Vec2 // Unit MTV axis, pointing from the other body toward this one
	Depth  float64    // MTV magnitude
	Point  mgl64.Vec2 // Estimated collision point

	CorrectionAxis mgl64.Vec2 // Axis used for positional correction
	Correction     float64    // Distance the pair was pushed apart

	Impulse float64 // Signed impulse magnitude along Normal (<= 0)
}

// ResolveCollision separates the body from other and exchanges impulse
// using DefaultResolver.
func (b *RigidBody) ResolveCollision(other *RigidBody) Contact {
	return DefaultResolver().Resolve(b, other)
}

// Resolve resolves one overlapping pair. It is a no-op for the same body
// twice, for two static bodies and for pairs that are separated or only
// touching.
func (r Resolver) Resolve(this, other *RigidBody) Contact {
	if this == other || (this.Static && other.Static) {
		return Contact{}
	}

	res := separatingAxisTest(this, other)
	depth := res.minOverlap()
	if res.separated || !(depth > 0) {
		return Contact{}
	}

	best := res.candidates[res.best]
	delta := this.Position.Sub(other.Position)
	normal := best.axis
	if normal.Dot(delta) < 0 {
		normal = normal.Mul(-1)
	}

	contact := Contact{
		Resolved: true,
		Normal:   normal,
		Depth:    depth,
		Point:    collisionPoint(this, other, best),
	}

	invA, invB := this.InverseMass(), other.InverseMass()
	invSum := invA + invB

	vAlongNormal := other.LinearVelocity.Sub(this.LinearVelocity).Dot(normal)
	restitution := math.Min(this.Restitution, other.Restitution)

	target := restitution * r.SeparationRate * depth
	if vAlongNormal > 0 {
		target = math.Max(target, restitution*vAlongNormal)
	}
	j := -(vAlongNormal + target) / invSum
	if j < 0 {
		impulse := normal.Mul(j)
		if !this.Static {
			this.LinearVelocity = this.LinearVelocity.Sub(impulse.Mul(invA))
		}
		if !other.Static {
			other.LinearVelocity = other.LinearVelocity.Add(impulse.Mul(invB))
		}
		r.applyAngularImpulse(this, other, contact.Point, impulse)
		contact.Impulse = j
	}

	axis, amount := r.correctionAxis(res, delta)
	if axis.Dot(delta) < 0 {
		axis = axis.Mul(-1)
	}
	switch {
	case this.Static:
		other.Position = other.Position.Sub(axis.Mul(amount))
	case other.Static:
		this.Position = this.Position.Add(axis.Mul(amount))
	default:
		this.Position = this.Position.Add(axis.Mul(amount * invA / invSum))
		other.Position = other.Position.Sub(axis.Mul(amount * invB / invSum))
	}
	contact.CorrectionAxis = axis
	contact.Correction = amount

	return contact
}

// correctionAxis picks the axis used to push the pair apart. Among the axes
// whose overlap is within tolerance of the minimum, the one best aligned
// with the centre-to-centre direction wins, so nearly aligned stacks pop
// out along their shared face instead of sideways.
func (r Resolver) correctionAxis(res satResult, delta mgl64.Vec2) (mgl64.Vec2, float64) {
	best := res.candidates[res.best]
	dist := delta.Len()
	if dist == 0 || r.FaceRelativeTolerance <= 0 {
		return best.axis, best.overlap
	}
	dir := delta.Mul(1 / dist)

	limit := (best.overlap + r.FaceAbsoluteTolerance) / r.FaceRelativeTolerance
	chosen := best
	alignment := math.Abs(best.axis.Dot(dir))
	for _, c := range res.candidates {
		if c.overlap > limit {
			continue
		}
		if a := math.Abs(c.axis.Dot(dir)); a > alignment {
			chosen, alignment = c, a
		}
	}
	return chosen.axis, chosen.overlap
}

// applyAngularImpulse turns the linear impulse into spin for each movable
// body, unless the contact looks face-aligned or sits on a centre.
func (r Resolver) applyAngularImpulse(this, other *RigidBody, point, impulse mgl64.Vec2) {
	leverA := point.Sub(this.Position)
	leverB := point.Sub(other.Position)
	if leverA.Len() < r.ContactTolerance || leverB.Len() < r.ContactTolerance {
		return
	}
	if r.faceAligned(this) || r.faceAligned(other) {
		return
	}

	if inertia := rectangleInertia(this.mass, this.width, this.height); !this.Static && inertia > 0 {
		this.AngularVelocity += mgl64.RadToDeg(cross2(leverA, impulse.Mul(-1)) / inertia)
	}
	if inertia := rectangleInertia(other.mass, other.width, other.height); !other.Static && inertia > 0 {
		other.AngularVelocity += mgl64.RadToDeg(cross2(leverB, impulse) / inertia)
	}
}

func (r Resolver) faceAligned(b *RigidBody) bool {
	return math.Abs(math.Remainder(b.Rotation, 90)) < r.ContactTolerance
}

// collisionPoint places the midpoint of the overlapping projection interval
// on the line through the midpoint of the two centres.
func collisionPoint(a, b *RigidBody, on axisOverlap) mgl64.Vec2 {
	mid := a.Position.Add(b.Position).Mul(0.5)
	along := (on.lo + on.hi) / 2
	return mid.Sub(on.axis.Mul(mid.Dot(on.axis))).Add(on.axis.Mul(along))
}
