package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// axisOverlap is one candidate axis with the separation distance needed
// to push the two projections apart along it.
type axisOverlap struct {
	axis    mgl64.Vec2
	overlap float64
	lo, hi  float64 // Overlapping part of the two projections
}

// satResult is the outcome of a full separating axis test.
type satResult struct {
	separated  bool
	candidates []axisOverlap
	best       int // Index into candidates of the smallest overlap
}

func (r satResult) minOverlap() float64 {
	if r.separated || len(r.candidates) == 0 {
		return 0
	}
	return r.candidates[r.best].overlap
}

// separatingAxisTest projects both bodies on every candidate axis.
// It stops at the first separating axis. Ties on the smallest overlap keep
// the earliest axis in enumeration order.
func separatingAxisTest(a, b *RigidBody) satResult {
	axes := Axes(a, b)
	if len(axes) == 0 {
		// Both bodies are points; there is no well-defined contact.
		return satResult{separated: true}
	}

	res := satResult{candidates: make([]axisOverlap, 0, len(axes))}
	for _, axis := range axes {
		minA, maxA := projectBody(a, axis)
		minB, maxB := projectBody(b, axis)
		if !IntervalsOverlap(minA, maxA, minB, maxB) {
			return satResult{separated: true}
		}

		overlap := math.Min(maxA-minB, maxB-minA)
		res.candidates = append(res.candidates, axisOverlap{
			axis:    axis,
			overlap: overlap,
			lo:      math.Max(minA, minB),
			hi:      math.Min(maxA, maxB),
		})
		if overlap < res.candidates[res.best].overlap {
			res.best = len(res.candidates) - 1
		}
	}
	return res
}

// Colliding reports whether the two bodies overlap with positive depth.
// Bodies that only touch are not colliding.
func Colliding(a, b *RigidBody) bool {
	res := separatingAxisTest(a, b)
	return !res.separated && res.minOverlap() > 0
}

// Colliding reports whether the body overlaps other. It never mutates either body.
func (b *RigidBody) Colliding(other *RigidBody) bool {
	return Colliding(b, other)
}

// Penetration returns the smallest overlap over all candidate axes, or 0
// when the bodies are separated or touching.
func Penetration(a, b *RigidBody) float64 {
	return separatingAxisTest(a, b).minOverlap()
}
