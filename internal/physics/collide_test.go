package physics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollidingWorkedScenario(t *testing.T) {
	a := mustBody(t, 0, 0, 0, 100, 100, 1)
	b := mustBody(t, 90, 0, 0, 100, 100, 1)

	assert.True(t, a.Colliding(b))
	assert.True(t, Colliding(b, a))
	assert.InDelta(t, 10.0, Penetration(a, b), eps)
}

func TestCollidingCases(t *testing.T) {
	tests := []struct {
		name     string
		a, b     [6]float64 // x, y, rotation, w, h, mass
		expected bool
	}{
		{
			name:     "separated along x",
			a:        [6]float64{0, 0, 0, 10, 10, 1},
			b:        [6]float64{25, 0, 0, 10, 10, 1},
			expected: false,
		},
		{
			name:     "separated along y",
			a:        [6]float64{0, 0, 0, 10, 10, 1},
			b:        [6]float64{0, -30, 0, 10, 20, 1},
			expected: false,
		},
		{
			name:     "touching edges",
			a:        [6]float64{0, 0, 0, 10, 10, 1},
			b:        [6]float64{10, 0, 0, 10, 10, 1},
			expected: false,
		},
		{
			name:     "contained",
			a:        [6]float64{0, 0, 0, 100, 100, 1},
			b:        [6]float64{5, 5, 0, 10, 10, 1},
			expected: true,
		},
		{
			name:     "rotated corner reaches in",
			a:        [6]float64{0, 0, 0, 10, 10, 1},
			b:        [6]float64{12, 0, 45, 10, 10, 1},
			expected: true,
		},
		{
			name:     "rotated AABBs overlap but shapes do not",
			a:        [6]float64{0, 0, 45, 10, 10, 1},
			b:        [6]float64{7.5, 7.5, 45, 10, 10, 1},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := mustBody(t, tc.a[0], tc.a[1], tc.a[2], tc.a[3], tc.a[4], tc.a[5])
			b := mustBody(t, tc.b[0], tc.b[1], tc.b[2], tc.b[3], tc.b[4], tc.b[5])
			assert.Equal(t, tc.expected, a.Colliding(b))
			assert.Equal(t, tc.expected, b.Colliding(a), "reversed")
		})
	}
}

func TestCollidingSymmetry(t *testing.T) {
	a := mustBody(t, 0, 0, 0, 40, 20, 1)
	b := mustBody(t, 0, 0, 0, 25, 15, 1)

	for x := -60.0; x <= 60; x += 7.5 {
		for y := -40.0; y <= 40; y += 6.5 {
			for _, rot := range []float64{0, 17, 45, 90, 133} {
				a.Rotation = rot / 2
				b.Position[0], b.Position[1] = x, y
				b.Rotation = rot
				assert.Equal(t, Colliding(a, b), Colliding(b, a),
					fmt.Sprintf("pos=(%v,%v) rot=%v", x, y, rot))
			}
		}
	}
}

func TestCollidingIsPure(t *testing.T) {
	a := mustBody(t, 0, 0, 10, 50, 50, 1)
	b := mustBody(t, 30, 10, 20, 50, 50, 2)
	a.LinearVelocity[0] = 5
	before := [2]RigidBody{*a, *b}

	a.Colliding(b)

	assert.Equal(t, before[0], *a)
	assert.Equal(t, before[1], *b)
}

func TestCollidingDegenerate(t *testing.T) {
	box := mustBody(t, 0, 0, 0, 10, 10, 1)
	inside := mustBody(t, 1, 1, 0, 0, 0, 1)
	outside := mustBody(t, 20, 0, 0, 0, 0, 1)

	assert.True(t, box.Colliding(inside))
	assert.False(t, box.Colliding(outside))
	assert.False(t, inside.Colliding(inside), "two points never collide")
}
