package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl64.Vec2, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Y(), got.Y(), 1e-9, msgAndArgs...)
}

func TestVertexOrderAxisAligned(t *testing.T) {
	b := mustBody(t, 10, 20, 0, 4, 2, 1)

	want := [4]mgl64.Vec2{
		{8, 21},  // top-left
		{12, 21}, // top-right
		{12, 19}, // bottom-right
		{8, 19},  // bottom-left
	}
	for i, w := range want {
		assertVec(t, w, b.Vertex(i), "vertex %d", i)
	}

	// Indices wrap around.
	assertVec(t, want[0], Vertex(4, b))
	assertVec(t, want[3], Vertex(-1, b))
}

func TestVertexRotated(t *testing.T) {
	b := mustBody(t, 0, 0, 90, 4, 2, 1)

	// Top-left (-2, 1) rotated 90° CCW becomes (-1, -2).
	assertVec(t, mgl64.Vec2{-1, -2}, b.Vertex(0))
	assertVec(t, mgl64.Vec2{-1, 2}, b.Vertex(1))
}

func TestVerticesFollowPose(t *testing.T) {
	b := mustBody(t, 0, 0, 0, 2, 2, 1)
	before := Vertices(b)

	b.Position = mgl64.Vec2{5, 0}
	after := Vertices(b)

	for i := range before {
		assertVec(t, before[i].Add(mgl64.Vec2{5, 0}), after[i])
	}
}

func TestEdgeNormalOutward(t *testing.T) {
	b := mustBody(t, 0, 0, 0, 4, 2, 1)

	want := []mgl64.Vec2{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	for i, w := range want {
		n, ok := Normal(i, b)
		assert.True(t, ok)
		assertVec(t, w, n, "normal %d", i)
		assert.InDelta(t, 1.0, n.Len(), 1e-12)
	}
}

func TestEdgeNormalDegenerate(t *testing.T) {
	p := mgl64.Vec2{3, 3}
	n, ok := EdgeNormal(p, p)
	assert.False(t, ok)
	assert.Equal(t, mgl64.Vec2{}, n)

	flat := mustBody(t, 0, 0, 0, 5, 0, 1)
	_, ok = Normal(1, flat)
	assert.False(t, ok, "zero-height edge has no normal")
	_, ok = Normal(0, flat)
	assert.True(t, ok)
}

func TestAxesSkipDegenerate(t *testing.T) {
	box := mustBody(t, 0, 0, 0, 2, 2, 1)
	point := mustBody(t, 0, 0, 0, 0, 0, 1)
	flat := mustBody(t, 0, 0, 0, 3, 0, 1)

	assert.Len(t, Axes(box, box), 8)
	assert.Len(t, Axes(box, point), 4)
	assert.Len(t, Axes(flat, point), 2)
	assert.Empty(t, Axes(point, point))
}

func TestProject(t *testing.T) {
	assert.Equal(t, 3.0, Project(mgl64.Vec2{3, 4}, mgl64.Vec2{1, 0}))
	assert.InDelta(t, 7/math.Sqrt2, Project(mgl64.Vec2{3, 4}, mgl64.Vec2{1, 1}.Normalize()), 1e-12)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		minA, maxA, minB, maxB float64
		expected               bool
	}{
		{"disjoint", 0, 1, 2, 3, false},
		{"disjoint reversed", 2, 3, 0, 1, false},
		{"touching", 0, 1, 1, 2, true},
		{"overlapping", 0, 2, 1, 3, true},
		{"contained", 0, 10, 2, 3, true},
		{"identical", 1, 2, 1, 2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IntervalsOverlap(tc.minA, tc.maxA, tc.minB, tc.maxB))
			assert.Equal(t, tc.expected, IntervalsOverlap(tc.minB, tc.maxB, tc.minA, tc.maxA))
		})
	}
}
