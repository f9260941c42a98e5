package sim

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rigidbox/internal/physics"
)

func quietWorld(opts ...Option) *World {
	return NewWorld(append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
}

func addBox(t *testing.T, w *World, name string, x, y, rotation, size, mass float64) BodyID {
	t.Helper()
	b, err := physics.NewRigidBody(mgl64.Vec2{x, y}, rotation, size, size, mass)
	require.NoError(t, err)
	return w.Add(name, b)
}

func addFloor(t *testing.T, w *World) BodyID {
	t.Helper()
	b, err := physics.NewRigidBody(mgl64.Vec2{0, 0}, 0, 1000, 20, 100)
	require.NoError(t, err)
	b.Static = true
	return w.Add("floor", b)
}

func TestWorldArena(t *testing.T) {
	w := quietWorld()
	assert.Equal(t, 0, w.Len())

	a := addBox(t, w, "a", 0, 0, 0, 10, 1)
	b := addBox(t, w, "b", 20, 0, 0, 10, 1)

	assert.Equal(t, BodyID(0), a)
	assert.Equal(t, BodyID(1), b)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, "b", w.Name(b))
	assert.Equal(t, "", w.Name(7))

	body, ok := w.Body(a)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec2{0, 0}, body.Position)

	_, ok = w.Body(-1)
	assert.False(t, ok)

	bodies := w.Bodies()
	require.Len(t, bodies, 2)
	bodies[0] = nil
	assert.NotNil(t, w.Bodies()[0], "Bodies must return a copy of the slice")
}

func TestWorldUnknownBody(t *testing.T) {
	w := quietWorld()
	a := addBox(t, w, "a", 0, 0, 0, 10, 1)

	assert.ErrorIs(t, w.ApplyForce(3, mgl64.Vec2{1, 0}), ErrUnknownBody)
	assert.ErrorIs(t, w.ApplyTorque(-2, 1), ErrUnknownBody)

	_, err := w.Colliding(a, 9)
	assert.ErrorIs(t, err, ErrUnknownBody)

	_, err = w.Resolve(9, a)
	assert.ErrorIs(t, err, ErrUnknownBody)
}

func TestWorldForcesReachBodies(t *testing.T) {
	w := quietWorld()
	id := addBox(t, w, "a", 0, 0, 0, 10, 2)
	body, _ := w.Body(id)
	body.Gravity = mgl64.Vec2{}

	require.NoError(t, w.ApplyForce(id, mgl64.Vec2{20, 0}))
	require.NoError(t, w.ApplyTorque(id, 5))
	assert.Equal(t, mgl64.Vec2{20, 0}, body.Force())
	assert.Equal(t, 5.0, body.Torque())

	res := w.Step(0.5)
	assert.Equal(t, uint64(1), res.Tick)
	assert.Equal(t, uint64(1), w.Tick())
	assert.InDelta(t, 5.0, body.LinearVelocity.X(), 1e-12)
	assert.Zero(t, body.Force())
	assert.Zero(t, body.Torque())
}

func TestWorldPairQueries(t *testing.T) {
	w := quietWorld()
	a := addBox(t, w, "a", 0, 0, 0, 100, 1)
	b := addBox(t, w, "b", 90, 0, 0, 100, 1)

	hit, err := w.Colliding(a, b)
	require.NoError(t, err)
	assert.True(t, hit)

	contact, err := w.Resolve(a, b)
	require.NoError(t, err)
	assert.True(t, contact.Resolved)

	hit, err = w.Colliding(a, b)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestWorldStepResolvesEachPairOnce(t *testing.T) {
	w := quietWorld()
	for i := 0; i < 3; i++ {
		id := addBox(t, w, "box", float64(i)*9, 0, 0, 10, 1)
		b, _ := w.Body(id)
		b.Gravity = mgl64.Vec2{}
	}

	res := w.Step(1.0 / 60)
	assert.Equal(t, 2, res.Contacts)
	assert.Empty(t, res.Corrupted)
}

func TestWorldBoxSettlesOnFloor(t *testing.T) {
	w := quietWorld()
	floor := addFloor(t, w)
	box := addBox(t, w, "box", 0, 100, 0, 40, 1)

	for i := 0; i < 1000; i++ {
		res := w.Step(1.0 / 500)
		require.Empty(t, res.Corrupted)
	}

	fb, _ := w.Body(floor)
	assert.Equal(t, mgl64.Vec2{0, 0}, fb.Position)
	assert.Zero(t, fb.Rotation)
	assert.Equal(t, mgl64.Vec2{}, fb.LinearVelocity)

	bb, _ := w.Body(box)
	assert.InDelta(t, 30.0, bb.Position.Y(), 0.5)
	assert.Zero(t, bb.Position.X())
	assert.Zero(t, bb.Rotation)
}

func buildScene(t *testing.T) *World {
	t.Helper()
	w := quietWorld()
	addFloor(t, w)
	addBox(t, w, "a", -30, 60, 15, 30, 1)
	addBox(t, w, "b", 5, 110, -40, 25, 2)
	addBox(t, w, "c", 40, 170, 70, 20, 0.5)
	return w
}

func TestWorldDeterminism(t *testing.T) {
	w1 := buildScene(t)
	w2 := buildScene(t)

	for i := 0; i < 600; i++ {
		w1.Step(1.0 / 500)
		w2.Step(1.0 / 500)
	}

	s1, s2 := w1.Snapshot(), w2.Snapshot()
	assert.Equal(t, s1, s2)
	assert.Equal(t, s1.Hash(), s2.Hash())

	w1.Step(1.0 / 500)
	assert.NotEqual(t, s1.Hash(), w1.Snapshot().Hash())
}

func TestWorldStaticBodiesNeverMove(t *testing.T) {
	w := buildScene(t)
	floor, _ := w.Body(0)
	before := *floor

	for i := 0; i < 1500; i++ {
		w.Step(1.0 / 500)
	}

	assert.Equal(t, before.Position, floor.Position)
	assert.Equal(t, before.Rotation, floor.Rotation)
	assert.Equal(t, before.LinearVelocity, floor.LinearVelocity)
	assert.Equal(t, before.AngularVelocity, floor.AngularVelocity)
}

func TestWorldReportsCorruptionOnce(t *testing.T) {
	var out bytes.Buffer
	w := NewWorld(WithLogger(log.New(&out)))
	id := addBox(t, w, "bad", 0, 0, 0, 10, 1)
	addBox(t, w, "good", 500, 0, 0, 10, 1)

	bad, _ := w.Body(id)
	bad.LinearVelocity = mgl64.Vec2{math.NaN(), 0}

	res := w.Step(0.01)
	assert.Equal(t, []BodyID{id}, res.Corrupted)
	logged := out.Len()
	assert.Contains(t, out.String(), "not finite")

	res = w.Step(0.01)
	assert.Equal(t, []BodyID{id}, res.Corrupted)
	assert.Equal(t, logged, out.Len(), "corruption should be logged once per body")
}

func TestKineticEnergy(t *testing.T) {
	w := quietWorld()
	id := addBox(t, w, "a", 0, 0, 0, 6, 2)
	floor := addFloor(t, w)

	b, _ := w.Body(id)
	b.LinearVelocity = mgl64.Vec2{3, 4}
	b.AngularVelocity = mgl64.RadToDeg(2)

	fb, _ := w.Body(floor)
	fb.LinearVelocity = mgl64.Vec2{100, 0}

	inertia := 2.0 * (36 + 36) / 12
	assert.InDelta(t, 25+0.5*inertia*4, w.KineticEnergy(), 1e-9)
}

func TestSnapshotCopiesState(t *testing.T) {
	w := quietWorld()
	id := addBox(t, w, "a", 1, 2, 30, 5, 1)

	snap := w.Snapshot()
	require.Len(t, snap.Bodies, 1)
	assert.Equal(t, "a", snap.Bodies[0].Name)
	assert.Equal(t, mgl64.Vec2{1, 2}, snap.Bodies[0].Position)
	assert.Equal(t, 30.0, snap.Bodies[0].Rotation)

	b, _ := w.Body(id)
	b.Position = mgl64.Vec2{9, 9}
	assert.Equal(t, mgl64.Vec2{1, 2}, snap.Bodies[0].Position)
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name                    string
		measured, fallback, max float64
		want                    float64
	}{
		{"passthrough", 0.016, 0.002, 0.05, 0.016},
		{"zero uses fallback", 0, 0.002, 0.05, 0.002},
		{"negative uses fallback", -1, 0.002, 0.05, 0.002},
		{"NaN uses fallback", math.NaN(), 0.002, 0.05, 0.002},
		{"clamped to max", 0.5, 0.002, 0.05, 0.05},
		{"no max", 0.5, 0.002, 0, 0.5},
		{"default fallback", 0, 0, 0, DefaultFallbackDelta},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampDelta(tc.measured, tc.fallback, tc.max))
		})
	}
}
