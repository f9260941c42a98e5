package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyState is the observable pose and motion of one body.
type BodyState struct {
	ID              BodyID
	Name            string
	Position        mgl64.Vec2
	Rotation        float64
	LinearVelocity  mgl64.Vec2
	AngularVelocity float64
	Static          bool
}

// Snapshot is a copy of the world state at one tick.
type Snapshot struct {
	Tick   uint64
	Bodies []BodyState
}

// Snapshot copies the current state of every body.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   w.tick,
		Bodies: make([]BodyState, len(w.bodies)),
	}
	for i, b := range w.bodies {
		snap.Bodies[i] = BodyState{
			ID:              BodyID(i),
			Name:            w.names[i],
			Position:        b.Position,
			Rotation:        b.Rotation,
			LinearVelocity:  b.LinearVelocity,
			AngularVelocity: b.AngularVelocity,
			Static:          b.Static,
		}
	}
	return snap
}

// Hash returns an FNV-1a hash of the exact bit patterns of the snapshot,
// for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash never fails
	}

	write(s.Tick)
	for _, b := range s.Bodies {
		write(uint64(b.ID)) //#nosec G115 -- hash computation
		for _, f := range [...]float64{
			b.Position.X(), b.Position.Y(), b.Rotation,
			b.LinearVelocity.X(), b.LinearVelocity.Y(), b.AngularVelocity,
		} {
			write(math.Float64bits(f))
		}
	}
	return h.Sum64()
}
