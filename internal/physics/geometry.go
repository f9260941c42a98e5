package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Corner offsets in local space, in units of half extents.
// Order: top-left, top-right, bottom-right, bottom-left.
var cornerSigns = [4]mgl64.Vec2{
	{-1, 1},
	{1, 1},
	{1, -1},
	{-1, -1},
}

// Vertex returns world-space corner i of the body's rectangle.
// i is taken modulo 4.
func Vertex(i int, body *RigidBody) mgl64.Vec2 {
	sign := cornerSigns[((i%4)+4)%4]
	local := mgl64.Vec2{sign.X() * body.width / 2, sign.Y() * body.height / 2}
	rot := mgl64.Rotate2D(mgl64.DegToRad(body.Rotation))
	return rot.Mul2x1(local).Add(body.Position)
}

// Vertex returns world-space corner i of the body.
func (b *RigidBody) Vertex(i int) mgl64.Vec2 {
	return Vertex(i, b)
}

// Vertices returns all four corners in Vertex order.
func Vertices(body *RigidBody) [4]mgl64.Vec2 {
	var out [4]mgl64.Vec2
	for i := range out {
		out[i] = Vertex(i, body)
	}
	return out
}

// EdgeNormal returns the outward unit normal of the edge from start to end
// for clockwise winding. ok is false when the edge has zero length.
func EdgeNormal(start, end mgl64.Vec2) (normal mgl64.Vec2, ok bool) {
	edge := end.Sub(start)
	length := edge.Len()
	if length == 0 || math.IsNaN(length) {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{-edge.Y() / length, edge.X() / length}, true
}

// Normal returns the outward normal of the edge between Vertex(edgeIndex)
// and Vertex(edgeIndex+1).
func Normal(edgeIndex int, body *RigidBody) (mgl64.Vec2, bool) {
	return EdgeNormal(Vertex(edgeIndex, body), Vertex(edgeIndex+1, body))
}

// Project returns the coordinate of vertex along axis.
func Project(vertex, axis mgl64.Vec2) float64 {
	return vertex.Dot(axis)
}

// IntervalsOverlap reports whether the closed intervals [minA,maxA] and
// [minB,maxB] intersect. Touching intervals overlap.
func IntervalsOverlap(minA, maxA, minB, maxB float64) bool {
	return maxA >= minB && maxB >= minA
}

// Axes returns the non-degenerate candidate separating axes for a pair:
// a's four edge normals followed by b's.
func Axes(a, b *RigidBody) []mgl64.Vec2 {
	axes := make([]mgl64.Vec2, 0, 8)
	for _, body := range [2]*RigidBody{a, b} {
		for i := 0; i < 4; i++ {
			if n, ok := Normal(i, body); ok {
				axes = append(axes, n)
			}
		}
	}
	return axes
}

// projectBody returns the [min,max] interval of body's corners on axis.
func projectBody(body *RigidBody, axis mgl64.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range Vertices(body) {
		p := Project(v, axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

// cross2 is the z component of the 3D cross product of a and b.
func cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}
