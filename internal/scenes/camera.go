package scenes

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/physics"
)

// Glyphs used to rasterise bodies.
const (
	DynamicGlyph  = '█'
	StaticGlyph   = '▒'
	SelectedGlyph = '▓'
	PointGlyph    = '·'
)

// Camera maps world coordinates (y up) to screen cells (y down).
type Camera struct {
	Center       mgl64.Vec2
	UnitsPerCell float64 // World units per cell column
	Aspect       float64 // Cell height divided by cell width
	W, H         int     // Screen size in cells
}

func (c Camera) unitsPerRow() float64 {
	return c.UnitsPerCell * c.Aspect
}

// ToCell returns the cell containing world point p.
func (c Camera) ToCell(p mgl64.Vec2) (col, row int) {
	fx := float64(c.W)/2 + (p.X()-c.Center.X())/c.UnitsPerCell
	fy := float64(c.H)/2 - (p.Y()-c.Center.Y())/c.unitsPerRow()
	return int(math.Floor(fx)), int(math.Floor(fy))
}

// ToWorld returns the world position of the centre of a cell.
func (c Camera) ToWorld(col, row int) mgl64.Vec2 {
	return mgl64.Vec2{
		c.Center.X() + (float64(col)+0.5-float64(c.W)/2)*c.UnitsPerCell,
		c.Center.Y() - (float64(row)+0.5-float64(c.H)/2)*c.unitsPerRow(),
	}
}

// contains reports whether world point p lies inside the body's rectangle.
func contains(b *physics.RigidBody, p mgl64.Vec2) bool {
	local := mgl64.Rotate2D(-mgl64.DegToRad(b.Rotation)).Mul2x1(p.Sub(b.Position))
	return math.Abs(local.X()) <= b.Width()/2 && math.Abs(local.Y()) <= b.Height()/2
}

// drawBody fills every cell whose centre lies inside the body. Bodies
// smaller than a cell still get a single glyph at their centre.
func drawBody(dst *core.Screen, cam Camera, b *physics.RigidBody, glyph rune, color core.Color) {
	if !b.Finite() {
		return
	}

	minCol, minRow := math.MaxInt, math.MaxInt
	maxCol, maxRow := math.MinInt, math.MinInt
	for _, v := range physics.Vertices(b) {
		col, row := cam.ToCell(v)
		minCol, maxCol = core.Min(minCol, col), core.Max(maxCol, col)
		minRow, maxRow = core.Min(minRow, row), core.Max(maxRow, row)
	}

	bounds := dst.Bounds()
	minCol = core.Clamp(minCol, 0, bounds.Right()-1)
	maxCol = core.Clamp(maxCol, 0, bounds.Right()-1)
	minRow = core.Clamp(minRow, 0, bounds.Bottom()-1)
	maxRow = core.Clamp(maxRow, 0, bounds.Bottom()-1)

	drawn := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if contains(b, cam.ToWorld(col, row)) {
				dst.SetColor(col, row, glyph, color)
				drawn = true
			}
		}
	}

	if !drawn {
		if col, row := cam.ToCell(b.Position); bounds.Contains(col, row) {
			dst.SetColor(col, row, PointGlyph, color)
		}
	}
}
