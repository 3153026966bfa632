package state

import (
	"fmt"
	"math"
)

// CanvasWidth is the standard width of the square editing canvas in stored
// coordinates.
const CanvasWidth = 1000.0

// Point is a position in canvas-local, unscaled coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Offset translates p by (dx, dy).
func (p Point) Offset(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Scale multiplies both coordinates by factor. Stored coordinates become
// screen coordinates with factor = zoom, and back with factor = 1/zoom.
func Scale(p Point, factor float64) Point {
	return Point{p.X * factor, p.Y * factor}
}

// ClampToCanvas clamps each coordinate of p into [0, width].
func ClampToCanvas(p Point, width float64) Point {
	return Point{clamp(p.X, 0, width), clamp(p.Y, 0, width)}
}

// ToStored converts a screen position at the given zoom level into stored
// coordinates, clamping into the canvas when clampToCanvas is set. zoom must
// be positive; Zoom never holds anything else.
func ToStored(screen Point, zoom, width float64, clampToCanvas bool) Point {
	p := Scale(screen, 1/zoom)
	if clampToCanvas {
		p = ClampToCanvas(p, width)
	}
	return p
}

// ToScreen converts stored coordinates to screen coordinates at the given zoom.
func ToScreen(p Point, zoom float64) Point {
	return Scale(p, zoom)
}

func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
