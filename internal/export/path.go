package export

import (
	"github.com/tdewolff/canvas"

	"PathBoard/internal/state"
)

// Path converts the segments to a canvas path in stored coordinates.
func Path(segments []state.Segment) *canvas.Path {
	p := &canvas.Path{}
	for i, seg := range segments {
		if _, ok := seg.Kind.(state.Move); !ok && i == 0 {
			p.MoveTo(seg.Start.X, seg.Start.Y)
		}
		appendSegment(p, seg)
	}
	return p
}

func appendSegment(p *canvas.Path, seg state.Segment) {
	switch k := seg.Kind.(type) {
	case state.Move:
		p.MoveTo(seg.End.X, seg.End.Y)
	case state.Line:
		p.LineTo(seg.End.X, seg.End.Y)
	case state.QuadCurve:
		p.QuadTo(k.Control.X, k.Control.Y, seg.End.X, seg.End.Y)
	case state.Curve:
		p.CubeTo(k.Control1.X, k.Control1.Y, k.Control2.X, k.Control2.Y, seg.End.X, seg.End.Y)
	}
}

// Polyline approximates a single segment by straight pieces deviating at most
// tolerance from it. A Move yields its end point only.
func Polyline(seg state.Segment, tolerance float64) []state.Point {
	p := &canvas.Path{}
	p.MoveTo(seg.Start.X, seg.Start.Y)
	appendSegment(p, seg)

	coords := p.Flatten(tolerance).Coords()
	pts := make([]state.Point, len(coords))
	for i, c := range coords {
		pts[i] = state.Pt(c.X, c.Y)
	}
	return pts
}
