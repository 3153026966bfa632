package state

// Default control point offsets for freshly created curves.
const controlOffset = 20.0

// ApplyGuide moves the point of seg named by the guide. Guides that target a
// control point the segment's kind does not carry leave seg unchanged.
func ApplyGuide(seg Segment, g Guide) Segment {
	switch k := seg.Kind.(type) {
	case Move, Line:
		if g.Type == GuideTo {
			seg.End = g.Position
		}
	case QuadCurve:
		switch g.Type {
		case GuideTo:
			seg.End = g.Position
		case GuideQuadControl:
			k.Control = g.Position
			seg.Kind = k
		}
	case Curve:
		switch g.Type {
		case GuideTo:
			seg.End = g.Position
		case GuideCurveControl1:
			k.Control1 = g.Position
			seg.Kind = k
		case GuideCurveControl2:
			k.Control2 = g.Position
			seg.Kind = k
		}
	}
	return seg
}

// DefaultKind returns the kind a new segment drawn with tool from start to
// end gets. Curves receive control points derived from the two end points so
// that they render visibly bent.
func DefaultKind(tool Tool, start, end Point) Kind {
	mid := Midpoint(start, end)
	switch tool {
	case ToolLine:
		return Line{}
	case ToolQuadCurve:
		return QuadCurve{Control: mid.Offset(-controlOffset, -controlOffset)}
	case ToolCurve:
		return Curve{
			Control1: Midpoint(start, mid).Offset(-controlOffset, -controlOffset),
			Control2: Midpoint(mid, end).Offset(controlOffset, controlOffset),
		}
	}
	return Move{}
}
