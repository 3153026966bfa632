package state

import (
	"encoding/json"
	"fmt"
)

// Tool is the segment kind the next pointer interaction appends.
type Tool int

const (
	ToolMove Tool = iota
	ToolLine
	ToolQuadCurve
	ToolCurve
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolMove, ToolLine, ToolQuadCurve, ToolCurve}

func (t Tool) String() string {
	switch t {
	case ToolMove:
		return "move"
	case ToolLine:
		return "line"
	case ToolQuadCurve:
		return "quadCurve"
	case ToolCurve:
		return "curve"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// ParseTool is the inverse of Tool.String.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if t.String() == s {
			return t, nil
		}
	}
	return ToolMove, fmt.Errorf("unknown tool %q", s)
}

// Kind is the per-segment drawing instruction. It is one of Move, Line,
// QuadCurve or Curve; control points live on the curve kinds only.
type Kind interface {
	fmt.Stringer
	isKind()
}

type Move struct{}

type Line struct{}

type QuadCurve struct {
	Control Point
}

type Curve struct {
	Control1 Point
	Control2 Point
}

func (Move) isKind()      {}
func (Line) isKind()      {}
func (QuadCurve) isKind() {}
func (Curve) isKind()     {}

func (Move) String() string      { return "move" }
func (Line) String() string      { return "line" }
func (QuadCurve) String() string { return "quadCurve" }
func (Curve) String() string     { return "curve" }

// Segment is one element of the path. Start always equals the previous
// segment's End; Hovered is a transient presentation flag.
type Segment struct {
	ID      string
	Kind    Kind
	Start   Point
	End     Point
	Hovered bool
}

type segmentJSON struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Start    Point  `json:"start"`
	End      Point  `json:"end"`
	Control  *Point `json:"control,omitempty"`
	Control1 *Point `json:"control1,omitempty"`
	Control2 *Point `json:"control2,omitempty"`
	Hovered  bool   `json:"hovered,omitempty"`
}

func (s Segment) MarshalJSON() ([]byte, error) {
	out := segmentJSON{ID: s.ID, Start: s.Start, End: s.End, Hovered: s.Hovered}
	switch k := s.Kind.(type) {
	case Move, Line:
		out.Kind = k.String()
	case QuadCurve:
		out.Kind = k.String()
		out.Control = &k.Control
	case Curve:
		out.Kind = k.String()
		out.Control1, out.Control2 = &k.Control1, &k.Control2
	default:
		return nil, fmt.Errorf("segment %s: no kind", s.ID)
	}
	return json.Marshal(out)
}

func (s *Segment) UnmarshalJSON(b []byte) error {
	var in segmentJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.ID, s.Start, s.End, s.Hovered = in.ID, in.Start, in.End, in.Hovered
	switch in.Kind {
	case "move":
		s.Kind = Move{}
	case "line":
		s.Kind = Line{}
	case "quadCurve":
		if in.Control == nil {
			return fmt.Errorf("segment %s: quadCurve without control", in.ID)
		}
		s.Kind = QuadCurve{Control: *in.Control}
	case "curve":
		if in.Control1 == nil || in.Control2 == nil {
			return fmt.Errorf("segment %s: curve without controls", in.ID)
		}
		s.Kind = Curve{Control1: *in.Control1, Control2: *in.Control2}
	default:
		return fmt.Errorf("segment %s: unknown kind %q", in.ID, in.Kind)
	}
	return nil
}

// GuideType names the point of a segment a guide drags.
type GuideType int

const (
	GuideTo GuideType = iota
	GuideQuadControl
	GuideCurveControl1
	GuideCurveControl2
)

func (g GuideType) String() string {
	switch g {
	case GuideTo:
		return "to"
	case GuideQuadControl:
		return "quadCurveControl"
	case GuideCurveControl1:
		return "curveControl1"
	case GuideCurveControl2:
		return "curveControl2"
	default:
		return fmt.Sprintf("GuideType(%d)", int(g))
	}
}

// Guide is a request to move one point of a segment.
type Guide struct {
	Type     GuideType
	Position Point
}

// Guides returns the draggable handles of the segment, end point first.
func (s Segment) Guides() []Guide {
	guides := []Guide{{Type: GuideTo, Position: s.End}}
	switch k := s.Kind.(type) {
	case QuadCurve:
		guides = append(guides, Guide{Type: GuideQuadControl, Position: k.Control})
	case Curve:
		guides = append(guides,
			Guide{Type: GuideCurveControl1, Position: k.Control1},
			Guide{Type: GuideCurveControl2, Position: k.Control2},
		)
	}
	return guides
}
