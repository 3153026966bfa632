package ui

import (
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PathBoard/internal/export"
	"PathBoard/internal/state"
)

const (
	handleRadius = 6
	hitRadius    = 9

	// most a drawn curve strays from the true one, in screen pixels
	flattenTolerance = 0.5
)

var (
	pathColor     = color.NRGBA{A: 255}
	hoverColor    = color.NRGBA{R: 20, G: 110, B: 230, A: 255}
	endColor      = color.NRGBA{R: 220, G: 40, B: 40, A: 255}
	controlColor  = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	guideColor    = color.NRGBA{R: 160, G: 160, B: 160, A: 160}
	canvasColor   = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	boundaryColor = color.NRGBA{R: 210, G: 210, B: 210, A: 255}
)

// guideDrag is the handle a drag started on.
type guideDrag struct {
	id    string
	guide state.GuideType
}

// EditorWidget draws the session's path with its handles and turns pointer
// input into session commands.
type EditorWidget struct {
	widget.BaseWidget
	session *state.Session
	log     *slog.Logger

	drag    *guideDrag
	hovered string
}

var _ fyne.Widget = (*EditorWidget)(nil)
var _ fyne.Draggable = (*EditorWidget)(nil)
var _ fyne.Scrollable = (*EditorWidget)(nil)
var _ desktop.Mouseable = (*EditorWidget)(nil)
var _ desktop.Hoverable = (*EditorWidget)(nil)

func NewEditorWidget(session *state.Session, log *slog.Logger) *EditorWidget {
	e := &EditorWidget{
		session: session,
		log:     log,
	}
	e.ExtendBaseWidget(e)
	session.OnChange(func(state.Snapshot) {
		fyne.Do(e.Refresh)
	})
	return e
}

func toPoint(pos fyne.Position) state.Point {
	return state.Pt(float64(pos.X), float64(pos.Y))
}

func toPosition(p state.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

// handleAt returns the handle under the screen position, preferring the most
// recently added segment when handles overlap.
func (e *EditorWidget) handleAt(pos fyne.Position) (*guideDrag, bool) {
	snap := e.session.Snapshot()
	screen := toPoint(pos)
	best, bestDist := (*guideDrag)(nil), math.Inf(1)
	for i := len(snap.Segments) - 1; i >= 0; i-- {
		seg := snap.Segments[i]
		for _, g := range seg.Guides() {
			at := state.ToScreen(g.Position, snap.Zoom)
			d := math.Hypot(at.X-screen.X, at.Y-screen.Y)
			if d <= hitRadius && d < bestDist {
				best, bestDist = &guideDrag{id: seg.ID, guide: g.Type}, d
			}
		}
	}
	return best, best != nil
}

func (e *EditorWidget) MouseDown(ev *desktop.MouseEvent) {
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		if h, ok := e.handleAt(ev.Position); ok {
			e.drag = h
			return
		}
		e.session.PointerMove(toPoint(ev.Position))
	case desktop.MouseButtonSecondary:
		if h, ok := e.handleAt(ev.Position); ok && h.guide == state.GuideTo {
			e.log.Debug("remove segment", "id", h.id)
			e.session.RemoveSegment(h.id)
		}
	}
}

func (e *EditorWidget) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	e.endDrag()
}

func (e *EditorWidget) Dragged(ev *fyne.DragEvent) {
	if e.drag != nil {
		e.session.UpdateGuide(e.drag.id, state.Guide{Type: e.drag.guide, Position: toPoint(ev.Position)})
		return
	}
	e.session.PointerMove(toPoint(ev.Position))
}

func (e *EditorWidget) DragEnd() {
	e.endDrag()
}

func (e *EditorWidget) endDrag() {
	if e.drag != nil {
		e.drag = nil
		return
	}
	e.session.PointerUp()
}

func (e *EditorWidget) MouseIn(*desktop.MouseEvent) {}

func (e *EditorWidget) MouseMoved(ev *desktop.MouseEvent) {
	id := ""
	if h, ok := e.handleAt(ev.Position); ok {
		id = h.id
	}
	e.setHovered(id)
}

func (e *EditorWidget) MouseOut() {
	e.setHovered("")
}

func (e *EditorWidget) setHovered(id string) {
	if id == e.hovered {
		return
	}
	if e.hovered != "" {
		e.session.SetHovered(e.hovered, false)
	}
	if id != "" {
		e.session.SetHovered(id, true)
	}
	e.hovered = id
}

// Scrolled zooms in on scroll up and out on scroll down.
func (e *EditorWidget) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		e.session.IncrementZoom()
	case ev.Scrolled.DY < 0:
		e.session.DecrementZoom()
	}
}

func (e *EditorWidget) MinSize() fyne.Size {
	side := float32(e.session.CanvasWidth() * e.session.Zoom())
	return fyne.NewSize(side, side)
}

func (e *EditorWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &editorRenderer{
		editor:     e,
		background: canvas.NewRectangle(canvasColor),
		boundary:   canvas.NewRectangle(color.Transparent),
	}
	r.boundary.StrokeColor = boundaryColor
	r.boundary.StrokeWidth = 1
	r.rebuild()
	return r
}

type editorRenderer struct {
	editor     *EditorWidget
	background *canvas.Rectangle
	boundary   *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *editorRenderer) rebuild() {
	snap := r.editor.session.Snapshot()
	side := float32(snap.CanvasWidth * snap.Zoom)
	r.boundary.Move(fyne.NewPos(0, 0))
	r.boundary.Resize(fyne.NewSize(side, side))

	objects := []fyne.CanvasObject{r.background, r.boundary}
	screen := func(p state.Point) fyne.Position {
		return toPosition(state.ToScreen(p, snap.Zoom))
	}
	line := func(a, b state.Point, c color.Color, width float32) {
		l := canvas.NewLine(c)
		l.StrokeWidth = width
		l.Position1, l.Position2 = screen(a), screen(b)
		objects = append(objects, l)
	}

	for _, seg := range snap.Segments {
		c, width := color.Color(pathColor), float32(2)
		if seg.Hovered {
			c, width = hoverColor, 3
		}
		pts := export.Polyline(seg, flattenTolerance/snap.Zoom)
		for i := 1; i < len(pts); i++ {
			line(pts[i-1], pts[i], c, width)
		}

		switch k := seg.Kind.(type) {
		case state.QuadCurve:
			line(seg.Start, k.Control, guideColor, 1)
			line(k.Control, seg.End, guideColor, 1)
		case state.Curve:
			line(seg.Start, k.Control1, guideColor, 1)
			line(k.Control2, seg.End, guideColor, 1)
		}
	}

	for _, seg := range snap.Segments {
		for _, g := range seg.Guides() {
			fill := controlColor
			if g.Type == state.GuideTo {
				fill = endColor
			}
			dot := canvas.NewCircle(fill)
			pos := screen(g.Position)
			dot.Move(fyne.NewPos(pos.X-handleRadius, pos.Y-handleRadius))
			dot.Resize(fyne.NewSize(2*handleRadius, 2*handleRadius))
			objects = append(objects, dot)
		}
	}
	r.objects = objects
}

func (r *editorRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *editorRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.editor)
}

func (r *editorRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *editorRenderer) MinSize() fyne.Size {
	return r.editor.MinSize()
}

func (r *editorRenderer) Destroy() {}
