package ui

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PathBoard/internal/codegen"
	"PathBoard/internal/config"
	"PathBoard/internal/export"
	"PathBoard/internal/state"
)

func newTestEditor(t *testing.T) (*state.Session, *EditorWidget) {
	t.Helper()
	test.NewTempApp(t)
	session := state.NewSession(state.WithIDGenerator(state.SequentialIDs("seg")))
	return session, NewEditorWidget(session, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func click(e *EditorWidget, x, y float32, button desktop.MouseButton) {
	ev := &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: button}
	e.MouseDown(ev)
	e.MouseUp(ev)
}

func drag(e *EditorWidget, x, y float32) {
	e.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func TestEditorClickAddsSegments(t *testing.T) {
	session, editor := newTestEditor(t)

	click(editor, 100, 100, desktop.MouseButtonPrimary)
	session.SelectTool(state.ToolLine)
	click(editor, 300, 200, desktop.MouseButtonPrimary)

	segs := session.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, state.Move{}, segs[0].Kind)
	assert.Equal(t, state.Pt(100, 100), segs[0].End)
	assert.Equal(t, state.Line{}, segs[1].Kind)
	assert.Equal(t, state.Pt(100, 100), segs[1].Start)
	assert.Equal(t, state.Pt(300, 200), segs[1].End)
	assert.False(t, session.Adding())
}

func TestEditorDragWhileAdding(t *testing.T) {
	session, editor := newTestEditor(t)

	editor.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}, Button: desktop.MouseButtonPrimary})
	drag(editor, 80, 90)
	editor.DragEnd()

	segs := session.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, state.Pt(80, 90), segs[0].End)
	assert.False(t, session.Adding())
}

func TestEditorDragHandle(t *testing.T) {
	session, editor := newTestEditor(t)
	click(editor, 100, 100, desktop.MouseButtonPrimary)
	session.SelectTool(state.ToolLine)
	click(editor, 300, 300, desktop.MouseButtonPrimary)

	// grab the end of the first segment, slightly off center
	editor.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(103, 98)}, Button: desktop.MouseButtonPrimary})
	drag(editor, 150, 160)
	editor.DragEnd()

	segs := session.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, state.Pt(150, 160), segs[0].End)
	assert.Equal(t, state.Pt(150, 160), segs[1].Start, "successor follows the moved end")
	assert.Equal(t, state.Pt(300, 300), segs[1].End)
}

func TestEditorRightClickRemoves(t *testing.T) {
	session, editor := newTestEditor(t)
	click(editor, 100, 100, desktop.MouseButtonPrimary)
	session.SelectTool(state.ToolLine)
	click(editor, 300, 300, desktop.MouseButtonPrimary)
	click(editor, 500, 100, desktop.MouseButtonPrimary)

	click(editor, 300, 300, desktop.MouseButtonSecondary)

	segs := session.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, state.Pt(100, 100), segs[1].Start)
	assert.Equal(t, state.Pt(500, 100), segs[1].End)

	click(editor, 700, 700, desktop.MouseButtonSecondary)
	assert.Len(t, session.Segments(), 2, "right click away from handles does nothing")
}

func TestEditorHover(t *testing.T) {
	session, editor := newTestEditor(t)
	click(editor, 100, 100, desktop.MouseButtonPrimary)
	id := session.Segments()[0].ID

	editor.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(101, 101)}})
	seg, _ := session.Segment(id)
	assert.True(t, seg.Hovered)

	editor.MouseOut()
	seg, _ = session.Segment(id)
	assert.False(t, seg.Hovered)
}

func TestEditorScrollZooms(t *testing.T) {
	session, editor := newTestEditor(t)

	editor.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	assert.InDelta(t, 1.1, session.Zoom(), 1e-9)
	editor.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -1)})
	editor.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -1)})
	assert.InDelta(t, 0.9, session.Zoom(), 1e-9)

	assert.Equal(t, fyne.NewSize(900, 900), editor.MinSize())
}

func TestEditorZoomedClick(t *testing.T) {
	session, editor := newTestEditor(t)
	session.SetZoom(2)

	click(editor, 200, 400, desktop.MouseButtonPrimary)
	assert.Equal(t, state.Pt(100, 200), session.Segments()[0].End)
}

func TestEditorRendererObjects(t *testing.T) {
	session, editor := newTestEditor(t)
	r := test.WidgetRenderer(editor)
	assert.Len(t, r.Objects(), 2, "background and boundary only")

	click(editor, 100, 100, desktop.MouseButtonPrimary)
	session.SelectTool(state.ToolLine)
	click(editor, 300, 300, desktop.MouseButtonPrimary)
	r.Refresh()
	// one line for the Line segment, one handle per segment
	assert.Len(t, r.Objects(), 5)

	session.SelectTool(state.ToolCurve)
	click(editor, 500, 100, desktop.MouseButtonPrimary)
	r.Refresh()
	// the curve adds its flattened pieces, two guide lines and three handles
	pieces := len(export.Polyline(session.Segments()[2], flattenTolerance)) - 1
	assert.Greater(t, pieces, 1)
	assert.Len(t, r.Objects(), 5+pieces+2+3)
}

func TestToolbarSelectsTool(t *testing.T) {
	test.NewTempApp(t)
	session := state.NewSession()
	tb, obj := NewToolbar(session, func(string) {})
	require.NotNil(t, obj)

	assert.Equal(t, "Move", tb.tools.Selected)
	assert.Equal(t, "100%", tb.zoomLabel.Text)

	tb.tools.OnChanged("Quad Curve")
	assert.Equal(t, state.ToolQuadCurve, session.Tool())

	tb.zoom.OnChanged(2)
	assert.InDelta(t, 2.0, session.Zoom(), 1e-9)

	tb.sync(state.Snapshot{Tool: state.ToolCurve, Zoom: 0.5})
	assert.Equal(t, "Curve", tb.tools.Selected)
	assert.Equal(t, "50%", tb.zoomLabel.Text)
	assert.Equal(t, state.ToolQuadCurve, session.Tool(), "syncing does not dispatch")
	assert.InDelta(t, 2.0, session.Zoom(), 1e-9)
}

func TestCodePanel(t *testing.T) {
	test.NewTempApp(t)
	session := state.NewSession()
	var copied string
	panel, _ := NewCodePanel(session, codegen.DefaultOptions(), func(s string) { copied = s })

	assert.Equal(t, codegen.Synthesize(nil, state.CanvasWidth, codegen.DefaultOptions()), panel.Text())

	session.PointerMove(state.Pt(10, 20))
	panel.update(session.Snapshot())
	assert.Contains(t, panel.Text(), "path.move(")
	assert.Empty(t, copied)
}

func TestWriteExport(t *testing.T) {
	snap := state.Snapshot{
		Segments: []state.Segment{
			{ID: "1", Kind: state.Move{}, Start: state.Pt(10, 10), End: state.Pt(10, 10)},
			{ID: "2", Kind: state.Line{}, Start: state.Pt(10, 10), End: state.Pt(90, 40)},
		},
		CanvasWidth: state.CanvasWidth,
	}
	cfg := config.Default().Export

	var svg bytes.Buffer
	require.NoError(t, WriteExport(&svg, "svg", snap, cfg))
	assert.Contains(t, svg.String(), "<svg")

	var pdf bytes.Buffer
	require.NoError(t, WriteExport(&pdf, "pdf", snap, cfg))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))

	assert.Error(t, WriteExport(io.Discard, "png", snap, cfg))
}

func TestShareText(t *testing.T) {
	viewers := 0
	share := &Share{Link: "ws://10.0.0.2:8888/mirror", Viewers: func() int { return viewers }}

	assert.Equal(t, "Mirroring at ws://10.0.0.2:8888/mirror, no viewers", shareText(share))
	viewers = 1
	assert.Equal(t, "Mirroring at ws://10.0.0.2:8888/mirror, 1 viewer", shareText(share))
	viewers = 3
	assert.Equal(t, "Mirroring at ws://10.0.0.2:8888/mirror, 3 viewers", shareText(share))
}
