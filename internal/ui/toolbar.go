package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PathBoard/internal/state"
)

var toolLabels = map[state.Tool]string{
	state.ToolMove:      "Move",
	state.ToolLine:      "Line",
	state.ToolQuadCurve: "Quad Curve",
	state.ToolCurve:     "Curve",
}

func toolForLabel(label string) (state.Tool, bool) {
	for tool, l := range toolLabels {
		if l == label {
			return tool, true
		}
	}
	return state.ToolMove, false
}

func zoomText(level float64) string {
	return fmt.Sprintf("%.0f%%", level*100)
}

// Toolbar holds the tool picker and the zoom controls and follows the
// session when it changes elsewhere.
type Toolbar struct {
	session *state.Session

	tools     *widget.RadioGroup
	zoom      *widget.Slider
	zoomLabel *widget.Label

	// set while the widgets are updated from the session, so their change
	// callbacks do not dispatch back
	syncing bool
}

// NewToolbar builds the toolbar. export is called with "pdf" or "svg".
func NewToolbar(session *state.Session, export func(format string)) (*Toolbar, fyne.CanvasObject) {
	tb := &Toolbar{session: session}

	labels := make([]string, len(state.Tools))
	for i, tool := range state.Tools {
		labels[i] = toolLabels[tool]
	}
	tb.tools = widget.NewRadioGroup(labels, func(label string) {
		if tb.syncing {
			return
		}
		if tool, ok := toolForLabel(label); ok {
			session.SelectTool(tool)
		}
	})
	tb.tools.Horizontal = true
	tb.tools.Required = true

	tb.zoom = widget.NewSlider(state.MinZoom, state.MaxZoom)
	tb.zoom.Step = state.ZoomStep
	tb.zoom.OnChanged = func(level float64) {
		if tb.syncing {
			return
		}
		session.SetZoom(level)
	}
	tb.zoomLabel = widget.NewLabel("")

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ZoomOutIcon(), session.DecrementZoom),
		widget.NewToolbarAction(theme.ZoomInIcon(), session.IncrementZoom),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), session.Clear),
	)
	exports := container.NewHBox(
		widget.NewButtonWithIcon("PDF", theme.DocumentSaveIcon(), func() { export("pdf") }),
		widget.NewButtonWithIcon("SVG", theme.DocumentSaveIcon(), func() { export("svg") }),
	)

	tb.sync(session.Snapshot())
	session.OnChange(func(snap state.Snapshot) {
		fyne.Do(func() { tb.sync(snap) })
	})

	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), tb.zoom)
	return tb, container.NewHBox(
		widget.NewLabel("Tool:"),
		tb.tools,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		sliderContainer,
		tb.zoomLabel,
		actions,
		layout.NewSpacer(),
		exports,
	)
}

func (tb *Toolbar) sync(snap state.Snapshot) {
	tb.syncing = true
	defer func() { tb.syncing = false }()

	if label := toolLabels[snap.Tool]; tb.tools.Selected != label {
		tb.tools.SetSelected(label)
	}
	if tb.zoom.Value != snap.Zoom {
		tb.zoom.SetValue(snap.Zoom)
	}
	tb.zoomLabel.SetText(zoomText(snap.Zoom))
}
