package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PathBoard/internal/codegen"
	"PathBoard/internal/state"
)

// CodePanel shows the source synthesized from the session and keeps it up to
// date.
type CodePanel struct {
	text *widget.Label
	opts codegen.Options
}

// NewCodePanel builds the panel. copyText receives the listing when the copy
// button is pressed.
func NewCodePanel(session *state.Session, opts codegen.Options, copyText func(string)) (*CodePanel, fyne.CanvasObject) {
	p := &CodePanel{text: widget.NewLabel(""), opts: opts}
	p.text.TextStyle = fyne.TextStyle{Monospace: true}

	p.update(session.Snapshot())
	session.OnChange(func(snap state.Snapshot) {
		fyne.Do(func() { p.update(snap) })
	})

	copyButton := widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), func() {
		copyText(p.Text())
	})
	return p, container.NewBorder(copyButton, nil, nil, nil, container.NewScroll(p.text))
}

func (p *CodePanel) update(snap state.Snapshot) {
	p.text.SetText(codegen.Synthesize(snap.Segments, snap.CanvasWidth, p.opts))
}

// Text returns the listing currently shown.
func (p *CodePanel) Text() string {
	return p.text.Text
}
