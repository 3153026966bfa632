package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PathBoard/internal/codegen"
	"PathBoard/internal/config"
	"PathBoard/internal/state"
)

// Share describes a running mirror for the status bar.
type Share struct {
	Link    string
	Viewers func() int
}

// statusRefresh is how often the status bar polls the viewer count.
const statusRefresh = 2 * time.Second

func shareText(share *Share) string {
	n := share.Viewers()
	switch n {
	case 0:
		return "Mirroring at " + share.Link + ", no viewers"
	case 1:
		return "Mirroring at " + share.Link + ", 1 viewer"
	default:
		return fmt.Sprintf("Mirroring at %s, %d viewers", share.Link, n)
	}
}

// RunApp opens the editor window on session and blocks until it is closed.
// With a non-nil share the status bar shows the mirror link and viewer count.
func RunApp(session *state.Session, cfg config.Config, share *Share, log *slog.Logger) {
	log = log.With("component", "ui")
	myApp := app.New()
	myWindow := myApp.NewWindow("PathBoard")
	myWindow.Resize(fyne.NewSize(1280, 800))

	editor := NewEditorWidget(session, log)

	_, code := NewCodePanel(session, codegen.Options{
		Name:        cfg.ShapeName,
		IndentWidth: cfg.IndentWidth,
	}, func(text string) {
		myWindow.Clipboard().SetContent(text)
	})

	_, toolbar := NewToolbar(session, func(format string) {
		showExport(myWindow, session, cfg.Export, format, log)
	})

	status := widget.NewLabel("Click to add points, drag handles to shape them, right-click an end point to remove it")
	if share != nil {
		status.SetText(shareText(share))
		ticker := time.NewTicker(statusRefresh)
		defer ticker.Stop()
		go func() {
			for range ticker.C {
				text := shareText(share)
				fyne.Do(func() { status.SetText(text) })
			}
		}()
	}

	split := container.NewHSplit(container.NewScroll(editor), code)
	split.Offset = 0.6
	content := container.NewBorder(toolbar, status, nil, nil, split)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
