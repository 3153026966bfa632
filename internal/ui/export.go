package ui

import (
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"PathBoard/internal/config"
	"PathBoard/internal/export"
	"PathBoard/internal/state"
)

// WriteExport writes the session's path to w in the given format, "pdf" or
// "svg", using the export settings of cfg.
func WriteExport(w io.Writer, format string, snap state.Snapshot, cfg config.ExportConfig) error {
	switch format {
	case "pdf":
		opts := export.DefaultPDFOptions()
		opts.Unit = cfg.PDFUnit
		opts.PageSize = cfg.PDFPageSize
		opts.LineWidth = cfg.LineWidth
		opts.FitToPath = cfg.FitToPath
		return export.PDF(w, snap.Segments, snap.CanvasWidth, opts)
	case "svg":
		opts := export.DefaultSVGOptions()
		opts.FitToPath = cfg.FitToPath
		return export.SVG(w, snap.Segments, snap.CanvasWidth, opts)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// showExport asks for a destination and saves the path there.
func showExport(win fyne.Window, session *state.Session, cfg config.ExportConfig, format string, log *slog.Logger) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := WriteExport(writer, format, session.Snapshot(), cfg); err != nil {
			log.Error("export failed", "format", format, "uri", writer.URI().String(), "err", err)
			dialog.ShowError(err, win)
			return
		}
		log.Info("exported", "format", format, "uri", writer.URI().String())
	}, win)
	save.SetFileName("shape." + format)
	save.SetFilter(storage.NewExtensionFileFilter([]string{"." + format}))
	save.Show()
}
