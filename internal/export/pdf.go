package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"PathBoard/internal/state"
)

type PDFOptions struct {
	Unit      string  // "mm", "pt", "cm" or "in"
	PageSize  string  // "A4", "Letter", ...
	Margin    float64 // in Unit
	LineWidth float64 // in Unit

	// FitToPath crops to the path bounds instead of the whole canvas.
	FitToPath bool
}

func DefaultPDFOptions() PDFOptions {
	return PDFOptions{Unit: "mm", PageSize: "A4", Margin: 10, LineWidth: 0.5}
}

// traced reports whether any segment draws something.
func traced(segments []state.Segment) bool {
	for _, seg := range segments {
		if _, ok := seg.Kind.(state.Move); !ok {
			return true
		}
	}
	return false
}

// PDF draws the path as a single stroked outline on one page, scaled to fit
// inside the margins, and writes the document to w.
func PDF(w io.Writer, segments []state.Segment, canvasWidth float64, opts PDFOptions) error {
	pdf := gofpdf.New("P", opts.Unit, opts.PageSize, "")
	pdf.SetCompression(false)
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(opts.LineWidth)

	frame := Frame(segments, canvasWidth, opts.FitToPath)
	pageW, pageH := pdf.GetPageSize()
	scale := min((pageW-2*opts.Margin)/frame.W(), (pageH-2*opts.Margin)/frame.H())
	xy := func(p state.Point) (float64, float64) {
		return opts.Margin + (p.X-frame.X0)*scale, opts.Margin + (p.Y-frame.Y0)*scale
	}

	if traced(segments) {
		for i, seg := range segments {
			if i == 0 {
				pdf.MoveTo(xy(seg.Start))
			}
			switch k := seg.Kind.(type) {
			case state.Move:
				pdf.MoveTo(xy(seg.End))
			case state.Line:
				pdf.LineTo(xy(seg.End))
			case state.QuadCurve:
				cx, cy := xy(k.Control)
				x, y := xy(seg.End)
				pdf.CurveTo(cx, cy, x, y)
			case state.Curve:
				cx0, cy0 := xy(k.Control1)
				cx1, cy1 := xy(k.Control2)
				x, y := xy(seg.End)
				pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
			}
		}
		pdf.DrawPath("D")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
