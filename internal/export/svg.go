package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tdewolff/canvas"

	"PathBoard/internal/state"
)

// framePadding surrounds a path cropped to its bounds.
const framePadding = 10.0

// Frame returns the area of stored coordinates an export shows: the whole
// canvas, or the padded bounds of the drawn path when fit is set and
// something is drawn.
func Frame(segments []state.Segment, canvasWidth float64, fit bool) canvas.Rect {
	canvasRect := canvas.Rect{X1: canvasWidth, Y1: canvasWidth}
	if !fit {
		return canvasRect
	}
	p := Path(segments)
	if p.Empty() {
		return canvasRect
	}
	return p.Bounds().Expand(framePadding)
}

// SVGPathData returns the path as the d attribute of an SVG path element.
func SVGPathData(segments []state.Segment) string {
	return Path(segments).ToSVG()
}

type SVGOptions struct {
	StrokeWidth float64
	FitToPath   bool
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{StrokeWidth: 2}
}

// SVG writes a standalone SVG document showing the stroked path.
func SVG(w io.Writer, segments []state.Segment, canvasWidth float64, opts SVGOptions) error {
	frame := Frame(segments, canvasWidth, opts.FitToPath)
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n"+
			`<path d="%s" fill="none" stroke="black" stroke-width="%s"/>`+"\n"+
			"</svg>\n",
		num(frame.X0), num(frame.Y0), num(frame.W()), num(frame.H()),
		SVGPathData(segments), num(opts.StrokeWidth))
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
