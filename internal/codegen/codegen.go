// Package codegen turns the edited path into readable Shape source text.
//
// Every point is written relative to the middle of the drawing rect and
// scaled by the shorter rect side, so the generated shape keeps its
// proportions at any size:
//
//	x: rect.midX - width * 377/1000,
//	y: rect.midY + width * 42/1000
package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cogentcore.org/core/base/indent"

	"PathBoard/internal/state"
)

type Options struct {
	// Name of the generated shape type.
	Name string

	// ExtraIndent shifts every line right by this many levels, for
	// embedding the listing in a larger one.
	ExtraIndent int

	// IndentWidth is the number of spaces per level.
	IndentWidth int
}

func DefaultOptions() Options {
	return Options{Name: "MyShape", IndentWidth: 4}
}

// Synthesize returns the source text drawing segments on a canvas of the given
// width. It is pure: the same input always yields the same text.
func Synthesize(segments []state.Segment, canvasWidth float64, opts Options) string {
	if opts.Name == "" {
		opts.Name = DefaultOptions().Name
	}

	lines := []string{
		fmt.Sprintf("struct %s: Shape {", opts.Name),
		"func path(in rect: CGRect) -> Path {",
		"let width = min(rect.size.width, rect.size.height)",
		"var path = Path()",
	}
	for _, seg := range segments {
		lines = append(lines, statement(seg, canvasWidth)...)
	}
	lines = append(lines, "return path", "}", "}")
	return Reindent(strings.Join(lines, "\n"), opts.ExtraIndent, opts.IndentWidth)
}

func statement(seg state.Segment, canvasWidth float64) []string {
	var call string
	var args [][]string
	switch k := seg.Kind.(type) {
	case state.Move:
		call = "path.move("
		args = [][]string{point("to", seg.End, canvasWidth)}
	case state.Line:
		call = "path.addLine("
		args = [][]string{point("to", seg.End, canvasWidth)}
	case state.QuadCurve:
		call = "path.addQuadCurve("
		args = [][]string{
			point("to", seg.End, canvasWidth),
			point("control", k.Control, canvasWidth),
		}
	case state.Curve:
		call = "path.addCurve("
		args = [][]string{
			point("to", seg.End, canvasWidth),
			point("control1", k.Control1, canvasWidth),
			point("control2", k.Control2, canvasWidth),
		}
	default:
		return nil
	}

	lines := []string{call}
	for i, arg := range args {
		if i < len(args)-1 {
			arg[len(arg)-1] += ","
		}
		lines = append(lines, arg...)
	}
	return append(lines, ")")
}

func point(label string, p state.Point, canvasWidth float64) []string {
	return []string{
		label + ": CGPoint(",
		"x: " + coordinate("rect.midX", xSign(p.X, canvasWidth), p.X, canvasWidth) + ",",
		"y: " + coordinate("rect.midY", ySign(p.Y, canvasWidth), p.Y, canvasWidth),
		")",
	}
}

// x and y map their comparison against the middle to a sign differently: a
// coordinate exactly in the middle is written as "- 0" for x and "+ 0" for y.
func xSign(c, canvasWidth float64) string {
	if c > canvasWidth/2 {
		return "+"
	}
	return "-"
}

func ySign(c, canvasWidth float64) string {
	if c < canvasWidth/2 {
		return "-"
	}
	return "+"
}

// coordinate rounds the distance from the middle half away from zero.
func coordinate(mid, sign string, c, canvasWidth float64) string {
	delta := int64(math.Round(math.Abs(c - canvasWidth/2)))
	return fmt.Sprintf("%s %s width * %d/%s", mid, sign, delta, strconv.FormatFloat(canvasWidth, 'f', -1, 64))
}

// Reindent re-indents text by bracket nesting. A line ending in "{" or "("
// opens a level for the lines after it; a line that is just "}", ")" or ")," closes
// one before it is written. extra levels are added to every non-empty line.
func Reindent(text string, extra, width int) string {
	if width <= 0 {
		width = DefaultOptions().IndentWidth
	}

	var b strings.Builder
	level := 0
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		line = strings.TrimSpace(line)
		switch line {
		case "}", ")", "),":
			level = max(level-1, 0)
		}
		if line != "" {
			b.WriteString(indent.Spaces(extra+level, width))
			b.WriteString(line)
		}
		b.WriteByte('\n')
		if strings.HasSuffix(line, "{") || strings.HasSuffix(line, "(") {
			level++
		}
	}
	return b.String()
}
