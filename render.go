package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"

	"PathBoard/internal/codegen"
	"PathBoard/internal/config"
	"PathBoard/internal/state"
	"PathBoard/internal/ui"
)

// Render converts a path saved as a JSON array of segments.
type Render struct {
	Config string `short:"c" default:"pathboard.toml" desc:"Config file"`
	Format string `short:"f" default:"" desc:"Output format: code, svg or pdf (default from the output extension)"`
	Output string `short:"o" default:"" desc:"Output file (default stdout)"`
	Input  string `index:"0" desc:"Segments JSON file"`
}

func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	var segments []state.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return fmt.Errorf("decode %s: %w", cmd.Input, err)
	}

	format := cmd.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(cmd.Output), ".")
	}
	if format == "" || format == "swift" {
		format = "code"
	}

	var w io.Writer = os.Stdout
	if cmd.Output != "" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return render(w, format, segments, cfg)
}

func render(w io.Writer, format string, segments []state.Segment, cfg config.Config) error {
	if format != "code" {
		snap := state.Snapshot{Segments: segments, CanvasWidth: cfg.CanvasWidth}
		return ui.WriteExport(w, format, snap, cfg.Export)
	}
	text := codegen.Synthesize(segments, cfg.CanvasWidth, codegen.Options{
		Name:        cfg.ShapeName,
		IndentWidth: cfg.IndentWidth,
	})
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write code: %w", err)
	}
	return nil
}
