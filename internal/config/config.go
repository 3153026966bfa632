// Package config loads the editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"PathBoard/internal/state"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	// CanvasWidth is the side of the square canvas in stored coordinates.
	CanvasWidth float64 `toml:"canvas_width"`

	// ShapeName names the type in the generated source.
	ShapeName string `toml:"shape_name"`

	IndentWidth int `toml:"indent_width"`

	// DefaultTool is the tool selected at startup, by name ("move", "line",
	// "quadCurve" or "curve").
	DefaultTool string `toml:"default_tool"`

	Mirror MirrorConfig `toml:"mirror"`
	Export ExportConfig `toml:"export"`
}

type MirrorConfig struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

type ExportConfig struct {
	PDFUnit     string  `toml:"pdf_unit"`
	PDFPageSize string  `toml:"pdf_page_size"`
	LineWidth   float64 `toml:"line_width"`
	FitToPath   bool    `toml:"fit_to_path"`
}

func Default() Config {
	return Config{
		CanvasWidth: state.CanvasWidth,
		ShapeName:   "MyShape",
		IndentWidth: 4,
		DefaultTool: state.ToolMove.String(),
		Mirror: MirrorConfig{
			Port:      8888,
			Advertise: true,
		},
		Export: ExportConfig{
			PDFUnit:     "mm",
			PDFPageSize: "A4",
			LineWidth:   0.5,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Tool returns the startup tool named by DefaultTool.
func (c Config) Tool() (state.Tool, error) {
	tool, err := state.ParseTool(c.DefaultTool)
	if err != nil {
		return tool, fmt.Errorf("%w: default_tool: %w", ErrInvalid, err)
	}
	return tool, nil
}

func (c Config) Validate() error {
	if _, err := c.Tool(); err != nil {
		return err
	}
	switch {
	case c.CanvasWidth <= 0:
		return fmt.Errorf("%w: canvas_width must be positive, got %g", ErrInvalid, c.CanvasWidth)
	case c.ShapeName == "":
		return fmt.Errorf("%w: shape_name is empty", ErrInvalid)
	case c.IndentWidth < 1:
		return fmt.Errorf("%w: indent_width must be at least 1, got %d", ErrInvalid, c.IndentWidth)
	case c.Mirror.Port < 0 || c.Mirror.Port > 65535:
		return fmt.Errorf("%w: mirror port %d out of range", ErrInvalid, c.Mirror.Port)
	case c.Export.LineWidth <= 0:
		return fmt.Errorf("%w: export line_width must be positive", ErrInvalid)
	}
	return nil
}

// Save writes the config as TOML, replacing any file at path.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
