package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/tdewolff/argp"

	"PathBoard/internal/codegen"
	"PathBoard/internal/config"
	boardnet "PathBoard/internal/net"
	"PathBoard/internal/state"
	"PathBoard/internal/ui"
)

// Editor opens the path editor window.
type Editor struct {
	Config  string `short:"c" default:"pathboard.toml" desc:"Config file"`
	Share   bool   `short:"s" desc:"Mirror the session to viewers on the local network"`
	Port    int    `short:"p" default:"0" desc:"Mirror port, overrides the config"`
	Name    string `default:"" desc:"Generated shape name, overrides the config"`
	Verbose bool   `short:"v" desc:"Debug logging"`
}

func main() {
	root := argp.NewCmd(&Editor{}, "PathBoard: draw a path, get Shape source")
	root.AddCmd(&Render{}, "render", "Render a saved path as code, SVG or PDF")
	root.AddCmd(&Browse{}, "browse", "List mirrored sessions on the local network")
	root.AddCmd(&Init{}, "init", "Write the default config file")
	root.Parse()
	root.PrintHelp()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (cmd *Editor) Run() error {
	log := newLogger(cmd.Verbose)
	slog.SetDefault(log)

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Port != 0 {
		cfg.Mirror.Port = cmd.Port
	}
	if cmd.Name != "" {
		cfg.ShapeName = cmd.Name
	}
	if cmd.Share {
		cfg.Mirror.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tool, err := cfg.Tool()
	if err != nil {
		return err
	}
	session := state.NewSession(
		state.WithCanvasWidth(cfg.CanvasWidth),
		state.WithLogger(log),
	)
	session.SelectTool(tool)

	var share *ui.Share
	if cfg.Mirror.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		share, err = startMirror(ctx, session, cfg, log)
		if err != nil {
			return err
		}
	}

	ui.RunApp(session, cfg, share, log)
	return nil
}

// startMirror serves the session to websocket viewers and returns what the
// status bar shows about it.
func startMirror(ctx context.Context, session *state.Session, cfg config.Config, log *slog.Logger) (*ui.Share, error) {
	opts := codegen.Options{Name: cfg.ShapeName, IndentWidth: cfg.IndentWidth}
	hub := boardnet.NewHub(log)
	boardnet.Mirror(session, hub, func(snap state.Snapshot) string {
		return codegen.Synthesize(snap.Segments, snap.CanvasWidth, opts)
	})

	go func() {
		if err := boardnet.Serve(ctx, ":"+strconv.Itoa(cfg.Mirror.Port), hub); err != nil {
			log.Error("mirror stopped", "err", err)
		}
	}()

	if cfg.Mirror.Advertise {
		server, err := boardnet.Advertise("", cfg.Mirror.Port)
		if err != nil {
			return nil, fmt.Errorf("advertise mirror: %w", err)
		}
		go func() {
			<-ctx.Done()
			server.Shutdown()
		}()
	}

	link := boardnet.MirrorURL(boardnet.OutgoingIP(), cfg.Mirror.Port)
	log.Info("mirroring session", "url", link)
	return &ui.Share{Link: link, Viewers: hub.Viewers}, nil
}

// Browse lists the mirrors advertised on the local network.
type Browse struct{}

func (cmd *Browse) Run() error {
	found := 0
	err := boardnet.Browse(func(addr string) {
		found++
		fmt.Println("ws://" + addr + boardnet.MirrorPath)
	})
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if found == 0 {
		fmt.Println("no mirrored sessions found")
	}
	return nil
}

// Init writes the default settings to a config file.
type Init struct {
	Force  bool   `short:"f" desc:"Overwrite an existing file"`
	Output string `index:"0" default:"pathboard.toml" desc:"Config file"`
}

func (cmd *Init) Run() error {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		return fmt.Errorf("%s exists, use --force to overwrite", cmd.Output)
	}
	if err := config.Default().Save(cmd.Output); err != nil {
		return err
	}
	fmt.Println("wrote", cmd.Output)
	return nil
}
