package state

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/core/base/ordmap"
)

// Snapshot is a read-only copy of the session state handed to the
// presentation layer.
type Snapshot struct {
	Segments    []Segment
	Tool        Tool
	Zoom        float64
	Adding      bool
	CanvasWidth float64
}

// Session is the path being edited: the ordered, id-keyed segments together
// with the selected tool, the zoom level and the add-mode flag.
//
// All mutation goes through Dispatch, which processes one command (and the
// follow-up commands it issues) at a time under a single lock.
type Session struct {
	mu        sync.Mutex
	segments  *ordmap.Map[string, Segment]
	tool      Tool
	zoom      Zoom
	adding    bool
	width     float64
	nextID    IDGenerator
	log       *slog.Logger
	observers []func(Snapshot)
}

type Option func(*Session)

// WithIDGenerator replaces the uuid based segment ids.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Session) {
		s.nextID = gen
	}
}

// WithCanvasWidth sets the width used for every canvas bounds check.
func WithCanvasWidth(width float64) Option {
	return func(s *Session) {
		s.width = width
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		segments: ordmap.New[string, Segment](),
		tool:     ToolMove,
		zoom:     NewZoom(),
		width:    CanvasWidth,
		nextID:   UUIDGenerator,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "session")
	return s
}

// OnChange registers fn to be called with a fresh snapshot after every
// dispatch that changed the session. Callbacks run outside the session lock.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Dispatch applies the commands in order. Each command runs to completion,
// follow-ups included, before the next one starts.
func (s *Session) Dispatch(cmds ...Command) {
	s.mu.Lock()
	changed := false
	for _, cmd := range cmds {
		queue := []Command{cmd}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			c, followUps := next.apply(s)
			changed = changed || c
			queue = append(queue, followUps...)
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshot()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Segments:    s.segments.Values(),
		Tool:        s.tool,
		Zoom:        s.zoom.Level(),
		Adding:      s.adding,
		CanvasWidth: s.width,
	}
}

// Segments returns a copy of the segments in draw order.
func (s *Session) Segments() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.segments.Values()
}

// Segment returns the segment with the given id.
func (s *Session) Segment(id string) (Segment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.segments.ValueByKeyTry(id)
}

func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom.Level()
}

func (s *Session) Adding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adding
}

func (s *Session) CanvasWidth() float64 {
	return s.width
}

func (s *Session) SelectTool(tool Tool) { s.Dispatch(SelectTool{Tool: tool}) }
func (s *Session) PointerMove(screen Point) { s.Dispatch(PointerMove{At: screen}) }
func (s *Session) PointerUp() { s.Dispatch(PointerUp{}) }
func (s *Session) UpdateGuide(id string, g Guide) { s.Dispatch(UpdateGuide{ID: id, Guide: g}) }
func (s *Session) RemoveSegment(id string) { s.Dispatch(RemoveSegment{ID: id}) }
func (s *Session) SetHovered(id string, on bool) { s.Dispatch(SetHovered{ID: id, Hovered: on}) }
func (s *Session) Clear() { s.Dispatch(Clear{}) }
func (s *Session) SetZoom(level float64) { s.Dispatch(SetZoom{Level: level}) }
func (s *Session) IncrementZoom() { s.Dispatch(IncrementZoom{}) }
func (s *Session) DecrementZoom() { s.Dispatch(DecrementZoom{}) }
func (s *Session) GestureChanged(raw float64) { s.Dispatch(GestureChanged{Scale: raw}) }
func (s *Session) GestureEnded() { s.Dispatch(GestureEnded{}) }

func (s *Session) last() (Segment, bool) {
	n := s.segments.Len()
	if n == 0 {
		return Segment{}, false
	}
	return s.segments.ValueByIndex(n - 1), true
}
