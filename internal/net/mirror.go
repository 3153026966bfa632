package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"PathBoard/internal/state"
)

// MirrorPath is where Serve exposes the hub.
const MirrorPath = "/mirror"

// Message is what viewers of a mirrored session receive.
type Message struct {
	Type     string          `json:"type"`
	Segments []state.Segment `json:"segments"`
	Tool     string          `json:"tool"`
	Zoom     float64         `json:"zoom"`
	Code     string          `json:"code"`
}

// SnapshotMessage builds the message for a session snapshot and the code
// synthesized from it.
func SnapshotMessage(snap state.Snapshot, code string) Message {
	segments := snap.Segments
	if segments == nil {
		segments = []state.Segment{}
	}
	return Message{
		Type:     "snapshot",
		Segments: segments,
		Tool:     snap.Tool.String(),
		Zoom:     snap.Zoom,
		Code:     code,
	}
}

// Hub serves a read-only live view of the session to websocket viewers. Each
// published message goes to every viewer; a viewer connecting later first
// receives the latest one.
type Hub struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	latest []byte
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:   log.With("component", "mirror"),
		conns: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	h.add(conn)
	defer h.remove(conn)

	// viewers are read-only; reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Info("viewer disconnected", "remote", conn.RemoteAddr().String(), "err", err)
			return
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	h.log.Info("viewer connected", "remote", conn.RemoteAddr().String())
	if h.latest != nil {
		if err := conn.WriteMessage(websocket.TextMessage, h.latest); err != nil {
			h.log.Warn("initial send failed", "remote", conn.RemoteAddr().String(), "err", err)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	conn.Close()
}

// Publish sends msg to every connected viewer and keeps it for viewers that
// connect later.
func (h *Hub) Publish(msg Message) error {
	return h.publish(msg, false)
}

// publish sends msg like Publish. With onlyFirst set it is dropped when
// anything was published before, so a stale first message never replaces a
// newer one.
func (h *Hub) publish(msg Message, onlyFirst bool) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msg.Type, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if onlyFirst && h.latest != nil {
		return nil
	}
	h.latest = data
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warn("send failed", "remote", conn.RemoteAddr().String(), "err", err)
		}
	}
	return nil
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

// Mirror publishes every change of session to the hub, with the code text
// produced by synthesize. The current state is published first unless a
// change got there before it.
func Mirror(session *state.Session, hub *Hub, synthesize func(state.Snapshot) string) {
	message := func(snap state.Snapshot) Message {
		return SnapshotMessage(snap, synthesize(snap))
	}
	session.OnChange(func(snap state.Snapshot) {
		if err := hub.Publish(message(snap)); err != nil {
			hub.log.Error("publish failed", "err", err)
		}
	})
	if err := hub.publish(message(session.Snapshot()), true); err != nil {
		hub.log.Error("publish failed", "err", err)
	}
}

// Serve exposes hub at MirrorPath on addr until ctx is done.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(MirrorPath, hub)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		hub.Close()
		srv.Close()
	}()

	hub.log.Info("mirror listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror server: %w", err)
	}
	return nil
}
