package net

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PathBoard/internal/state"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	hub := NewHub(discardLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	require.NoError(t, hub.Publish(Message{Type: "snapshot", Code: "first"}))
	require.NoError(t, hub.Publish(Message{Type: "snapshot", Code: "second"}))

	conn := dial(t, srv)
	assert.Equal(t, "second", readMessage(t, conn).Code)
}

func TestMirrorFollowsSession(t *testing.T) {
	hub := NewHub(discardLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	session := state.NewSession(state.WithIDGenerator(state.SequentialIDs("s")))
	Mirror(session, hub, func(snap state.Snapshot) string {
		return strings.Repeat("x", len(snap.Segments))
	})

	conn := dial(t, srv)
	initial := readMessage(t, conn)
	assert.Equal(t, "snapshot", initial.Type)
	assert.Empty(t, initial.Segments)
	assert.Equal(t, "move", initial.Tool)
	assert.Equal(t, 1.0, initial.Zoom)
	assert.Equal(t, 1, hub.Viewers())

	session.SelectTool(state.ToolCurve)
	msg := readMessage(t, conn)
	assert.Equal(t, "curve", msg.Tool)

	session.PointerMove(state.Pt(40, 50))
	msg = readMessage(t, conn)
	require.Len(t, msg.Segments, 1)
	assert.Equal(t, "s-1", msg.Segments[0].ID)
	assert.Equal(t, state.Move{}, msg.Segments[0].Kind)
	assert.Equal(t, state.Pt(40, 50), msg.Segments[0].End)
	assert.Equal(t, "x", msg.Code)
}

func TestMirrorInitialSnapshotKeepsNewerMessage(t *testing.T) {
	hub := NewHub(discardLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	// a change published between registering and the first publish
	require.NoError(t, hub.Publish(Message{Type: "snapshot", Code: "newer"}))
	Mirror(state.NewSession(), hub, func(state.Snapshot) string { return "initial" })

	conn := dial(t, srv)
	assert.Equal(t, "newer", readMessage(t, conn).Code)
}

func TestHubFirstPublishOnlyOnce(t *testing.T) {
	hub := NewHub(discardLogger())
	require.NoError(t, hub.publish(Message{Type: "snapshot", Code: "a"}, true))
	require.NoError(t, hub.publish(Message{Type: "snapshot", Code: "b"}, true))
	assert.Contains(t, string(hub.latest), `"code":"a"`)

	require.NoError(t, hub.Publish(Message{Type: "snapshot", Code: "c"}))
	assert.Contains(t, string(hub.latest), `"code":"c"`)
}

func TestHubIgnoresViewerInput(t *testing.T) {
	hub := NewHub(discardLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	require.NoError(t, hub.Publish(Message{Type: "snapshot", Code: "a"}))

	conn := dial(t, srv)
	readMessage(t, conn)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"clear"}`)))

	require.NoError(t, hub.Publish(Message{Type: "snapshot", Code: "b"}))
	assert.Equal(t, "b", readMessage(t, conn).Code)
}

func TestSnapshotMessage(t *testing.T) {
	msg := SnapshotMessage(state.Snapshot{Tool: state.ToolQuadCurve, Zoom: 2}, "code")
	assert.Equal(t, Message{Type: "snapshot", Segments: []state.Segment{}, Tool: "quadCurve", Zoom: 2, Code: "code"}, msg)
}

func TestMirrorURL(t *testing.T) {
	assert.Equal(t, "ws://192.168.1.4:8888/mirror", MirrorURL("192.168.1.4", 8888))
}
