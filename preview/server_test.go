package preview

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/closset/meshpaint"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, s *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != want && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := s.ClientCount(); got != want {
		t.Fatalf("ClientCount() = %d, want %d", got, want)
	}
}

func TestPublishBroadcastsPNG(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()
	waitForClients(t, s, 1)

	frame := meshpaint.NewPixmap(8, 8)
	frame.Clear(meshpaint.Red)
	if err := s.Publish(frame); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", kind)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("frame payload does not start with the PNG signature: % x", data[:min(8, len(data))])
	}
}

func TestLateClientReceivesLastFrame(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	frame := meshpaint.NewPixmap(4, 4)
	if err := s.Publish(frame); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// A client that connects after the publish still gets the frame.
	conn := dial(t, ts)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("replayed frame is not a PNG")
	}
}

func TestPublishWithoutClients(t *testing.T) {
	s := NewServer()
	if got := s.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}
	if err := s.Publish(meshpaint.NewPixmap(2, 2)); err != nil {
		t.Errorf("Publish with no clients: %v", err)
	}
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	waitForClients(t, s, 1)
	conn.Close()
	waitForClients(t, s, 0)
}
