// Package preview streams composited frames to browsers over WebSocket.
//
// Each published frame is encoded to PNG once and broadcast as a binary
// message to every connected client. Newly connected clients immediately
// receive the most recent frame.
package preview

import (
	"bytes"
	"image/png"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/closset/meshpaint"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server broadcasts painted frames to WebSocket clients. Zero value is not
// usable; construct with NewServer.
type Server struct {
	mu        sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
	lastFrame []byte

	log *slog.Logger
}

// NewServer returns a server with no connected clients.
func NewServer() *Server {
	return &Server{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		log:     meshpaint.Logger(),
	}
}

// Handler returns the HTTP handler that upgrades connections and keeps
// them subscribed until they disconnect.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleWebSocket)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	last := s.lastFrame
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	s.log.Info("preview client connected", "remote", r.RemoteAddr)

	if last != nil {
		connMu.Lock()
		err := conn.WriteMessage(websocket.BinaryMessage, last)
		connMu.Unlock()
		if err != nil {
			return
		}
	}

	// Drain incoming messages so pings and close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish encodes the frame as PNG and broadcasts it. Clients whose writes
// fail are dropped.
func (s *Server) Publish(frame *meshpaint.Pixmap) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.ToImage()); err != nil {
		return err
	}
	data := buf.Bytes()

	s.mu.Lock()
	s.lastFrame = data
	s.mu.Unlock()

	s.mu.RLock()
	var failed []*websocket.Conn
	for conn, connMu := range s.clients {
		connMu.Lock()
		err := conn.WriteMessage(websocket.BinaryMessage, data)
		connMu.Unlock()
		if err != nil {
			failed = append(failed, conn)
		}
	}
	s.mu.RUnlock()

	if len(failed) > 0 {
		s.mu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
			conn.Close()
		}
		s.mu.Unlock()
		s.log.Info("dropped preview clients", "count", len(failed))
	}
	return nil
}

// ClientCount reports the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
