// Package stream pushes diagnostics to websocket clients as JSON text frames.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/blestrip/internal/diagnostics"
)

const writeWait = 200 * time.Millisecond

type Stream struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func New(log zerolog.Logger) *Stream {
	return &Stream{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  map[*websocket.Conn]bool{},
	}
}

// ServeHTTP upgrades the request and keeps the client until it goes away.
// Inbound messages are read and discarded.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Push sends d to every connected client. Slow or broken clients are dropped.
func (s *Stream) Push(d diagnostics.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		s.log.Debug().Err(err).Str("code", d.Code).Msg("marshal diagnostic")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.log.Debug().Err(err).Msg("write diagnostic")
			delete(s.clients, c)
			c.Close()
		}
	}
}

// Clients is the number of connected clients.
func (s *Stream) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every client.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}
