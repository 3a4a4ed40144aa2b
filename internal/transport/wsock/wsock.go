// Package wsock accepts command payloads over websocket. Each inbound message,
// text or binary, is one payload. Nothing is written back to the client.
package wsock

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/blestrip/internal/diagnostics"
	"github.com/coreman2200/blestrip/internal/transport"
)

// MaxPayload bounds a single inbound message.
const MaxPayload = 512

type Server struct {
	log      zerolog.Logger
	diag     diagnostics.Reporter
	upgrader websocket.Upgrader

	mu      sync.Mutex
	handler transport.Handler
	clients map[*websocket.Conn]bool
	wg      sync.WaitGroup
}

func New(log zerolog.Logger, diag diagnostics.Reporter) *Server {
	if diag == nil {
		diag = diagnostics.Discard
	}
	return &Server{
		log:      log,
		diag:     diag,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  map[*websocket.Conn]bool{},
	}
}

func (s *Server) Start(ctx context.Context, h transport.Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h == nil {
		return errors.New("wsock: nil handler")
	}
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
	return nil
}

// Stop disconnects every client and waits for their readers to finish.
// Later upgrades are refused.
func (s *Server) Stop() error {
	s.mu.Lock()
	s.handler = nil
	for c := range s.clients {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h == nil {
		http.Error(w, "not accepting commands", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(MaxPayload)
	peer := r.RemoteAddr

	s.mu.Lock()
	if s.handler == nil {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[conn] = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.link(diagnostics.LinkConnect, "Client connected", peer)

	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
			s.link(diagnostics.LinkDisconnect, "Client disconnected", peer)
		}()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.Handle(msg)
		}
	}()
}

func (s *Server) link(code, summary, peer string) {
	s.log.Info().Str("peer", peer).Msg(summary)
	s.diag.Report(diagnostics.Diagnostic{
		Severity: diagnostics.Info,
		Code:     code,
		Summary:  summary,
		Evidence: map[string]any{diagnostics.EvidencePeer: peer, diagnostics.EvidenceTransport: "ws"},
	})
}
