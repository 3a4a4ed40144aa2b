// Package transport defines how inbound command payloads reach the interpreter.
//
// A transport owns the goroutines that call the Handler. Calls may arrive
// concurrently with each other and with connection notifications.
package transport

import "context"

// Handler receives one inbound payload per call.
type Handler interface {
	Handle(payload []byte)
}

type HandlerFunc func(payload []byte)

func (f HandlerFunc) Handle(payload []byte) { f(payload) }

// Transport delivers payloads to a Handler once started.
type Transport interface {
	// Start registers h and begins accepting clients. A returned error means
	// the transport could not be brought up.
	Start(ctx context.Context, h Handler) error
	// Stop stops accepting clients.
	Stop() error
}
