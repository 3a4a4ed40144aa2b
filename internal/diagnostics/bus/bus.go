// Package bus fans diagnostics out to subscribers over kelindar/event.
package bus

import (
	"sync"
	"time"

	"github.com/kelindar/event"

	"github.com/coreman2200/blestrip/internal/diagnostics"
)

// Bus is a diagnostics.Reporter that delivers every report to each subscriber
// asynchronously, in publish order per subscriber.
type Bus struct {
	dispatcher *event.Dispatcher

	mu     sync.Mutex
	unsubs []func()
	closed bool
}

func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Report stamps d with the current time if unset and publishes it.
func (b *Bus) Report(d diagnostics.Diagnostic) {
	if d.Time.IsZero() {
		d.Time = time.Now()
	}
	event.Publish(b.dispatcher, d)
}

// Subscribe registers handler and returns a function removing it.
func (b *Bus) Subscribe(handler func(diagnostics.Diagnostic)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	var once sync.Once
	cancel := event.Subscribe(b.dispatcher, handler)
	unsub := func() { once.Do(cancel) }
	b.unsubs = append(b.unsubs, unsub)
	return unsub
}

// Close removes all subscribers. Reports after Close are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	unsubs := b.unsubs
	b.unsubs = nil
	b.closed = true
	b.mu.Unlock()
	for _, u := range unsubs {
		u()
	}
}
