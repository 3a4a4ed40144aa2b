// Package striptest provides an in-memory strip.Driver for tests.
package striptest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/coreman2200/blestrip/internal/strip"
)

// Span is the time one WriteBlocking call spent inside the driver.
type Span struct {
	Enter, Exit time.Time
}

// Recorder captures every frame written to it. It does not lock around
// writes itself, so overlapping calls are visible through MaxInFlight.
type Recorder struct {
	N int
	// Delay is slept inside each write to widen the critical section.
	Delay time.Duration
	// Fail, when set, is consulted before each write; a non-nil result is
	// returned as a hardware fault and the frame is not recorded.
	Fail func(call int) error

	inflight    atomic.Int32
	maxInflight atomic.Int32
	calls       atomic.Int32

	mu     sync.Mutex
	frames [][]byte
	spans  []Span
	closed bool
}

func New(n int) *Recorder {
	return &Recorder{N: n}
}

func (r *Recorder) Len() int { return r.N }

func (r *Recorder) WriteBlocking(encoded []byte) error {
	enter := time.Now()
	cur := r.inflight.Add(1)
	defer r.inflight.Add(-1)
	for {
		m := r.maxInflight.Load()
		if cur <= m || r.maxInflight.CompareAndSwap(m, cur) {
			break
		}
	}
	call := int(r.calls.Add(1))

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return strip.ErrClosed
	}
	if err := strip.CheckLength(encoded, r.N); err != nil {
		return err
	}
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}
	if r.Fail != nil {
		if err := r.Fail(call); err != nil {
			return strip.Fault("record", err)
		}
	}

	buf := append([]byte(nil), encoded...)
	r.mu.Lock()
	r.frames = append(r.frames, buf)
	r.spans = append(r.spans, Span{Enter: enter, Exit: time.Now()})
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Frames returns copies of the successfully written frames in write order.
func (r *Recorder) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.frames))
	for i, f := range r.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// Spans returns the enter/exit times of the successful writes.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Span(nil), r.spans...)
}

// Calls counts every WriteBlocking invocation, failed ones included.
func (r *Recorder) Calls() int { return int(r.calls.Load()) }

// MaxInFlight is the highest number of concurrent WriteBlocking calls seen.
func (r *Recorder) MaxInFlight() int { return int(r.maxInflight.Load()) }

func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Overlapping reports whether any two spans intersect in time.
func Overlapping(spans []Span) bool {
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.Enter.Before(b.Exit) && b.Enter.Before(a.Exit) {
				return true
			}
		}
	}
	return false
}
