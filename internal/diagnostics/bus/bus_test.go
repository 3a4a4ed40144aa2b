package bus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/blestrip/internal/diagnostics"
)

type sink struct {
	mu  sync.Mutex
	got []diagnostics.Diagnostic
}

func (s *sink) add(d diagnostics.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, d)
}

func (s *sink) codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.got))
	for i, d := range s.got {
		out[i] = d.Code
	}
	return out
}

func TestBusDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	s := &sink{}
	b.Subscribe(s.add)

	b.Report(diagnostics.Diagnostic{Code: diagnostics.LinkConnect})
	b.Report(diagnostics.Diagnostic{Code: diagnostics.CommandOn})
	b.Report(diagnostics.Diagnostic{Code: diagnostics.LinkDisconnect})

	want := []string{diagnostics.LinkConnect, diagnostics.CommandOn, diagnostics.LinkDisconnect}
	assert.Eventually(t, func() bool { return len(s.codes()) == len(want) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, s.codes())
}

func TestBusStampsTime(t *testing.T) {
	b := New()
	defer b.Close()

	s := &sink{}
	b.Subscribe(s.add)
	b.Report(diagnostics.Diagnostic{Code: diagnostics.CommandOff})

	assert.Eventually(t, func() bool { return len(s.codes()) == 1 }, time.Second, 5*time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.False(t, s.got[0].Time.IsZero())
}

func TestBusUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	kept, dropped := &sink{}, &sink{}
	b.Subscribe(kept.add)
	unsub := b.Subscribe(dropped.add)
	unsub()
	unsub()

	b.Report(diagnostics.Diagnostic{Code: diagnostics.CommandUnknown})
	assert.Eventually(t, func() bool { return len(kept.codes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, dropped.codes())
}

func TestBusSubscribeAfterClose(t *testing.T) {
	b := New()
	b.Close()
	unsub := b.Subscribe(func(diagnostics.Diagnostic) {})
	assert.NotNil(t, unsub)
	unsub()
}
