package strip

import (
	"fmt"
	"sync"
)

// Guard serializes access to a Driver. Only one caller holds the lease at a
// time; others block in WithExclusiveAccess until it is released.
type Guard struct {
	mu  sync.Mutex
	drv Driver
}

func NewGuard(d Driver) *Guard {
	return &Guard{drv: d}
}

// WithExclusiveAccess runs fn while holding the lease. The lease is released
// on every exit path. A panic inside fn is returned as a hardware fault.
// Not re-entrant: calling it again from fn deadlocks.
func (g *Guard) WithExclusiveAccess(fn func(Driver) error) (err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic while holding strip: %v", ErrHardwareFault, r)
		}
	}()
	return fn(g.drv)
}

// Len reports the pixel count of the guarded driver. It does not take the lease.
func (g *Guard) Len() int {
	return g.drv.Len()
}

// Close closes the driver under the lease, so it never races an in-flight write.
func (g *Guard) Close() error {
	return g.WithExclusiveAccess(func(d Driver) error {
		return d.Close()
	})
}
