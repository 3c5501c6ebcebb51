// Package clock provides the host-advanced logical clock.
//
// Compliance windows are measured in ticks, not wall time. The clock only
// moves when the host advances it; the compliance modules never mutate it.
// Middleware captures the tick once per request so every component observes
// the same tick within one invocation.
package clock

import (
	"sync"

	"tally/pkg/domain"
)

// Clock exposes the current logical tick.
type Clock interface {
	Tick() domain.Tick
}

// Logical is a monotonically increasing tick counter controlled by the host.
type Logical struct {
	mu   sync.RWMutex
	tick domain.Tick
}

// NewLogical returns a clock starting at tick 0.
func NewLogical() *Logical {
	return &Logical{}
}

// Tick returns the current tick.
func (c *Logical) Tick() domain.Tick {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tick
}

// Advance moves the clock forward by delta ticks and returns the new tick.
func (c *Logical) Advance(delta uint64) domain.Tick {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick += domain.Tick(delta)
	return c.tick
}

// AdvanceTo moves the clock to at least the given tick. Moving backwards is
// a no-op: the clock is monotonic.
func (c *Logical) AdvanceTo(tick domain.Tick) domain.Tick {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tick > c.tick {
		c.tick = tick
	}
	return c.tick
}
