package clock

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time
	Now() time.Time
}

// Real uses the actual system time
type Real struct{}

// NewReal creates a new Real clock
func NewReal() *Real {
	return &Real{}
}

// Now returns the current system time in UTC
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// Simulated allows time manipulation for testing.
// It is safe for concurrent use.
type Simulated struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulated creates a new Simulated clock starting at the given time
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{current: start}
}

// Now returns the simulated current time
func (c *Simulated) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the simulated time forward by the given duration
func (c *Simulated) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// Set jumps the simulated time to t
func (c *Simulated) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
