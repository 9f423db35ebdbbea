package loop

import (
	"sync"
	"time"
)

// Clock supplies the millisecond timestamps handed to the engine
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the monotonic clock relative to its creation
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock starting at zero
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis returns milliseconds elapsed since the clock was created
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is a controllable clock for tests
type ManualClock struct {
	mu  sync.RWMutex
	now int64
}

// NewManualClock creates a manual clock at the given time
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// NowMillis returns the current mocked time
func (c *ManualClock) NowMillis() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set sets the current time
func (c *ManualClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by ms milliseconds
func (c *ManualClock) Advance(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += ms
}
