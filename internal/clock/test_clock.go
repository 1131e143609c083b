package clock

import (
	"sync"
	"time"
)

// TestClock is a Clock that only moves when told to. Reads are counted so
// tests can assert how many times a component asked for the time.
type TestClock struct {
	mu    sync.RWMutex
	now   time.Time
	reads int
}

func NewTestClock(now ...time.Time) *TestClock {
	if len(now) == 0 {
		now = append(now, time.Now().Round(0))
	}
	return &TestClock{mu: sync.RWMutex{}, now: now[0]}
}

var _ Clock = (*TestClock)(nil)

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return c.now
}

func (c *TestClock) Tick(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)

	return c.now
}

func (c *TestClock) Set(t time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t

	return c.now
}

// Reads reports how many times Now has been called.
func (c *TestClock) Reads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reads
}
