// Package testutil provides deterministic time and id sources for
// tests, so committed orders and receipts encode identically run after
// run.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// Clock is a thread-safe deterministic time source. Each Now() call
// returns the current instant and advances it by a fixed step, so
// consecutive records get distinct, reproducible timestamps.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock starting at start, advancing by step per
// Now() call.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// SequentialIDs returns an id generator producing prefix-0001,
// prefix-0002, ... Thread-safe.
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%04d", prefix, n)
	}
}
