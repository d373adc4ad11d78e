package engine

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Clock supplies time and delayed callbacks to the scheduler
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock runs callbacks on the runtime timer goroutines
type RealClock struct{}

// NewRealClock creates a wall clock
func NewRealClock() RealClock {
	return RealClock{}
}

// Now returns the current wall time
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a controllable clock for tests.
// Callbacks run synchronously inside Advance, in deadline order.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
	seq    uint64
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// NewManualClock creates a manual clock starting at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run once the clock has advanced by d
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, deadline: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop cancels the timer. It returns false if the timer already fired or was stopped.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers scheduled by callbacks also fire if they fall inside the window.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.deadline
		next.done = true
		c.remove(next)
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) nextDue(target time.Time) *manualTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.Slice(c.timers, func(i, j int) bool {
		if c.timers[i].deadline.Equal(c.timers[j].deadline) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})
	if c.timers[0].deadline.After(target) {
		return nil
	}
	return c.timers[0]
}

func (c *ManualClock) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
