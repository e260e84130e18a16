package testutil

import (
	"fmt"
	"sync"
	"time"

	"riverdesk/internal/desk"
)

// StubClock is a virtual clock. Now returns a fixed time that only moves on
// Advance, and AfterFunc callbacks fire from inside Advance once their due
// time is reached. Safe for concurrent use.
type StubClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*stubTimer
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to 2025-06-15 10:30:00 in Bangkok.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2025, 6, 15, 10, 30, 0, 0, Bangkok))
}

// Bangkok is UTC+7 without depending on the host tz database.
var Bangkok = time.FixedZone("ICT", 7*60*60)

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps the clock to t without firing timers.
func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AfterFunc schedules f to run when the clock has been advanced by d.
func (c *StubClock) AfterFunc(d time.Duration, f func()) desk.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &stubTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in time order.
// Callbacks run without the clock lock held, so they may schedule or stop
// other timers.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var next *stubTimer
		for _, t := range c.timers {
			if t.done || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		next.done = true
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target

	pending := c.timers[:0]
	for _, t := range c.timers {
		if !t.done {
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *StubClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

type stubTimer struct {
	clock *StubClock
	at    time.Time
	f     func()
	done  bool
}

func (t *stubTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

var (
	_ desk.Clock     = (*StubClock)(nil)
	_ desk.Scheduler = (*StubClock)(nil)
)

// StubIDGenerator returns sequential IDs: "id-1", "id-2", etc.
type StubIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("id-%d", g.counter)
}
