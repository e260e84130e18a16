package desk

import (
	"context"
	"sync"
	"time"
)

// LongPressDuration is how long a press must be held before it commits.
const LongPressDuration = 2 * time.Second

// LongPress is a hold-to-confirm gesture. Press arms a timer; Release before
// it expires cancels with no effect. The action fires at most once per
// press, and a Release that happens before the timer fires always wins even
// if the timer callback is already running.
type LongPress struct {
	sched    Scheduler
	duration time.Duration
	action   func()

	mu    sync.Mutex
	gen   uint64
	armed bool
	timer Timer
}

func NewLongPress(sched Scheduler, duration time.Duration, action func()) *LongPress {
	return &LongPress{sched: sched, duration: duration, action: action}
}

// Press starts the countdown. Pressing while already armed does nothing.
func (p *LongPress) Press() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.armed {
		return
	}
	p.gen++
	gen := p.gen
	p.armed = true
	p.timer = p.sched.AfterFunc(p.duration, func() { p.fire(gen) })
}

// Release cancels a pending press. It reports whether a pending press was
// cancelled; releasing after the action fired, or without a press, is a
// no-op.
func (p *LongPress) Release() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.armed {
		return false
	}
	p.armed = false
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	return true
}

// Armed reports whether a press is pending.
func (p *LongPress) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.armed
}

func (p *LongPress) fire(gen uint64) {
	p.mu.Lock()
	if !p.armed || p.gen != gen {
		p.mu.Unlock()
		return
	}
	p.armed = false
	p.timer = nil
	p.mu.Unlock()

	p.action()
}

// DeleteGesture deletes one equipment item when held for LongPressDuration.
type DeleteGesture struct {
	*LongPress
}

// NewDeleteGesture binds a long press to repo.Delete(id). done, if not nil,
// receives the outcome of the delete.
func NewDeleteGesture(repo *EquipmentRepository, sched Scheduler, id string, done func(error)) *DeleteGesture {
	g := &DeleteGesture{}
	g.LongPress = NewLongPress(sched, LongPressDuration, func() {
		err := repo.Delete(context.Background(), id)
		if err != nil {
			repo.logger.Error("long-press delete failed", "id", id, "error", err)
		}
		if done != nil {
			done(err)
		}
	})
	return g
}
