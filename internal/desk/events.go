package desk

import (
	"sync"
	"time"
)

// WriteEvent is emitted after every successful persisted write. Observers
// (API response cache, map synchronizer) refresh on it instead of polling.
type WriteEvent struct {
	Key     string
	Op      string // "seed", "create", "update", "delete", ...
	ID      string // affected record, empty for bulk writes
	SavedAt time.Time
}

// EventBus fans write events out to subscribers synchronously, in
// subscription order.
type EventBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(WriteEvent)
	order  []int
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[int]func(WriteEvent))}
}

// Subscribe registers fn and returns a function that unregisters it.
func (b *EventBus) Subscribe(fn func(WriteEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every current subscriber. A nil bus is a no-op.
func (b *EventBus) Publish(ev WriteEvent) {
	if b == nil {
		return
	}
	b.mu.RLock()
	fns := make([]func(WriteEvent), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
