package desk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// jsonCollection persists a slice of records as one JSON array under a key,
// the way the console keeps each collection in a single local-storage entry.
type jsonCollection[T any] struct {
	store  Store
	key    string
	clock  Clock
	events *EventBus
}

// load returns the stored records. ok is false when the key has never been
// written.
func (c *jsonCollection[T]) load(ctx context.Context) ([]T, bool, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, false, &StorageError{Op: "get", Key: c.key, Err: err}
	}
	if !ok {
		return nil, false, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, &StorageError{Op: "get", Key: c.key, Err: fmt.Errorf("decoding: %w", err)}
	}
	return items, true, nil
}

// save writes the whole collection, refreshes the last-saved timestamp and
// then notifies subscribers.
func (c *jsonCollection[T]) save(ctx context.Context, items []T, op, id string) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return &StorageError{Op: "set", Key: c.key, Err: err}
	}

	now := c.clock.Now().UTC()
	if err := c.store.Set(ctx, KeyLastSaved, []byte(now.Format(time.RFC3339))); err != nil {
		return &StorageError{Op: "set", Key: KeyLastSaved, Err: err}
	}

	c.events.Publish(WriteEvent{Key: c.key, Op: op, ID: id, SavedAt: now})
	return nil
}

// LastSaved returns the time of the most recent successful write.
func LastSaved(ctx context.Context, store Store) (time.Time, bool, error) {
	raw, ok, err := store.Get(ctx, KeyLastSaved)
	if err != nil {
		return time.Time{}, false, &StorageError{Op: "get", Key: KeyLastSaved, Err: err}
	}
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing last saved timestamp: %w", err)
	}
	return t, true, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
