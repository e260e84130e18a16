package desk

import (
	"context"
	"time"
)

// MaxHistory bounds the number of operations kept in the history log.
const MaxHistory = 200

// Operation records one mutating command run against the registry.
type Operation struct {
	ID         int64     `json:"id"`
	Operation  string    `json:"operation"`
	Parameters string    `json:"parameters"`
	Status     string    `json:"status"` // "success" or "error"
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// HistoryLog persists finished operations, oldest first, capped at
// MaxHistory entries. Writes do not publish events; history is not part of
// the data any view renders.
type HistoryLog struct {
	ops jsonCollection[Operation]
}

func NewHistoryLog(store Store, clock Clock) *HistoryLog {
	return &HistoryLog{ops: jsonCollection[Operation]{store: store, key: KeyHistory, clock: clock}}
}

// Append stores op and assigns it the next id.
func (h *HistoryLog) Append(ctx context.Context, op Operation) (Operation, error) {
	ops, _, err := h.ops.load(ctx)
	if err != nil {
		return Operation{}, err
	}
	op.ID = 1
	if n := len(ops); n > 0 {
		op.ID = ops[n-1].ID + 1
	}
	ops = append(ops, op)
	if len(ops) > MaxHistory {
		ops = ops[len(ops)-MaxHistory:]
	}
	if err := h.ops.save(ctx, ops, "history", ""); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// List returns up to limit operations, newest first. A limit of zero or less
// returns everything.
func (h *HistoryLog) List(ctx context.Context, limit int) ([]Operation, error) {
	ops, _, err := h.ops.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Operation, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		out = append(out, ops[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
