package app

import (
	"time"

	"riverdesk/internal/desk"
)

// Operation tracks the CLI command being run. Operations live in memory;
// only commands that change data are appended to the history log when the
// app closes.
type Operation struct {
	Operation  string
	Parameters string
	Status     string // "success" or "error"
	Error      string
	StartedAt  time.Time
	mutating   bool
}

// NewOperation creates a new in-memory operation.
func NewOperation(operation, parameters string, startedAt time.Time) *Operation {
	return &Operation{
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
		StartedAt:  startedAt,
	}
}

// MarkMutating flags the operation for recording and sets its parameters.
func (op *Operation) MarkMutating(parameters string) {
	op.mutating = true
	if parameters != "" {
		op.Parameters = parameters
	}
}

// Mutating reports whether the operation will be recorded.
func (op *Operation) Mutating() bool {
	return op.mutating
}

// Fail records err as the outcome. A nil err leaves the operation untouched.
func (op *Operation) Fail(err error) {
	if err == nil {
		return
	}
	op.Status = "error"
	op.Error = err.Error()
}

// Record returns the history entry for the operation.
func (op *Operation) Record(finishedAt time.Time) desk.Operation {
	return desk.Operation{
		Operation:  op.Operation,
		Parameters: op.Parameters,
		Status:     op.Status,
		Error:      op.Error,
		StartedAt:  op.StartedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
	}
}
