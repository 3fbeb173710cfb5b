// Package audit provides the append-only audit trail for workflow
// jobs: typed lifecycle events, a Sink contract, and in-memory,
// SQLite, and MySQL sink implementations.
package audit

import (
	"context"
	"time"
)

// EventType identifies a job lifecycle transition.
type EventType string

// Lifecycle event types. StepStarted/StepEnded bracket node execution;
// StepErrored records a tool failure in place of StepEnded.
const (
	StepStarted EventType = "STEP_STARTED"
	StepEnded   EventType = "STEP_ENDED"
	StepErrored EventType = "STEP_ERRORED"
)

// Event is a single audit trail entry. Events are immutable after
// emission; ordering within a job is emission order.
type Event struct {
	EventType EventType              `json:"event_type"`
	JobID     string                 `json:"job_id"`
	NodeID    string                 `json:"node_id"`
	Timestamp time.Time              `json:"timestamp"`
	Status    string                 `json:"status"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Sink is an append-only store of audit events, queryable by job id.
//
// Implementations never mutate or remove prior entries. A sink shared
// across concurrent runs must be safe for concurrent Emit and Query.
type Sink interface {
	// Emit appends an event to the trail.
	Emit(ctx context.Context, event Event) error

	// Query returns the events for a job in emission order. An
	// unknown job id yields an empty slice, not an error.
	Query(ctx context.Context, jobID string) ([]Event, error)
}
