// Package emit provides pluggable observability backends for workflow
// execution events: logging, OpenTelemetry tracing, or nothing at all.
package emit

// Emitter receives observability events from workflow execution.
//
// Implementations should be non-blocking, safe for concurrent use from
// multiple runs, and resilient: Emit must not panic, and backend
// failures must not disturb workflow execution.
type Emitter interface {
	// Emit sends an event to the configured backend. Errors are
	// handled internally; workflow execution never sees them.
	Emit(event Event)
}
