package emit

// Event is an observability event emitted during workflow execution.
//
// Events are distinct from audit events: the audit trail is the
// engine's durable, queryable record of job lifecycle transitions,
// while emit events feed logging and tracing backends and carry no
// ordering or retention guarantees.
type Event struct {
	// JobID identifies the workflow run that emitted this event.
	JobID string

	// NodeID identifies the node involved; for run-level events
	// (run_started, run_completed, run_failed) it is the node the run
	// was at when the event fired.
	NodeID string

	// Msg is a short machine-friendly description, e.g. "step_completed".
	Msg string

	// Meta carries additional structured data. Common keys:
	//   - "error": failure details
	//   - "tool": tool name for tool node events
	//   - "latency_ms": tool call duration in milliseconds
	//   - "status": final run status for run-level events
	Meta map[string]interface{}
}
