package flow

import "errors"

// ErrNoViableTransition is returned (wrapped with node context) when no
// outgoing edge of the current node matches the input document: every
// guard evaluated false or errored and no unconditional fallback exists.
// The job fails; the workflow is malformed for the given input.
var ErrNoViableTransition = errors.New("no viable transition")

// ErrCycleDetected is returned (wrapped with node context) when
// traversal reaches a node that was already visited in the same run
// without an intervening pause/resume boundary.
var ErrCycleDetected = errors.New("cycle detected")

// Definition error codes reported by Build.
const (
	CodeMissingStartNode = "MISSING_START_NODE"
	CodeDuplicateNodeID  = "DUPLICATE_NODE_ID"
	CodeDanglingEdge     = "DANGLING_EDGE"
	CodeMissingToolName  = "MISSING_TOOL_NAME"
)

// DefinitionError reports a structurally invalid workflow definition.
// It is raised at Build time, before any job is created.
type DefinitionError struct {
	// Code is a machine-readable error code (Code* constants).
	Code string

	// Message is the human-readable description.
	Message string

	// NodeID identifies the offending node, when applicable.
	NodeID string
}

func (e *DefinitionError) Error() string {
	if e.NodeID != "" {
		return e.Code + ": " + e.Message + ": " + e.NodeID
	}
	return e.Code + ": " + e.Message
}

// ToolError wraps a failure raised by the tool client during a tool
// node's execution. The underlying error propagates unmodified via
// Unwrap; the engine performs no retries.
type ToolError struct {
	// NodeID is the tool node whose invocation failed.
	NodeID string

	// Tool is the tool name passed to the client.
	Tool string

	// Err is the error returned by the tool client.
	Err error
}

func (e *ToolError) Error() string {
	return "tool " + e.Tool + " at node " + e.NodeID + ": " + e.Err.Error()
}

// Unwrap returns the tool client's error for errors.Is/As matching.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// CheckpointError reports an unusable resume checkpoint: either its
// current node id is absent from the model, or the encoded form failed
// integrity verification.
type CheckpointError struct {
	// NodeID is the unknown node referenced by the checkpoint, if any.
	NodeID string

	// Message describes the failure when no node is involved.
	Message string
}

func (e *CheckpointError) Error() string {
	if e.NodeID != "" {
		return "checkpoint references unknown node: " + e.NodeID
	}
	return "checkpoint: " + e.Message
}
