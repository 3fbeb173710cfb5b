package flow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/agentic-platform/flowengine-go/flow/audit"
	"github.com/agentic-platform/flowengine-go/flow/emit"
	"github.com/agentic-platform/flowengine-go/flow/tool"
)

// Status is the lifecycle state of a job.
type Status string

// Job statuses. Paused jobs can be resumed from their checkpoint;
// Completed and Failed are terminal.
const (
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ToolResult is the outcome of one tool node visit, accumulated per Run
// call. Results are not persisted across a pause/resume boundary beyond
// what the caller retains from the paused Run's return value.
type ToolResult struct {
	NodeID string      `json:"node_id"`
	Output interface{} `json:"result"`
}

// Options configures an Engine's ambient collaborators. Both fields are
// optional; zero values disable the corresponding concern.
type Options struct {
	// Emitter receives observability events (run/step lifecycle).
	Emitter emit.Emitter

	// Metrics records Prometheus metrics for runs and tool calls.
	Metrics *Metrics
}

// RunOptions configures a single Run call.
type RunOptions struct {
	// StopAtNode pauses the run when traversal reaches this node id,
	// after the node is marked visited but before its outgoing edges
	// are evaluated.
	StopAtNode string

	// ReturnCheckpoint requests a checkpoint in the RunResult when the
	// run pauses at StopAtNode.
	ReturnCheckpoint bool

	// Resume continues a previously paused run from its checkpoint
	// instead of starting at the workflow's start node.
	Resume *Checkpoint
}

// RunResult is the outcome of a Run call.
type RunResult struct {
	// JobID identifies the job; audit events carry the same id.
	JobID string

	// Status is the final status: StatusCompleted or StatusPaused.
	// Failed runs return an error instead of a result.
	Status Status

	// ToolResults holds one entry per tool node executed during this
	// Run call, in traversal order.
	ToolResults []ToolResult

	// Checkpoint is set when the run paused and ReturnCheckpoint was
	// requested.
	Checkpoint *Checkpoint
}

// Engine orchestrates workflow traversal.
//
// For each step it selects an outgoing edge via SelectEdge, resolves
// tool arguments via ResolveArgs, invokes the tool client, and emits
// audit events. A single Run executes synchronously with no internal
// parallelism; the engine holds no job state once Run returns, so one
// Engine value may serve concurrent Runs as long as the injected sink
// and client are concurrency-safe.
//
// Example:
//
//	model, err := flow.Build(def)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := flow.New(client, audit.NewMemSink(), flow.Options{})
//	result, err := engine.Run(ctx, model, input, flow.RunOptions{})
type Engine struct {
	client tool.Client
	sink   audit.Sink
	opts   Options
}

// New creates an Engine with the given collaborators. Both the tool
// client and the audit sink are required; Run validates them.
func New(client tool.Client, sink audit.Sink, opts Options) *Engine {
	return &Engine{
		client: client,
		sink:   sink,
		opts:   opts,
	}
}

// Run drives the workflow from the start node (or a resume checkpoint)
// until it reaches an end node, the StopAtNode pause point, or a
// terminal error.
//
// On failure Run returns a nil result and a typed error; the audit
// trail is intact up to the failure point and the job is conceptually
// Failed. Errors are never retried here: retry policy belongs to the
// tool client, and cycle/no-transition faults mean the workflow is
// malformed for the given input.
func (e *Engine) Run(ctx context.Context, model *Model, input map[string]interface{}, opts RunOptions) (*RunResult, error) {
	if e.client == nil {
		return nil, errors.New("flow: tool client is required")
	}
	if e.sink == nil {
		return nil, errors.New("flow: audit sink is required")
	}
	if model == nil {
		return nil, errors.New("flow: model is required")
	}

	var (
		current Node
		visited map[string]bool
		jobID   string
		results []ToolResult
	)

	if cp := opts.Resume; cp != nil {
		node, ok := model.NodeByID(cp.CurrentNodeID)
		if !ok {
			return nil, &CheckpointError{NodeID: cp.CurrentNodeID}
		}
		current = node
		visited = make(map[string]bool, len(cp.Visited))
		for _, id := range cp.Visited {
			visited[id] = true
		}
		// The paused node already executed before the checkpoint was
		// taken; drop it from visited so it is eligible for edge
		// selection again without tripping cycle detection, while its
		// tool (if any) is not re-executed.
		delete(visited, current.ID)
		jobID = cp.JobID
		if jobID == "" {
			jobID = uuid.NewString()
		}
		e.event(jobID, current.ID, "run_resumed", nil)
	} else {
		current = model.StartNode()
		visited = make(map[string]bool)
		jobID = uuid.NewString()
		if err := e.emitAudit(ctx, audit.StepStarted, jobID, current.ID, "started", nil); err != nil {
			return nil, err
		}
		e.event(jobID, current.ID, "run_started", nil)
	}

	e.opts.Metrics.runStarted()

	fail := func(err error) (*RunResult, error) {
		e.opts.Metrics.runFinished(StatusFailed)
		e.event(jobID, current.ID, "run_failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	for current.Kind != NodeEnd {
		select {
		case <-ctx.Done():
			return fail(ctx.Err())
		default:
		}

		if visited[current.ID] {
			return fail(fmt.Errorf("node %s: %w", current.ID, ErrCycleDetected))
		}
		visited[current.ID] = true

		if opts.StopAtNode != "" && current.ID == opts.StopAtNode {
			result := &RunResult{JobID: jobID, Status: StatusPaused, ToolResults: results}
			if opts.ReturnCheckpoint {
				result.Checkpoint = &Checkpoint{
					JobID:         jobID,
					CurrentNodeID: current.ID,
					Visited:       sortedKeys(visited),
				}
			}
			e.opts.Metrics.runFinished(StatusPaused)
			e.event(jobID, current.ID, "run_paused", nil)
			return result, nil
		}

		edge, err := SelectEdge(model.OutgoingEdges(current.ID), input)
		if err != nil {
			return fail(fmt.Errorf("node %s: %w", current.ID, err))
		}

		next, ok := model.NodeByID(edge.To)
		if !ok {
			// Unreachable for models produced by Build.
			return fail(fmt.Errorf("node %s: edge target %s not in model", current.ID, edge.To))
		}

		if next.Kind == NodeTool {
			output, err := e.executeTool(ctx, jobID, next, input)
			if err != nil {
				e.opts.Metrics.recordStep(next.Kind, "error")
				return fail(err)
			}
			results = append(results, ToolResult{NodeID: next.ID, Output: output})
		}
		e.opts.Metrics.recordStep(next.Kind, "success")

		current = next
	}

	if err := e.emitAudit(ctx, audit.StepEnded, jobID, current.ID, "ended", nil); err != nil {
		return fail(err)
	}
	e.opts.Metrics.runFinished(StatusCompleted)
	e.event(jobID, current.ID, "run_completed", map[string]interface{}{"status": string(StatusCompleted)})

	return &RunResult{JobID: jobID, Status: StatusCompleted, ToolResults: results}, nil
}

// executeTool runs one tool node: audit bracketing, argument
// resolution, the client call, and metrics. Failures are wrapped in a
// ToolError so the client's error remains reachable via errors.Is/As.
func (e *Engine) executeTool(ctx context.Context, jobID string, node Node, input map[string]interface{}) (interface{}, error) {
	if err := e.emitAudit(ctx, audit.StepStarted, jobID, node.ID, "started", nil); err != nil {
		return nil, err
	}

	args := ResolveArgs(node.Args, input)
	start := time.Now()
	output, err := e.client.Call(ctx, node.Tool, args)
	latency := time.Since(start)

	if err != nil {
		e.opts.Metrics.recordToolCall(node.Tool, latency, "error")
		// The audit record matters more than its write error here; the
		// tool failure is what propagates.
		_ = e.emitAudit(ctx, audit.StepErrored, jobID, node.ID, "errored", map[string]interface{}{
			"tool":  node.Tool,
			"error": err.Error(),
		})
		e.event(jobID, node.ID, "step_errored", map[string]interface{}{
			"tool":  node.Tool,
			"error": err.Error(),
		})
		return nil, &ToolError{NodeID: node.ID, Tool: node.Tool, Err: err}
	}

	e.opts.Metrics.recordToolCall(node.Tool, latency, "success")
	if err := e.emitAudit(ctx, audit.StepEnded, jobID, node.ID, "ended", nil); err != nil {
		return nil, err
	}
	e.event(jobID, node.ID, "step_completed", map[string]interface{}{
		"tool":       node.Tool,
		"latency_ms": latency.Milliseconds(),
	})
	return output, nil
}

func (e *Engine) emitAudit(ctx context.Context, eventType audit.EventType, jobID, nodeID, status string, details map[string]interface{}) error {
	err := e.sink.Emit(ctx, audit.Event{
		EventType: eventType,
		JobID:     jobID,
		NodeID:    nodeID,
		Timestamp: time.Now().UTC(),
		Status:    status,
		Details:   details,
	})
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	return nil
}

func (e *Engine) event(jobID, nodeID, msg string, meta map[string]interface{}) {
	if e.opts.Emitter == nil {
		return
	}
	e.opts.Emitter.Emit(emit.Event{JobID: jobID, NodeID: nodeID, Msg: msg, Meta: meta})
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
