// Package tool defines the contract between the workflow engine and
// external tool implementations, plus interchangeable client adapters:
// an in-process registry, an HTTP-backed client, and a mock for tests.
package tool

import "context"

// Client executes tools on behalf of the workflow engine.
//
// The engine depends only on this interface; which adapter backs it
// (registry, HTTP, mock) is the composition layer's choice. Call is a
// blocking operation: the engine imposes no timeout or retry of its
// own, so deadline enforcement and retry policy belong to the client.
// Implementations must be safe for concurrent use when shared across
// runs.
type Client interface {
	// Call executes the named tool with the resolved arguments and
	// returns its result. An error fails the calling workflow run.
	Call(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)
}
