package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTool is returned by Registry.Call for unregistered names.
var ErrUnknownTool = errors.New("unknown tool")

// Handler is the function backing a registered tool.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Spec describes a registered tool: its name, a human-readable
// description, a JSON-schema-shaped description of its input, and the
// handler that executes it. Schema is advisory; the registry does not
// validate arguments against it.
type Spec struct {
	Name        string
	Description string
	Schema      map[string]interface{}
	Handler     Handler
}

// Registry is an in-process Client: tools are Go functions registered
// by name. It is an explicit, injectable value rather than a
// process-wide singleton, so different engines can see different tool
// sets. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Spec
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Spec),
	}
}

// Register adds a tool. It returns an error for an empty name, a nil
// handler, or a name collision.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return errors.New("tool name cannot be empty")
	}
	if spec.Handler == nil {
		return errors.New("tool handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[spec.Name]; exists {
		return fmt.Errorf("duplicate tool name: %s", spec.Name)
	}
	r.tools[spec.Name] = spec
	return nil
}

// List returns the registered tool names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the spec for a registered tool.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.tools[name]
	return spec, ok
}

// Call implements Client by dispatching to the registered handler.
func (r *Registry) Call(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	spec, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return spec.Handler(ctx, args)
}
