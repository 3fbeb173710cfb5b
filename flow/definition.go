// Package flow provides the workflow execution engine: it interprets a
// directed graph of nodes connected by guarded edges, dispatches tool
// invocations through a pluggable client, records an append-only audit
// trail per job, and supports pausing execution mid-graph and resuming
// from a serialized checkpoint.
package flow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeKind classifies a node within the workflow graph.
type NodeKind string

// Node kinds. Every workflow has exactly one Start node; Tool nodes
// invoke an external capability; End nodes terminate traversal.
const (
	NodeStart NodeKind = "start"
	NodeTool  NodeKind = "tool"
	NodeEnd   NodeKind = "end"
)

// Node is a vertex in the workflow graph.
//
// Tool nodes must declare Tool, the name passed to the tool client.
// Args is an optional argument template resolved against the input
// document at execution time (see ResolveArgs); when absent, the tool
// receives the entire input document.
type Node struct {
	ID   string                 `yaml:"id" json:"id"`
	Kind NodeKind               `yaml:"type" json:"type"`
	Tool string                 `yaml:"tool,omitempty" json:"tool,omitempty"`
	Args map[string]interface{} `yaml:"args,omitempty" json:"args,omitempty"`
}

// Edge is a directed connection between two nodes.
//
// Guard is an optional boolean expression over the input document (see
// the cond package for the grammar). An edge with an empty Guard is
// unconditional.
type Edge struct {
	From  string `yaml:"from" json:"from"`
	To    string `yaml:"to" json:"to"`
	Guard string `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// Definition is a workflow definition as loaded from YAML or JSON.
//
// Node and edge order is significant: outgoing edges are evaluated in
// declaration order during edge selection. Definitions are immutable
// once loaded; Build produces the indexed view the engine consumes.
type Definition struct {
	Nodes []Node `yaml:"nodes" json:"nodes"`
	Edges []Edge `yaml:"edges" json:"edges"`
}

// ParseDefinition decodes a workflow definition from YAML or JSON bytes.
//
// YAML is a superset of JSON, so both serializations of the definition
// format are accepted:
//
//	nodes:
//	  - id: start
//	    type: start
//	  - id: ocr
//	    type: tool
//	    tool: ocr_page
//	  - id: end
//	    type: end
//	edges:
//	  - from: start
//	    to: ocr
//	  - from: ocr
//	    to: end
//
// Only structural decoding happens here; graph validation (start node,
// duplicate ids, dangling edges) is performed by Build.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse workflow definition: %w", err)
	}
	if def.Nodes == nil {
		return nil, fmt.Errorf("parse workflow definition: missing nodes")
	}
	if def.Edges == nil {
		return nil, fmt.Errorf("parse workflow definition: missing edges")
	}
	return &def, nil
}

// LoadDefinition reads and parses a workflow definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load workflow definition: %w", err)
	}
	return ParseDefinition(data)
}
