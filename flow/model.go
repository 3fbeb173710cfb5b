package flow

// Model is a validated, indexed view of a workflow definition.
//
// Build verifies the structural invariants once, up front; afterwards
// the model is read-only and safe to share across concurrent Runs of
// the same definition. Outgoing edges preserve declaration order, which
// edge selection depends on for its tie-break rule.
type Model struct {
	nodes    map[string]Node
	outgoing map[string][]Edge
	start    Node
}

// Build validates a definition and indexes it for traversal.
//
// It fails with a DefinitionError if:
//   - zero or more than one start node exists (CodeMissingStartNode)
//   - two nodes share an id (CodeDuplicateNodeID)
//   - a tool node omits its tool name (CodeMissingToolName)
//   - an edge references an unknown node id (CodeDanglingEdge)
func Build(def *Definition) (*Model, error) {
	if def == nil {
		return nil, &DefinitionError{Code: CodeMissingStartNode, Message: "definition is nil"}
	}

	m := &Model{
		nodes:    make(map[string]Node, len(def.Nodes)),
		outgoing: make(map[string][]Edge, len(def.Nodes)),
	}

	startCount := 0
	for _, n := range def.Nodes {
		if _, exists := m.nodes[n.ID]; exists {
			return nil, &DefinitionError{
				Code:    CodeDuplicateNodeID,
				Message: "duplicate node id",
				NodeID:  n.ID,
			}
		}
		if n.Kind == NodeTool && n.Tool == "" {
			return nil, &DefinitionError{
				Code:    CodeMissingToolName,
				Message: "tool node missing tool name",
				NodeID:  n.ID,
			}
		}
		m.nodes[n.ID] = n
		if n.Kind == NodeStart {
			startCount++
			m.start = n
		}
	}
	if startCount != 1 {
		return nil, &DefinitionError{
			Code:    CodeMissingStartNode,
			Message: "workflow must have exactly one start node",
		}
	}

	for _, e := range def.Edges {
		if _, ok := m.nodes[e.From]; !ok {
			return nil, &DefinitionError{
				Code:    CodeDanglingEdge,
				Message: "edge references unknown node",
				NodeID:  e.From,
			}
		}
		if _, ok := m.nodes[e.To]; !ok {
			return nil, &DefinitionError{
				Code:    CodeDanglingEdge,
				Message: "edge references unknown node",
				NodeID:  e.To,
			}
		}
		m.outgoing[e.From] = append(m.outgoing[e.From], e)
	}

	return m, nil
}

// StartNode returns the workflow's single start node.
func (m *Model) StartNode() Node {
	return m.start
}

// NodeByID looks up a node by id.
func (m *Model) NodeByID(id string) (Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// OutgoingEdges returns the outgoing edges of a node in declaration
// order. The returned slice must not be modified.
func (m *Model) OutgoingEdges(id string) []Edge {
	return m.outgoing[id]
}
