package flow

import (
	"errors"
	"testing"
)

func TestBuild(t *testing.T) {
	valid := &Definition{
		Nodes: []Node{
			{ID: "start", Kind: NodeStart},
			{ID: "work", Kind: NodeTool, Tool: "do_work"},
			{ID: "end", Kind: NodeEnd},
		},
		Edges: []Edge{
			{From: "start", To: "work"},
			{From: "work", To: "end"},
		},
	}

	t.Run("valid definition builds", func(t *testing.T) {
		m, err := Build(valid)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if m.StartNode().ID != "start" {
			t.Errorf("StartNode().ID = %q, want start", m.StartNode().ID)
		}
		if _, ok := m.NodeByID("work"); !ok {
			t.Error("NodeByID(work) not found")
		}
		if n := len(m.OutgoingEdges("start")); n != 1 {
			t.Errorf("len(OutgoingEdges(start)) = %d, want 1", n)
		}
	})

	t.Run("outgoing edges preserve declaration order", func(t *testing.T) {
		m, err := Build(&Definition{
			Nodes: []Node{
				{ID: "start", Kind: NodeStart},
				{ID: "a", Kind: NodeEnd},
				{ID: "b", Kind: NodeEnd},
				{ID: "c", Kind: NodeEnd},
			},
			Edges: []Edge{
				{From: "start", To: "b"},
				{From: "start", To: "c"},
				{From: "start", To: "a"},
			},
		})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		edges := m.OutgoingEdges("start")
		want := []string{"b", "c", "a"}
		for i, to := range want {
			if edges[i].To != to {
				t.Errorf("edges[%d].To = %q, want %q", i, edges[i].To, to)
			}
		}
	})

	errCases := []struct {
		name     string
		def      *Definition
		wantCode string
	}{
		{
			name: "missing start node",
			def: &Definition{
				Nodes: []Node{{ID: "end", Kind: NodeEnd}},
				Edges: []Edge{},
			},
			wantCode: CodeMissingStartNode,
		},
		{
			name: "two start nodes",
			def: &Definition{
				Nodes: []Node{
					{ID: "a", Kind: NodeStart},
					{ID: "b", Kind: NodeStart},
					{ID: "end", Kind: NodeEnd},
				},
				Edges: []Edge{},
			},
			wantCode: CodeMissingStartNode,
		},
		{
			name: "duplicate node id",
			def: &Definition{
				Nodes: []Node{
					{ID: "start", Kind: NodeStart},
					{ID: "start", Kind: NodeEnd},
				},
				Edges: []Edge{},
			},
			wantCode: CodeDuplicateNodeID,
		},
		{
			name: "dangling edge target",
			def: &Definition{
				Nodes: []Node{
					{ID: "start", Kind: NodeStart},
					{ID: "end", Kind: NodeEnd},
				},
				Edges: []Edge{{From: "start", To: "missing"}},
			},
			wantCode: CodeDanglingEdge,
		},
		{
			name: "dangling edge source",
			def: &Definition{
				Nodes: []Node{
					{ID: "start", Kind: NodeStart},
					{ID: "end", Kind: NodeEnd},
				},
				Edges: []Edge{{From: "missing", To: "end"}},
			},
			wantCode: CodeDanglingEdge,
		},
		{
			name: "tool node without tool name",
			def: &Definition{
				Nodes: []Node{
					{ID: "start", Kind: NodeStart},
					{ID: "work", Kind: NodeTool},
					{ID: "end", Kind: NodeEnd},
				},
				Edges: []Edge{},
			},
			wantCode: CodeMissingToolName,
		},
	}

	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.def)
			var defErr *DefinitionError
			if !errors.As(err, &defErr) {
				t.Fatalf("Build() error = %v, want *DefinitionError", err)
			}
			if defErr.Code != tc.wantCode {
				t.Errorf("Code = %q, want %q", defErr.Code, tc.wantCode)
			}
		})
	}
}
