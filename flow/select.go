package flow

import (
	"github.com/agentic-platform/flowengine-go/flow/cond"
)

// SelectEdge decides which of a node's outgoing edges to follow for the
// given input document. Edges are scanned in declaration order:
//
//   - The first unconditional edge becomes the fallback candidate;
//     later unconditional edges are ignored (first-unconditional-wins).
//   - The first edge whose guard evaluates true is selected
//     immediately, short-circuiting the scan. A true guard therefore
//     always beats a pending unconditional candidate, regardless of
//     declaration order between them.
//   - A guard that fails to evaluate (missing field, type error, parse
//     error) is treated as not matching; traversal is not aborted.
//
// Workflow authors may depend on these first-wins semantics, so they
// are preserved exactly; do not change to last-wins or priority-based
// selection. If no edge is selected, SelectEdge returns
// ErrNoViableTransition.
func SelectEdge(edges []Edge, doc map[string]interface{}) (Edge, error) {
	var candidate *Edge
	for i := range edges {
		e := &edges[i]
		if e.Guard == "" {
			if candidate == nil {
				candidate = e
			}
			continue
		}
		matched, err := cond.Eval(e.Guard, doc)
		if err != nil {
			continue
		}
		if matched {
			return *e, nil
		}
	}
	if candidate != nil {
		return *candidate, nil
	}
	return Edge{}, ErrNoViableTransition
}
