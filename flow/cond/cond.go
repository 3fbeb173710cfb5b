// Package cond implements the guard expression language used on
// workflow edges.
//
// Guards are boolean predicates over the run's input document, e.g.
//
//	input.lang == "en"
//	input.score >= 0.8 and not input.draft
//	input.kind == "invoice" or input.kind == "receipt"
//
// The language is deliberately small: comparison operators (==, !=, <,
// <=, >, >=), boolean and/or/not, parentheses, string/number/bool/null
// literals, and dotted field access rooted at the identifier "input".
// Expressions are parsed into an AST and evaluated only against the
// supplied document; no host-language code is ever executed.
package cond

import "fmt"

// Eval parses expr and evaluates it against doc, which is bound to the
// identifier "input". It returns an error for parse failures, unknown
// fields, and type mismatches; callers selecting edges treat any error
// as "guard did not match".
func Eval(expr string, doc map[string]interface{}) (bool, error) {
	ast, err := parse(expr)
	if err != nil {
		return false, err
	}
	v, err := ast.eval(doc)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("guard %q did not evaluate to a boolean", expr)
	}
	return b, nil
}
