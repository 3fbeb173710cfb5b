package cond

import "fmt"

// documentRoot is the identifier the input document is bound to.
const documentRoot = "input"

type literalExpr struct {
	val interface{}
}

func (e *literalExpr) eval(map[string]interface{}) (interface{}, error) {
	return e.val, nil
}

// pathExpr is a dotted field access rooted at "input". A bare "input"
// yields the whole document. Missing fields and non-map intermediates
// are errors, so a guard touching an absent field is treated as a
// non-match by edge selection rather than silently comparing nil.
type pathExpr struct {
	segments []string
}

func (e *pathExpr) eval(doc map[string]interface{}) (interface{}, error) {
	if e.segments[0] != documentRoot {
		return nil, fmt.Errorf("unknown identifier %q", e.segments[0])
	}
	var current interface{} = doc
	for _, segment := range e.segments[1:] {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q is not a map", segment)
		}
		current, ok = m[segment]
		if !ok {
			return nil, fmt.Errorf("missing field %q", segment)
		}
	}
	return current, nil
}

type notExpr struct {
	operand expr
}

func (e *notExpr) eval(doc map[string]interface{}) (interface{}, error) {
	v, err := e.operand.eval(doc)
	if err != nil {
		return nil, err
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("not: operand is not a boolean")
	}
	return !b, nil
}

type logicalExpr struct {
	op    string // "and" or "or"
	left  expr
	right expr
}

func (e *logicalExpr) eval(doc map[string]interface{}) (interface{}, error) {
	left, err := evalBool(e.left, doc)
	if err != nil {
		return nil, err
	}
	// Short-circuit before touching the right operand.
	if e.op == "and" && !left {
		return false, nil
	}
	if e.op == "or" && left {
		return true, nil
	}
	return evalBool(e.right, doc)
}

func evalBool(e expr, doc map[string]interface{}) (bool, error) {
	v, err := e.eval(doc)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("and/or: operand is not a boolean")
	}
	return b, nil
}

type compareExpr struct {
	op    string
	left  expr
	right expr
}

func (e *compareExpr) eval(doc map[string]interface{}) (interface{}, error) {
	left, err := e.left.eval(doc)
	if err != nil {
		return nil, err
	}
	right, err := e.right.eval(doc)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "==":
		return equal(left, right)
	case "!=":
		eq, err := equal(left, right)
		if err != nil {
			return nil, err
		}
		return !eq, nil
	}
	return order(e.op, left, right)
}

// equal compares two values of matching type: nulls, bools, strings, or
// numbers (any numeric type is widened to float64). Comparing values of
// different types is an error, not false, so a mistyped guard skips its
// edge instead of silently routing.
func equal(left, right interface{}) (bool, error) {
	if left == nil || right == nil {
		return left == nil && right == nil, nil
	}
	if lb, ok := left.(bool); ok {
		rb, ok := right.(bool)
		if !ok {
			return false, typeMismatch("==", left, right)
		}
		return lb == rb, nil
	}
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return false, typeMismatch("==", left, right)
		}
		return ls == rs, nil
	}
	if lf, ok := toFloat(left); ok {
		rf, ok := toFloat(right)
		if !ok {
			return false, typeMismatch("==", left, right)
		}
		return lf == rf, nil
	}
	return false, fmt.Errorf("cannot compare %T values", left)
}

// order applies <, <=, > or >= to two numbers or two strings.
func order(op string, left, right interface{}) (bool, error) {
	if lf, lok := toFloat(left); lok {
		rf, rok := toFloat(right)
		if !rok {
			return false, typeMismatch(op, left, right)
		}
		return applyOrder(op, compareFloats(lf, rf)), nil
	}
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return false, typeMismatch(op, left, right)
		}
		return applyOrder(op, compareStrings(ls, rs)), nil
	}
	return false, fmt.Errorf("%s: cannot order %T values", op, left)
}

func applyOrder(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	}
	return cmp >= 0 // ">="
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func typeMismatch(op string, left, right interface{}) error {
	return fmt.Errorf("%s: mismatched types %T and %T", op, left, right)
}
