package flow

import "strings"

// ResolveArgs produces the concrete arguments map for a tool call.
//
// When template is nil the entire input document is passed through (as
// a shallow copy, so callers cannot mutate the run's input through the
// returned map). Otherwise, each template value of the form
// "${path.to.value}" is replaced with the value found by walking the
// input document along the dotted path; the substitution yields nil if
// any segment is missing or an intermediate value is not a map. All
// other values are copied unchanged.
//
// ResolveArgs is pure: it never mutates template or doc, and resolving
// the same template against the same document twice yields structurally
// equal results.
func ResolveArgs(template, doc map[string]interface{}) map[string]interface{} {
	if template == nil {
		args := make(map[string]interface{}, len(doc))
		for k, v := range doc {
			args[k] = v
		}
		return args
	}

	args := make(map[string]interface{}, len(template))
	for k, v := range template {
		if ref, ok := templateRef(v); ok {
			args[k] = lookupPath(doc, ref)
			continue
		}
		args[k] = v
	}
	return args
}

// templateRef reports whether v is a "${...}" reference and returns the
// enclosed path.
func templateRef(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	return s[2 : len(s)-1], true
}

// lookupPath walks doc along a dotted path, returning nil if any
// segment is missing or the current value is not a map.
func lookupPath(doc map[string]interface{}, path string) interface{} {
	var current interface{} = doc
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}
	return current
}
