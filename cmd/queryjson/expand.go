package main

import (
	"strings"

	"github.com/adijmbt/queryjson/internal/jsonlexer"
	"github.com/adijmbt/queryjson/internal/jsonparser"
	"github.com/adijmbt/queryjson/internal/jsonvalue"
)

// expandNestedJSON is the -expand-nested convenience: it recursively
// re-parses string leaves that look like embedded JSON documents,
// generalizing the teacher's main.go processNestedJSON to the
// jsonvalue.Value tree. It lives in the driver, not the core parser,
// so the documented parse semantics never change underneath it.
func expandNestedJSON(v jsonvalue.Value) jsonvalue.Value {
	switch v.Kind() {
	case jsonvalue.Object:
		fields, _ := v.AsObject()
		expanded := make(map[string]jsonvalue.Value, len(fields))
		for k, val := range fields {
			expanded[k] = expandNestedJSON(val)
		}
		return jsonvalue.NewObject(expanded)

	case jsonvalue.Array:
		items, _ := v.AsArray()
		expanded := make([]jsonvalue.Value, len(items))
		for i, val := range items {
			expanded[i] = expandNestedJSON(val)
		}
		return jsonvalue.NewArray(expanded)

	case jsonvalue.String:
		s, _ := v.AsString()
		trimmed := strings.TrimSpace(s)
		if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
			return v
		}

		tokens, lexErrs := jsonlexer.Tokens([]byte(s))
		if len(lexErrs) != 0 {
			return v
		}
		nested, parseErrs := jsonparser.Parse(tokens)
		if len(parseErrs) != 0 {
			return v
		}
		return expandNestedJSON(nested)

	default:
		return v
	}
}
