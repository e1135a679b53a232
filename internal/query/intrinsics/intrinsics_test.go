package intrinsics

import (
	"testing"

	"github.com/adijmbt/queryjson/internal/jsonlexer"
	"github.com/adijmbt/queryjson/internal/jsonparser"
	"github.com/adijmbt/queryjson/internal/jsonvalue"
	"github.com/adijmbt/queryjson/internal/query/querylexer"
	"github.com/adijmbt/queryjson/internal/query/queryparser"
	"github.com/adijmbt/queryjson/internal/query/queryeval"
)

func mustJSON(t *testing.T, src string) jsonvalue.Value {
	t.Helper()
	toks, errs := jsonlexer.Tokens([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("lex errors: %+v", errs)
	}
	v, perrs := jsonparser.Parse(toks)
	if len(perrs) != 0 {
		t.Fatalf("parse errors: %+v", perrs)
	}
	return v
}

func eval(t *testing.T, root jsonvalue.Value, query string) (jsonvalue.Value, *string) {
	t.Helper()
	toks, lexErrs := querylexer.Tokens([]byte(query))
	if len(lexErrs) != 0 {
		t.Fatalf("query lex errors: %+v", lexErrs)
	}
	expr, perrs := queryparser.Parse(toks)
	if len(perrs) != 0 {
		t.Fatalf("query parse errors: %+v", perrs)
	}
	ev := queryeval.New(root)
	Register(ev)
	v, err := ev.Evaluate(expr)
	if err != nil {
		msg := err.Message
		return jsonvalue.Value{}, &msg
	}
	return v, nil
}

func TestSizeOfArray(t *testing.T) {
	root := mustJSON(t, `{"a": [1, 2, 3]}`)
	v, err := eval(t, root, "size(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if n, ok := v.AsInteger(); !ok || n != 3 {
		t.Fatalf("got %+v", v)
	}
}

func TestSizeOfObject(t *testing.T) {
	root := mustJSON(t, `{"a": {"x": 1, "y": 2}}`)
	v, err := eval(t, root, "size(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if n, ok := v.AsInteger(); !ok || n != 2 {
		t.Fatalf("got %+v", v)
	}
}

func TestSizeRejectsString(t *testing.T) {
	root := mustJSON(t, `{"a": "hello"}`)
	_, err := eval(t, root, "size(a)")
	if err == nil {
		t.Fatalf("expected size(string) to be rejected")
	}
}

func TestMaxOverArray(t *testing.T) {
	root := mustJSON(t, `{"a": [1, 2, 3, 4, 5]}`)
	v, err := eval(t, root, "max(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if d := v.ToDouble(); d != 5 {
		t.Fatalf("got %v", d)
	}
}

func TestMaxOverVariadicArgs(t *testing.T) {
	root := mustJSON(t, `{}`)
	v, err := eval(t, root, "max(1, 7, 3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if d := v.ToDouble(); d != 7 {
		t.Fatalf("got %v", d)
	}
}

func TestMinOverArray(t *testing.T) {
	root := mustJSON(t, `{"a": [4, 2, 9]}`)
	v, err := eval(t, root, "min(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if d := v.ToDouble(); d != 2 {
		t.Fatalf("got %v", d)
	}
}

func TestSumOverArray(t *testing.T) {
	root := mustJSON(t, `{"a": [1, 2, 3]}`)
	v, err := eval(t, root, "sum(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if d := v.ToDouble(); d != 6 {
		t.Fatalf("got %v", d)
	}
}

func TestProductOverArray(t *testing.T) {
	root := mustJSON(t, `{"a": [2, 3, 4]}`)
	v, err := eval(t, root, "product(a)")
	if err != nil {
		t.Fatalf("unexpected error: %v", *err)
	}
	if d := v.ToDouble(); d != 24 {
		t.Fatalf("got %v", d)
	}
}

func TestReducerRejectsEmptyArray(t *testing.T) {
	root := mustJSON(t, `{"a": []}`)
	_, err := eval(t, root, "max(a)")
	if err == nil {
		t.Fatalf("expected error reducing an empty array")
	}
}

func TestReducerRejectsNonNumericElement(t *testing.T) {
	root := mustJSON(t, `{"a": [1, "two", 3]}`)
	_, err := eval(t, root, "sum(a)")
	if err == nil {
		t.Fatalf("expected error summing a non-numeric element")
	}
}
