package queryparser

import (
	"testing"

	"github.com/adijmbt/queryjson/internal/query/queryast"
	"github.com/adijmbt/queryjson/internal/query/querylexer"
	"github.com/adijmbt/queryjson/internal/query/querytoken"
)

func parse(t *testing.T, src string) (queryast.Expression, []string) {
	t.Helper()
	toks, lexErrs := querylexer.Tokens([]byte(src))
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors for %q: %+v", src, lexErrs)
	}
	expr, errs := Parse(toks)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return expr, msgs
}

func TestParseSimplePath(t *testing.T) {
	expr, errs := parse(t, "a")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindPath || expr.Path.ID != "a" {
		t.Fatalf("got %+v", expr)
	}
	if expr.Path.Subscript != nil || expr.Path.Next != nil {
		t.Fatalf("expected a bare path, got %+v", expr.Path)
	}
}

func TestParseDottedSubscriptPath(t *testing.T) {
	expr, errs := parse(t, "a.b[1]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	root := expr.Path
	if root.ID != "a" || root.Next == nil {
		t.Fatalf("got %+v", root)
	}
	b := root.Next
	if b.ID != "b" || b.Subscript == nil {
		t.Fatalf("got %+v", b)
	}
	if b.Subscript.Kind != queryast.KindInteger || b.Subscript.IntValue != 1 {
		t.Fatalf("got subscript %+v", b.Subscript)
	}
}

func TestParseNestedSubscriptLookup(t *testing.T) {
	expr, errs := parse(t, "a.b[a.b[1]].c")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	b := expr.Path.Next
	if b.ID != "b" || b.Subscript == nil {
		t.Fatalf("got %+v", b)
	}
	if b.Subscript.Kind != queryast.KindPath {
		t.Fatalf("subscript should itself be a path lookup, got %+v", b.Subscript)
	}
	if b.Next == nil || b.Next.ID != "c" {
		t.Fatalf("got %+v", b.Next)
	}
}

func TestFactorIsRightAssociative(t *testing.T) {
	expr, errs := parse(t, "1/2/3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindBinary || expr.Binary.Op.Kind != querytoken.Slash {
		t.Fatalf("got %+v", expr)
	}
	if expr.Binary.LHS.Kind != queryast.KindInteger || expr.Binary.LHS.IntValue != 1 {
		t.Fatalf("expected lhs to be the literal 1, got %+v", expr.Binary.LHS)
	}
	rhs := expr.Binary.RHS
	if rhs.Kind != queryast.KindBinary || rhs.Binary.Op.Kind != querytoken.Slash {
		t.Fatalf("expected rhs to be the nested (2/3), got %+v", rhs)
	}
}

func TestAdditiveLowerPrecedenceThanMultiplicative(t *testing.T) {
	expr, errs := parse(t, "1+2*3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindBinary || expr.Binary.Op.Kind != querytoken.Plus {
		t.Fatalf("got %+v", expr)
	}
	if expr.Binary.RHS.Kind != queryast.KindBinary || expr.Binary.RHS.Binary.Op.Kind != querytoken.Star {
		t.Fatalf("expected rhs to be 2*3, got %+v", expr.Binary.RHS)
	}
}

func TestUnaryMinusBindsTighterThanMultiplicative(t *testing.T) {
	expr, errs := parse(t, "-2*3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindBinary || expr.Binary.Op.Kind != querytoken.Star {
		t.Fatalf("got %+v", expr)
	}
	if expr.Binary.LHS.Kind != queryast.KindUnary {
		t.Fatalf("expected lhs to be -2, got %+v", expr.Binary.LHS)
	}
}

func TestGrouping(t *testing.T) {
	expr, errs := parse(t, "(x + y) * 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindBinary || expr.Binary.Op.Kind != querytoken.Star {
		t.Fatalf("got %+v", expr)
	}
	if expr.Binary.LHS.Kind != queryast.KindBinary || expr.Binary.LHS.Binary.Op.Kind != querytoken.Plus {
		t.Fatalf("expected grouped lhs to be x+y, got %+v", expr.Binary.LHS)
	}
}

func TestFunctionCallZeroArgs(t *testing.T) {
	expr, errs := parse(t, "now()")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindFunction || expr.Function.Name != "now" || len(expr.Function.Arguments) != 0 {
		t.Fatalf("got %+v", expr)
	}
}

func TestFunctionCallWithArgs(t *testing.T) {
	expr, errs := parse(t, "max(1, 2, x)")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if expr.Kind != queryast.KindFunction || len(expr.Function.Arguments) != 3 {
		t.Fatalf("got %+v", expr)
	}
}

func TestTrailingTokenIsError(t *testing.T) {
	_, errs := parse(t, "1 2")
	if len(errs) == 0 {
		t.Fatalf("expected trailing-token error")
	}
}
