// Package queryeval implements the tree-walking evaluator described in
// spec.md §4.F: it walks a queryast.Expression against a jsonvalue.Value
// and dispatches to a host-registered intrinsic function registry. It
// generalizes original_source's query_evaluator.cpp (Evaluator::
// evaluate_expression / evaluate_value / evaluate_path /
// evaluate_function_call) to the full grammar the distilled spec adds —
// Unary and Binary nodes, which that earlier snapshot did not yet have.
//
// Unlike the parsers, the evaluator short-circuits on the first error
// instead of accumulating, per spec.md §7.
package queryeval

import (
	"github.com/adijmbt/queryjson/internal/diag"
	"github.com/adijmbt/queryjson/internal/query/queryast"
	"github.com/adijmbt/queryjson/internal/query/querytoken"
	"github.com/adijmbt/queryjson/internal/jsonvalue"
)

// Func is the signature of a host-registered intrinsic. It receives the
// evaluator (so it can evaluate its own arguments, e.g. against a
// different sub-expression) and the unevaluated argument expressions.
type Func func(ev *Evaluator, args []queryast.Value) (jsonvalue.Value, *diag.Error)

// Evaluator walks an Expression against an immutably-borrowed root
// jsonvalue.Value. The function registry must be populated (via
// Register) before Evaluate is called; the registry is not observed to
// mutate during a single Evaluate call.
type Evaluator struct {
	input     jsonvalue.Value
	functions map[string]Func
}

// New creates an Evaluator over the given root JSON value.
func New(input jsonvalue.Value) *Evaluator {
	return &Evaluator{input: input, functions: map[string]Func{}}
}

// Register installs an intrinsic callable as name(...) from queries.
func (e *Evaluator) Register(name string, fn Func) {
	e.functions[name] = fn
}

func fail(message string) *diag.Error {
	err := diag.New("Evaluator", message, 0, 0)
	return &err
}

// Evaluate evaluates expression against the evaluator's input value. If
// the root is not an object, it is returned unchanged (spec.md §4.F's
// deliberate shortcut for primitive roots).
func (e *Evaluator) Evaluate(expression queryast.Expression) (jsonvalue.Value, *diag.Error) {
	if _, ok := e.input.AsObject(); !ok {
		return e.input, nil
	}
	return e.Eval(expression)
}

// Eval evaluates a single Value node. It is exported so registered
// intrinsics can recursively evaluate their own arguments.
func (e *Evaluator) Eval(value queryast.Value) (jsonvalue.Value, *diag.Error) {
	switch value.Kind {
	case queryast.KindInteger:
		return jsonvalue.NewInteger(value.IntValue), nil

	case queryast.KindDouble:
		return jsonvalue.NewDouble(value.DoubleValue), nil

	case queryast.KindPath:
		obj, ok := e.input.AsObject()
		if !ok {
			return jsonvalue.Value{}, fail("Key '" + value.Path.ID + "' not found")
		}
		return e.evalPath(obj, value.Path)

	case queryast.KindUnary:
		return e.evalUnary(value.Unary)

	case queryast.KindBinary:
		return e.evalBinary(value.Binary)

	case queryast.KindFunction:
		return e.evalFunction(value.Function)

	default:
		return jsonvalue.Value{}, fail("Unsupported expression node")
	}
}

func (e *Evaluator) evalPath(object map[string]jsonvalue.Value, path *queryast.Path) (jsonvalue.Value, *diag.Error) {
	found, ok := object[path.ID]
	if !ok {
		return jsonvalue.Value{}, fail("Key '" + path.ID + "' not found")
	}

	evaluated := found

	if path.Subscript != nil {
		arr, ok := found.AsArray()
		if !ok {
			return jsonvalue.Value{}, fail("Attempt to index into key '" + path.ID + "' which is not an array")
		}

		subscript, err := e.Eval(*path.Subscript)
		if err != nil {
			return jsonvalue.Value{}, err
		}

		index, ok := subscript.AsInteger()
		if !ok {
			return jsonvalue.Value{}, fail("Index must be an integer, instead found " + subscript.Kind().String())
		}

		if index < 0 || int(index) >= len(arr) {
			return jsonvalue.Value{}, fail("Index out of range for array '" + path.ID + "'")
		}

		evaluated = arr[index]
	}

	if path.Next != nil {
		nextObj, ok := evaluated.AsObject()
		if !ok {
			return jsonvalue.Value{}, fail("Key '" + path.ID + "' is not an object")
		}
		return e.evalPath(nextObj, path.Next)
	}

	return evaluated, nil
}

func (e *Evaluator) evalUnary(u *queryast.Unary) (jsonvalue.Value, *diag.Error) {
	v, err := e.Eval(*u.Value)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	if !v.IsNumeric() {
		return jsonvalue.Value{}, fail("Unsupported unary operation on type: " + v.Kind().String())
	}
	return jsonvalue.NewDouble(-v.ToDouble()), nil
}

func (e *Evaluator) evalBinary(b *queryast.Binary) (jsonvalue.Value, *diag.Error) {
	lhs, err := e.Eval(*b.LHS)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	if !lhs.IsNumeric() {
		return jsonvalue.Value{}, fail("Unsupported binary operation on type: " + lhs.Kind().String())
	}

	rhs, err := e.Eval(*b.RHS)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	if !rhs.IsNumeric() {
		return jsonvalue.Value{}, fail("Unsupported binary operation on type: " + rhs.Kind().String())
	}

	l, r := lhs.ToDouble(), rhs.ToDouble()

	switch b.Op.Kind {
	case querytoken.Plus:
		return jsonvalue.NewDouble(l + r), nil
	case querytoken.Minus:
		return jsonvalue.NewDouble(l - r), nil
	case querytoken.Star:
		return jsonvalue.NewDouble(l * r), nil
	case querytoken.Slash:
		if r == 0.0 {
			return jsonvalue.Value{}, fail("Division by zero")
		}
		return jsonvalue.NewDouble(l / r), nil
	default:
		return jsonvalue.Value{}, fail("Unsupported binary operator")
	}
}

func (e *Evaluator) evalFunction(fn *queryast.Function) (jsonvalue.Value, *diag.Error) {
	registered, ok := e.functions[fn.Name]
	if !ok {
		return jsonvalue.Value{}, fail("Function '" + fn.Name + "' not found")
	}
	return registered(e, fn.Arguments)
}
