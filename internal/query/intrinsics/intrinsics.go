// Package intrinsics registers the built-in query functions onto a
// queryeval.Evaluator: size, max, min, sum and product (spec.md §4.G).
// Each reducer accepts either a single array argument (reducing over its
// elements) or a variadic argument list (treating each argument as one
// element), mirroring original_source's query_evaluator.cpp handling of
// "a function called with a single array argument reduces over it".
package intrinsics

import (
	"math"

	"github.com/adijmbt/queryjson/internal/diag"
	"github.com/adijmbt/queryjson/internal/jsonvalue"
	"github.com/adijmbt/queryjson/internal/query/queryast"
	"github.com/adijmbt/queryjson/internal/query/queryeval"
)

func fail(message string) *diag.Error {
	err := diag.New("Evaluator", message, 0, 0)
	return &err
}

// Register installs size, max, min, sum and product onto ev.
func Register(ev *queryeval.Evaluator) {
	ev.Register("size", size)
	ev.Register("max", reducer(math.Inf(-1), math.Max))
	ev.Register("min", reducer(math.Inf(1), math.Min))
	ev.Register("sum", reducer(0, func(a, b float64) float64 { return a + b }))
	ev.Register("product", reducer(1, func(a, b float64) float64 { return a * b }))
}

// operands evaluates fn's argument list into a flat slice of numeric
// values. A single argument that evaluates to an array is expanded into
// its elements; any other argument list (including a single scalar) is
// treated element-wise.
func operands(ev *queryeval.Evaluator, args []queryast.Value) ([]jsonvalue.Value, *diag.Error) {
	if len(args) == 1 {
		v, err := ev.Eval(args[0])
		if err != nil {
			return nil, err
		}
		if arr, ok := v.AsArray(); ok {
			return arr, nil
		}
		return []jsonvalue.Value{v}, nil
	}

	values := make([]jsonvalue.Value, 0, len(args))
	for _, arg := range args {
		v, err := ev.Eval(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func reducer(identity float64, combine func(a, b float64) float64) queryeval.Func {
	return func(ev *queryeval.Evaluator, args []queryast.Value) (jsonvalue.Value, *diag.Error) {
		values, err := operands(ev, args)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		if len(values) == 0 {
			return jsonvalue.Value{}, fail("Cannot reduce an empty array")
		}

		acc := identity
		for _, v := range values {
			if !v.IsNumeric() {
				return jsonvalue.Value{}, fail("Unsupported operand type for reduction: " + v.Kind().String())
			}
			acc = combine(acc, v.ToDouble())
		}
		return jsonvalue.NewDouble(acc), nil
	}
}

// size rejects strings even though they have a natural length, per
// spec.md §9's deliberate resolution: size() is defined only over
// Array and Object.
func size(ev *queryeval.Evaluator, args []queryast.Value) (jsonvalue.Value, *diag.Error) {
	if len(args) != 1 {
		return jsonvalue.Value{}, fail("size expects exactly one argument")
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return jsonvalue.Value{}, err
	}
	n, ok := v.Len()
	if !ok {
		return jsonvalue.Value{}, fail("Unsupported operand type for size: " + v.Kind().String())
	}
	return jsonvalue.NewInteger(int64(n)), nil
}
