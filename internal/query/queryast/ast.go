// Package queryast defines the query expression AST described in
// spec.md §3: Path, Unary, Binary and Function nodes, unified under a
// single Value sum type (Expression is an alias for Value, per the
// original query.hpp's `using Expression = std::variant<Value>`).
//
// Each recursive child is exclusively owned by its parent and the tree
// is acyclic and immutable once built, matching spec.md §3's ownership
// rules — this package models that Go-side as value trees built once by
// queryparser and never mutated afterwards. Every child node is held
// through a pointer (Value's variant payloads, Path.Subscript, Path.Next,
// Unary.Value, Binary.LHS/RHS), which breaks the type-size cycle
// (design note in spec.md §9).
package queryast

import "github.com/adijmbt/queryjson/internal/query/querytoken"

// Kind tags which Value variant a node holds.
type Kind int

const (
	KindPath Kind = iota
	KindInteger
	KindDouble
	KindUnary
	KindBinary
	KindFunction
)

// Value is the query AST node. Expression is the root of this type, so
// it is aliased below rather than given a separate definition.
type Value struct {
	Kind Kind

	Path        *Path
	IntValue    int64
	DoubleValue float64
	Unary       *Unary
	Binary      *Binary
	Function    *Function
}

// Expression is the root of the query AST; it is structurally the same
// type as Value, per spec.md §3.
type Expression = Value

// Path addresses a descendant of a JSON object: an identifier, an
// optional subscript expression, and an optional next path segment.
type Path struct {
	ID        string
	Subscript *Value
	Next      *Path
}

// Unary is a prefix operator applied to a single operand. Op is
// restricted to '-' by the grammar (spec.md §3).
type Unary struct {
	Op    querytoken.Token
	Value *Value
}

// Binary is an infix operator applied to two operands. Op is one of
// + - * / (spec.md §3).
type Binary struct {
	Op  querytoken.Token
	LHS *Value
	RHS *Value
}

// Function is a call to a registered intrinsic.
type Function struct {
	Name      string
	Arguments []Value
}

// NewPath builds a Path-kind Value.
func NewPath(p *Path) Value { return Value{Kind: KindPath, Path: p} }

// NewInteger builds an Integer-kind Value.
func NewInteger(i int64) Value { return Value{Kind: KindInteger, IntValue: i} }

// NewDouble builds a Double-kind Value.
func NewDouble(d float64) Value { return Value{Kind: KindDouble, DoubleValue: d} }

// NewUnary builds a Unary-kind Value.
func NewUnary(op querytoken.Token, v Value) Value {
	return Value{Kind: KindUnary, Unary: &Unary{Op: op, Value: &v}}
}

// NewBinary builds a Binary-kind Value.
func NewBinary(op querytoken.Token, lhs, rhs Value) Value {
	return Value{Kind: KindBinary, Binary: &Binary{Op: op, LHS: &lhs, RHS: &rhs}}
}

// NewFunction builds a Function-kind Value.
func NewFunction(name string, args []Value) Value {
	return Value{Kind: KindFunction, Function: &Function{Name: name, Arguments: args}}
}
