// Package diag holds the single structured error record shared by every
// front end (JSON lexer/parser, query lexer/parser, evaluator) along with
// a small move-only result container used where the spec this module
// implements requires callers to be unable to silently discard a failure.
package diag

import "fmt"

// Error is a single diagnostic. Source identifies which subsystem raised
// it (Lexer, Parser, Query Lexer, Query, Evaluator). Line and Column are
// 1-based; Evaluator diagnostics leave them at 0 and the renderer omits
// them.
type Error struct {
	Source    string
	Message   string
	Line      uint
	Column    uint
	IsWarning bool
}

func (e Error) Error() string {
	if e.Line == 0 && e.Column == 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s: %s (%d:%d)", e.Source, e.Message, e.Line, e.Column)
}

// Equal reports structural equality, matching the original::Error
// operator==.
func (e Error) Equal(other Error) bool {
	return e == other
}

// New builds a non-warning diagnostic.
func New(source, message string, line, column uint) Error {
	return Error{Source: source, Message: message, Line: line, Column: column}
}

// Warning builds a warning diagnostic. Unused by the core today but part
// of the schema (spec.md §7).
func Warning(source, message string, line, column uint) Error {
	return Error{Source: source, Message: message, Line: line, Column: column, IsWarning: true}
}
