// Package querytoken defines the tokens of the query mini-language
// (spec.md §3, §4.D): identifiers, integer/double literals, the
// structural punctuators `. , ( ) [ ]`, and the arithmetic operators
// `+ - * /`. The query is single-line, so every token carries only a
// 1-based column.
package querytoken

// Kind tags which punctuator, operator or literal a Token represents.
type Kind int

const (
	Identifier Kind = iota
	IntegerLit
	DoubleLit
	Dot
	Comma
	LParen
	RParen
	LBracket
	RBracket
	Plus
	Minus
	Star
	Slash
)

// Token is a single lexed query token.
type Token struct {
	Kind Kind

	Name        string
	IntValue    int64
	DoubleValue float64

	Col uint
}

// Lexeme renders the token the way it appeared in source, used in
// parser error messages.
func (t Token) Lexeme() string {
	switch t.Kind {
	case Identifier:
		return t.Name
	case IntegerLit:
		return formatInt(t.IntValue)
	case DoubleLit:
		return formatFloat(t.DoubleValue)
	case Dot:
		return "."
	case Comma:
		return ","
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	default:
		return "<unknown>"
	}
}
