// Package queryparser implements the recursive-descent,
// precedence-climbing parser for the query mini-language (spec.md §4.E):
//
//	expression := term
//	term       := factor (('+' | '-') factor)*
//	factor     := value (('*' | '/') factor)*       ; right-associative as implemented
//	value      := INTEGER | DOUBLE | '-' value | '(' expression ')'
//	            | IDENTIFIER ( '(' args ')' | path_tail )
//	args       := (expression (',' expression)*)?
//	path_tail  := ( '[' expression ']' )? ('.' IDENTIFIER path_tail)?
//
// It is a direct generalization of original_source's query_parser.cpp:
// same chop/peek token-cursor discipline, same right-associative
// parse_factor recursion (spec.md §9 notes this disagrees with
// conventional left-associativity and keeps it deliberately), same
// error-accumulation-then-stop-the-production behavior as the JSON
// parser.
package queryparser

import (
	"github.com/adijmbt/queryjson/internal/diag"
	"github.com/adijmbt/queryjson/internal/query/queryast"
	"github.com/adijmbt/queryjson/internal/query/querytoken"
)

// Parser consumes a borrowed token slice via a head pointer.
type Parser struct {
	tokens []querytoken.Token
	pos    int
	errors []diag.Error
}

// New creates a Parser over tokens.
func New(tokens []querytoken.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every diagnostic accumulated while parsing.
func (p *Parser) Errors() []diag.Error { return p.errors }

func (p *Parser) pushErr(message string, col uint) {
	p.errors = append(p.errors, diag.New("Query", message, 1, col))
}

func (p *Parser) peek() (querytoken.Token, bool) {
	if p.pos >= len(p.tokens) {
		return querytoken.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() (querytoken.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *Parser) check(kind querytoken.Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

// Parse parses the entire token stream as a single expression, reporting
// any leftover token as an error.
func Parse(tokens []querytoken.Token) (queryast.Expression, []diag.Error) {
	p := New(tokens)
	expr, ok := p.Parse()
	if !ok {
		return queryast.Expression{}, p.Errors()
	}
	return expr, p.Errors()
}

// Parse runs the parser to completion.
func (p *Parser) Parse() (queryast.Expression, bool) {
	if len(p.tokens) == 0 {
		p.pushErr("Unexpected end of input", 0)
		return queryast.Expression{}, false
	}

	expr, ok := p.parseExpression()
	if !ok {
		return queryast.Expression{}, false
	}

	if tok, has := p.peek(); has {
		p.pushErr("Unexpected token '"+tok.Lexeme()+"'", tok.Col)
		return queryast.Expression{}, false
	}

	return expr, true
}

func (p *Parser) parseExpression() (queryast.Value, bool) {
	return p.parseTerm()
}

func (p *Parser) parseTerm() (queryast.Value, bool) {
	lhs, ok := p.parseFactor()
	if !ok {
		return queryast.Value{}, false
	}

	for {
		tok, has := p.peek()
		if !has || (tok.Kind != querytoken.Plus && tok.Kind != querytoken.Minus) {
			return lhs, true
		}
		p.advance()

		rhs, ok := p.parseFactor()
		if !ok {
			return queryast.Value{}, false
		}
		lhs = queryast.NewBinary(tok, lhs, rhs)
	}
}

// parseFactor is right-associative: the recursive call is parseFactor,
// not parseValue, so "a/b/c" parses as "a/(b/c)" — kept exactly as
// query_parser.cpp implements it (spec.md §9 documents the asymmetry
// with conventional left-associative division rather than silently
// fixing it).
func (p *Parser) parseFactor() (queryast.Value, bool) {
	lhs, ok := p.parseValue()
	if !ok {
		return queryast.Value{}, false
	}

	tok, has := p.peek()
	if !has || (tok.Kind != querytoken.Star && tok.Kind != querytoken.Slash) {
		return lhs, true
	}
	p.advance()

	rhs, ok := p.parseFactor()
	if !ok {
		return queryast.Value{}, false
	}
	return queryast.NewBinary(tok, lhs, rhs), true
}

func (p *Parser) parseValue() (queryast.Value, bool) {
	tok, has := p.advance()
	if !has {
		p.pushErr("Unexpected end of input: Expected value", 0)
		return queryast.Value{}, false
	}

	switch tok.Kind {
	case querytoken.LParen:
		expr, ok := p.parseExpression()
		if !ok {
			return queryast.Value{}, false
		}
		rparen, has := p.advance()
		if !has || rparen.Kind != querytoken.RParen {
			col := tok.Col
			if has {
				col = rparen.Col
			}
			p.pushErr("Expected ')' after expression", col)
			return queryast.Value{}, false
		}
		return expr, true

	case querytoken.IntegerLit:
		return queryast.NewInteger(tok.IntValue), true

	case querytoken.DoubleLit:
		return queryast.NewDouble(tok.DoubleValue), true

	case querytoken.Minus:
		value, ok := p.parseValue()
		if !ok {
			return queryast.Value{}, false
		}
		return queryast.NewUnary(tok, value), true

	case querytoken.Identifier:
		if next, has := p.peek(); has && next.Kind == querytoken.LParen {
			return p.parseFunction(tok.Name)
		}
		path, ok := p.parsePath(tok.Name)
		if !ok {
			return queryast.Value{}, false
		}
		return queryast.NewPath(path), true

	default:
		p.pushErr("Unexpected token: Expected value, instead found "+tok.Lexeme(), tok.Col)
		return queryast.Value{}, false
	}
}

func (p *Parser) parseFunction(name string) (queryast.Value, bool) {
	p.advance() // consume '('

	var args []queryast.Value
	if !p.check(querytoken.RParen) {
		for {
			arg, ok := p.parseExpression()
			if !ok {
				return queryast.Value{}, false
			}
			args = append(args, arg)

			tok, has := p.advance()
			if !has {
				p.pushErr("Unexpected end of input: Expected ',' or ')'", 0)
				return queryast.Value{}, false
			}
			if tok.Kind == querytoken.RParen {
				return queryast.NewFunction(name, args), true
			}
			if tok.Kind != querytoken.Comma {
				p.pushErr("Unexpected token: Expected ',', instead found "+tok.Lexeme(), tok.Col)
				return queryast.Value{}, false
			}
		}
	}

	rparen, has := p.advance()
	if !has || rparen.Kind != querytoken.RParen {
		p.pushErr("Expected ')' after argument list", 0)
		return queryast.Value{}, false
	}
	return queryast.NewFunction(name, args), true
}

// parsePath parses the chain of optional subscript + optional
// '.' identifier segments following the leading identifier id.
func (p *Parser) parsePath(id string) (*queryast.Path, bool) {
	path := &queryast.Path{ID: id}

	tok, has := p.peek()
	if !has {
		return path, true
	}

	if tok.Kind == querytoken.LBracket {
		p.advance()
		sub, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		rbracket, has := p.advance()
		if !has || rbracket.Kind != querytoken.RBracket {
			col := tok.Col
			if has {
				col = rbracket.Col
			}
			p.pushErr("Unexpected token: Expected ']' after subscript", col)
			return nil, false
		}
		path.Subscript = &sub
	}

	if dot, has := p.peek(); has && dot.Kind == querytoken.Dot {
		p.advance()
		idTok, has := p.advance()
		if !has || idTok.Kind != querytoken.Identifier {
			col := dot.Col
			if has {
				col = idTok.Col
			}
			p.pushErr("Unexpected end of input: Expected identifier after '.'", col)
			return nil, false
		}
		next, ok := p.parsePath(idTok.Name)
		if !ok {
			return nil, false
		}
		path.Next = next
	}

	return path, true
}
