// Package jsonparser implements recursive-descent parsing of a
// jsontoken.Token slice into a jsonvalue.Value tree, per the grammar in
// spec.md §4.C:
//
//	value   := object | array | STRING | NUMBER | TRUE | FALSE | NULL
//	object  := '{' (STRING ':' value (',' STRING ':' value)*)? '}'
//	array   := '[' (value (',' value)*)? ']'
//
// It is the typed, position-reporting successor to the teacher's
// (itsadijmbt/JsonParser) parseValue/parseObject/parseArray trio, which
// operated on untyped interface{} and plain fmt.Errorf. Unlike the
// teacher, this parser records diagnostics as diag.Error values in an
// error list, matching the original C++ Parser (src/parser/parser.cpp and
// spec.md §4.C); parsing stops at the first error, so a failed parse
// reports one diagnostic.
package jsonparser

import (
	"github.com/adijmbt/queryjson/internal/diag"
	"github.com/adijmbt/queryjson/internal/jsontoken"
	"github.com/adijmbt/queryjson/internal/jsonvalue"
)

// Parser consumes a borrowed token slice via a head pointer.
type Parser struct {
	tokens []jsontoken.Token
	pos    int
	errors []diag.Error
}

// New creates a Parser over tokens.
func New(tokens []jsontoken.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every diagnostic accumulated during Parse.
func (p *Parser) Errors() []diag.Error { return p.errors }

func (p *Parser) pushErr(message string, row, col uint) {
	p.errors = append(p.errors, diag.New("Parser", message, row, col))
}

func (p *Parser) peek() (jsontoken.Token, bool) {
	if p.pos >= len(p.tokens) {
		return jsontoken.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() (jsontoken.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// Parse parses the entire token stream as a single JSON value and
// reports any trailing tokens as an error, returning the root value and
// the accumulated diagnostics. On failure the value is Null and the
// diagnostic list is non-empty.
func Parse(tokens []jsontoken.Token) (jsonvalue.Value, []diag.Error) {
	p := New(tokens)
	v, ok := p.Parse()
	if !ok {
		return jsonvalue.NewNull(), p.Errors()
	}
	return v, p.Errors()
}

// Parse runs the parser to completion.
func (p *Parser) Parse() (jsonvalue.Value, bool) {
	if len(p.tokens) == 0 {
		p.pushErr("Unexpected end of input", 0, 0)
		return jsonvalue.Value{}, false
	}

	v, ok := p.parseValue()
	if !ok {
		return jsonvalue.Value{}, false
	}

	if tok, has := p.peek(); has {
		p.pushErr("Unexpected token: '"+tok.Lexeme()+"'", tok.Row, tok.Col)
		return jsonvalue.Value{}, false
	}

	return v, true
}

func (p *Parser) parseValue() (jsonvalue.Value, bool) {
	tok, ok := p.advance()
	if !ok {
		p.pushErr("Unexpected end of input", 0, 0)
		return jsonvalue.Value{}, false
	}

	switch tok.Kind {
	case jsontoken.LBrace:
		return p.parseObject(tok)
	case jsontoken.LBracket:
		return p.parseArray(tok)
	case jsontoken.String:
		return jsonvalue.NewString(tok.StringValue), true
	case jsontoken.Number:
		if tok.NumberKind == jsontoken.IntegerNumber {
			return jsonvalue.NewInteger(tok.IntValue), true
		}
		return jsonvalue.NewDouble(tok.DoubleValue), true
	case jsontoken.True:
		return jsonvalue.NewBool(true), true
	case jsontoken.False:
		return jsonvalue.NewBool(false), true
	case jsontoken.Null:
		return jsonvalue.NewNull(), true
	default:
		p.pushErr("Unexpected token: Expected value, instead found "+tok.Lexeme(), tok.Row, tok.Col)
		return jsonvalue.Value{}, false
	}
}

func (p *Parser) parseObject(open jsontoken.Token) (jsonvalue.Value, bool) {
	fields := map[string]jsonvalue.Value{}

	if tok, has := p.peek(); has && tok.Kind == jsontoken.RBrace {
		p.advance()
		return jsonvalue.NewObject(fields), true
	}

	for {
		keyTok, has := p.advance()
		if !has {
			p.pushErr("Unexpected end of input: Expected string key", open.Row, open.Col)
			return jsonvalue.Value{}, false
		}
		if keyTok.Kind != jsontoken.String {
			p.pushErr("Unexpected token: Expected string key, instead found "+keyTok.Lexeme(), keyTok.Row, keyTok.Col)
			return jsonvalue.Value{}, false
		}

		colonTok, has := p.advance()
		if !has || colonTok.Kind != jsontoken.Colon {
			row, col := open.Row, open.Col
			if has {
				row, col = colonTok.Row, colonTok.Col
			}
			p.pushErr("Unexpected token: Expected ':'", row, col)
			return jsonvalue.Value{}, false
		}

		value, ok := p.parseValue()
		if !ok {
			return jsonvalue.Value{}, false
		}

		// Last-write wins on duplicate keys, per spec.md §4.C.
		fields[keyTok.StringValue] = value

		delim, has := p.advance()
		if !has {
			p.pushErr("Unexpected end of input: Expected ',' or '}'", open.Row, open.Col)
			return jsonvalue.Value{}, false
		}
		if delim.Kind == jsontoken.RBrace {
			return jsonvalue.NewObject(fields), true
		}
		if delim.Kind != jsontoken.Comma {
			p.pushErr("Unexpected token: Expected ',' or '}', instead found "+delim.Lexeme(), delim.Row, delim.Col)
			return jsonvalue.Value{}, false
		}

		// Trailing comma before '}' is rejected: the next loop iteration
		// requires a string key and will error on '}' itself.
	}
}

func (p *Parser) parseArray(open jsontoken.Token) (jsonvalue.Value, bool) {
	var items []jsonvalue.Value

	if tok, has := p.peek(); has && tok.Kind == jsontoken.RBracket {
		p.advance()
		return jsonvalue.NewArray(items), true
	}

	for {
		value, ok := p.parseValue()
		if !ok {
			return jsonvalue.Value{}, false
		}
		items = append(items, value)

		delim, has := p.advance()
		if !has {
			p.pushErr("Unexpected end of input: Expected ',' or ']'", open.Row, open.Col)
			return jsonvalue.Value{}, false
		}
		if delim.Kind == jsontoken.RBracket {
			return jsonvalue.NewArray(items), true
		}
		if delim.Kind != jsontoken.Comma {
			p.pushErr("Unexpected token: Expected ',' or ']', instead found "+delim.Lexeme(), delim.Row, delim.Col)
			return jsonvalue.Value{}, false
		}
	}
}
