// Package parser turns hint expressions into hint trees. The grammar
// is small: union members joined by "|", subscripted containers
// (list, dict, tuple, type, literal), builtin class names, "none",
// "any", capitalized type variables, and parenthesized groups, where a
// multi-member group is the legacy class-tuple notation.
package parser

import (
	"fmt"
	"reflect"

	"github.com/hintwire/hintcheck/internal/hint"
	"github.com/hintwire/hintcheck/internal/lexer"
	"github.com/hintwire/hintcheck/internal/token"
)

// ParseError carries the position of the first offending token.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	errors    []*ParseError
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses one complete hint expression.
func Parse(input string) (hint.Hint, error) {
	p := New(lexer.New(input))
	h := p.parseHint()
	if h != nil && !p.curTokenIs(token.EOF) {
		p.errorf("unexpected trailing %q", p.curToken.Lexeme)
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return h, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, &ParseError{
		Line:   p.peekToken.Line,
		Column: p.peekToken.Column,
		Msg:    fmt.Sprintf("expected %q, got %q", string(t), p.peekToken.Lexeme),
	})
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Line:   p.curToken.Line,
		Column: p.curToken.Column,
		Msg:    fmt.Sprintf(format, args...),
	})
}

// parseHint parses a union: one atom, or several joined by "|".
// Leaves curToken on the token after the expression.
func (p *Parser) parseHint() hint.Hint {
	first := p.parseAtom()
	if first == nil {
		return nil
	}
	if !p.curTokenIs(token.PIPE) {
		return first
	}
	members := []hint.Hint{first}
	for p.curTokenIs(token.PIPE) {
		p.nextToken()
		m := p.parseAtom()
		if m == nil {
			return nil
		}
		members = append(members, m)
	}
	return hint.Union{Members: members}
}

// parseAtom parses one non-union hint and advances past it.
func (p *Parser) parseAtom() hint.Hint {
	switch p.curToken.Type {
	case token.NONE:
		p.nextToken()
		return hint.None{}
	case token.ANY:
		p.nextToken()
		return hint.Any{}
	case token.IDENT:
		return p.parseIdent()
	case token.IDENT_UPPER:
		name := p.curToken.Lexeme
		if p.peekTokenIs(token.LBRACKET) {
			p.errorf("unknown generic %q: generics are declared in code, not in expressions", name)
			return nil
		}
		p.nextToken()
		return hint.TypeVar{Name: name}
	case token.LPAREN:
		return p.parseGroup()
	}
	p.errorf("unexpected %q, expected a hint", p.curToken.Lexeme)
	return nil
}

func (p *Parser) parseIdent() hint.Hint {
	name := p.curToken.Lexeme
	switch name {
	case "list":
		if !p.peekTokenIs(token.LBRACKET) {
			p.nextToken()
			return hint.Sequence{}
		}
		args := p.parseSubscript(1)
		if args == nil {
			return nil
		}
		return hint.Sequence{Child: args[0]}
	case "dict":
		if !p.peekTokenIs(token.LBRACKET) {
			p.nextToken()
			return hint.Mapping{Key: hint.Any{}, Value: hint.Any{}}
		}
		args := p.parseSubscript(2)
		if args == nil {
			return nil
		}
		return hint.Mapping{Key: args[0], Value: args[1]}
	case "tuple":
		return p.parseTuple()
	case "type":
		if !p.peekTokenIs(token.LBRACKET) {
			p.nextToken()
			return hint.Subtype{Of: hint.Any{}}
		}
		args := p.parseSubscript(1)
		if args == nil {
			return nil
		}
		return hint.Subtype{Of: args[0]}
	case "literal":
		return p.parseLiteral()
	}

	if t, ok := hint.LookupClass(name); ok {
		if p.peekTokenIs(token.LBRACKET) {
			p.errorf("class %s is not subscriptable", name)
			return nil
		}
		p.nextToken()
		return hint.Class{Type: t}
	}
	p.errorf("unknown class %q", name)
	return nil
}

// parseSubscript parses "[h, ...]" with exactly count hint arguments,
// advancing past the closing bracket.
func (p *Parser) parseSubscript(count int) []hint.Hint {
	name := p.curToken.Lexeme
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()

	args := make([]hint.Hint, 0, count)
	for {
		h := p.parseHint()
		if h == nil {
			return nil
		}
		args = append(args, h)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.errorf("expected \"]\" closing %s subscription, got %q", name, p.curToken.Lexeme)
		return nil
	}
	p.nextToken()
	if len(args) != count {
		p.errorf("%s takes %d argument(s), got %d", name, count, len(args))
		return nil
	}
	return args
}

// parseTuple handles the three tuple spellings: tuple[()] (empty),
// tuple[X, ...] (variadic) and tuple[X, Y] (fixed, positional).
func (p *Parser) parseTuple() hint.Hint {
	if !p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		return hint.TupleVariadic{Child: hint.Any{}}
	}
	p.nextToken() // [
	p.nextToken()

	if p.curTokenIs(token.LPAREN) && p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		p.nextToken()
		return hint.TupleFixed{}
	}

	var items []hint.Hint
	variadic := false
	for {
		if p.curTokenIs(token.ELLIPSIS) {
			if len(items) != 1 {
				p.errorf("\"...\" must follow exactly one tuple item hint")
				return nil
			}
			variadic = true
			p.nextToken()
			break
		}
		h := p.parseHint()
		if h == nil {
			return nil
		}
		items = append(items, h)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.errorf("expected \"]\" closing tuple subscription, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()

	if variadic {
		return hint.TupleVariadic{Child: items[0]}
	}
	return hint.TupleFixed{Items: items}
}

// parseLiteral parses literal[v, ...] where every argument is a raw
// scalar value, never a nested hint.
func (p *Parser) parseLiteral() hint.Hint {
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()

	var values []any
	for {
		switch p.curToken.Type {
		case token.INT, token.FLOAT, token.STRING:
			values = append(values, p.curToken.Literal)
		case token.TRUE:
			values = append(values, true)
		case token.FALSE:
			values = append(values, false)
		case token.NONE:
			values = append(values, nil)
		default:
			p.errorf("literal arguments are raw values, got %q", p.curToken.Lexeme)
			return nil
		}
		p.nextToken()
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.errorf("expected \"]\" closing literal subscription, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()
	return hint.Literal{Values: values}
}

// parseGroup parses "(h)" as grouping and "(h1, h2, ...)" as the
// legacy tuple-of-classes union notation. A group of plain classes
// stays a class tuple (one flat instance test); anything deeper
// becomes an ordinary union.
func (p *Parser) parseGroup() hint.Hint {
	p.nextToken() // (

	var members []hint.Hint
	for {
		h := p.parseHint()
		if h == nil {
			return nil
		}
		members = append(members, h)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.RPAREN) {
		p.errorf("expected \")\", got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()

	if len(members) == 1 {
		return members[0]
	}
	if tuple, ok := asClassTuple(members); ok {
		return tuple
	}
	return hint.Union{Members: members}
}

func asClassTuple(members []hint.Hint) (hint.Hint, bool) {
	types := make([]reflect.Type, 0, len(members))
	for _, m := range members {
		cls, ok := m.(hint.Class)
		if !ok {
			return nil, false
		}
		types = append(types, cls.Type)
	}
	return hint.ClassTuple{Types: types}, true
}
