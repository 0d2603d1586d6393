// Package valueparser implements the ValueParser of spec.md §4.2: value
// literal and named-reference parsing over a internal/lex token stream.
package valueparser

import (
	"fmt"
	"strconv"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
)

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Parser is a ValueParser instance. A new Parser should be constructed per
// value expression; it holds no state that needs resetting between calls
// (Clear exists only for the scratch pad, per spec.md §4.2).
type Parser struct {
	tokens []lex.Token
	pos    int

	last   graph.Value
	hasLast bool
	scratch map[string]graph.Value
}

// New builds a Parser over toks, starting at position 0.
func New(toks []lex.Token) *Parser {
	return &Parser{tokens: toks, scratch: make(map[string]graph.Value)}
}

func (p *Parser) current() lex.Token {
	if p.pos >= len(p.tokens) {
		return lex.Token{Type: lex.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lex.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// Pos returns the parser's current token index, letting a caller resume a
// shared token stream after Parse returns.
func (p *Parser) Pos() int { return p.pos }

// Parse consumes one value expression — a string literal, a number literal,
// a boolean literal, or an identifier reference previously recorded via
// Alias — and records it as the most recently parsed value (spec.md §4.2:
// "parse() ... lastParsed()").
func (p *Parser) Parse() (graph.Value, error) {
	tok := p.current()
	switch tok.Type {
	case lex.STRING:
		p.advance()
		p.last, p.hasLast = graph.String(tok.Value), true
		return p.last, nil
	case lex.NUMBER:
		p.advance()
		n, err := parseFloat(tok.Value)
		if err != nil {
			return graph.Value{}, fmt.Errorf("valueparser: malformed number %q at line %d", tok.Value, tok.Line)
		}
		p.last, p.hasLast = graph.Number(n), true
		return p.last, nil
	case lex.BOOL:
		p.advance()
		p.last, p.hasLast = graph.Bool(tok.Value == "true"), true
		return p.last, nil
	case lex.IDENT:
		p.advance()
		if v, ok := p.scratch[tok.Value]; ok {
			p.last, p.hasLast = v, true
			return v, nil
		}
		return graph.Value{}, fmt.Errorf("valueparser: undefined reference %q at line %d", tok.Value, tok.Line)
	default:
		return graph.Value{}, fmt.Errorf("valueparser: unexpected token %s at line %d, expected a value", tok.Type, tok.Line)
	}
}

// LastParsed returns the value produced by the most recent successful
// Parse call.
func (p *Parser) LastParsed() (graph.Value, bool) {
	return p.last, p.hasLast
}

// Clear empties the scratch pad of parsed constants/aliases (spec.md §4.2:
// "clear()").
func (p *Parser) Clear() {
	p.scratch = make(map[string]graph.Value)
	p.hasLast = false
}

// Snapshot returns a copy of the alias scratch pad, letting a collaborating
// sub-parser (condparser, cmdparser) share the same name resolution without
// holding a reference to this Parser.
func (p *Parser) Snapshot() map[string]graph.Value {
	out := make(map[string]graph.Value, len(p.scratch))
	for k, v := range p.scratch {
		out[k] = v
	}
	return out
}

// Alias records name as an alias for v in the scratch pad, so a later Parse
// of an identifier token resolves to v — the mechanism ValueChangeParser's
// alias/const/var forms use to make a name resolvable as a value reference.
func (p *Parser) Alias(name string, v graph.Value) {
	p.scratch[name] = v
}

// RequireString returns v's string payload, or the exact diagnostic spec.md
// §4.2 names when the caller required a string but the most recently
// parsed value was not one.
func RequireString(v graph.Value) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("Please specify a string containing the Event's name")
	}
	return s, nil
}
