// Package condparser implements the ConditionParser of spec.md §4.3: a
// boolean-expression grammar fragment over value comparisons, yielding an
// opaque graph.Condition.
//
//	condition   := orExpr
//	orExpr      := andExpr ( "||" andExpr )*
//	andExpr     := unary ( "&&" unary )*
//	unary       := "!" unary | comparison
//	comparison  := value ( ("==" | "!=") value )?
package condparser

import (
	"fmt"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
)

// Parser is a ConditionParser instance. Contract mirrors spec.md §4.3:
// Parse, then GetParseResult, then Reset; two Parse calls in a row without
// an intervening Reset is a programmer error this package does not defend
// against, matching the contract's own wording.
type Parser struct {
	tokens []lex.Token
	pos    int
	values *valueparser.Parser

	result graph.Condition
	parsed bool
}

// New builds a Parser over toks. values supplies alias/const resolution
// shared with the enclosing statement's ValueParser scratch pad.
func New(toks []lex.Token, values *valueparser.Parser) *Parser {
	return &Parser{tokens: toks, values: values}
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

// Pos returns the parser's current token index.
func (p *Parser) Pos() int { return p.pos }

// Parse consumes one boolean expression and stores it for GetParseResult.
func (p *Parser) Parse() error {
	cond, err := p.parseOr()
	if err != nil {
		return err
	}
	p.result, p.parsed = cond, true
	return nil
}

// GetParseResult returns the condition produced by the most recent Parse.
func (p *Parser) GetParseResult() (graph.Condition, bool) {
	return p.result, p.parsed
}

// Reset clears internal state so Parser can be reused for another
// expression.
func (p *Parser) Reset() {
	p.result, p.parsed = nil, false
}

func (p *Parser) parseOr() (graph.Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == lex.OR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = graph.ConditionBinary{Op: graph.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (graph.Condition, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current().Type == lex.AND {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = graph.ConditionBinary{Op: graph.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (graph.Condition, error) {
	if p.current().Type == lex.NOT {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return graph.ConditionNot{X: inner}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (graph.Condition, error) {
	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lex.EQ, lex.NEQ:
		op := graph.CmpEq
		if p.current().Type == lex.NEQ {
			op = graph.CmpNeq
		}
		p.advance()
		right, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return graph.ConditionCompare{Op: op, Left: left, Right: right}, nil
	default:
		return graph.ConditionCompare{Op: graph.CmpEq, Left: left, Right: graph.Bool(true)}, nil
	}
}

// parseValue resolves one operand. An identifier not present in the shared
// alias scratch pad is not a parse error here — conditions may name an
// external predicate (e.g. `if cond1 then select b`, spec.md §8 scenario 3)
// that this core never evaluates (spec.md §1 Non-goals), so it is carried
// through as an opaque symbolic string value instead of failing resolution.
func (p *Parser) parseValue() (graph.Value, error) {
	if tok := p.current(); tok.Type == lex.IDENT {
		if p.values == nil {
			p.advance()
			return graph.String(tok.Value), nil
		}
		if _, ok := p.values.Snapshot()[tok.Value]; !ok {
			p.advance()
			return graph.String(tok.Value), nil
		}
	}

	sub := valueparser.New(p.tokens[p.pos:])
	sub.Clear()
	// share the enclosing scratch pad's aliases
	if p.values != nil {
		for name, v := range p.values.Snapshot() {
			sub.Alias(name, v)
		}
	}
	v, err := sub.Parse()
	if err != nil {
		return graph.Value{}, fmt.Errorf("condparser: %w", err)
	}
	p.pos += sub.Pos()
	return v, nil
}
