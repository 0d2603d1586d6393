// Package cmdparser implements the CommandParser and ValueChangeParser of
// spec.md §4.4 and §4.5: imperative command invocations, and the four
// variable-change forms (const/var/alias definition, plain assignment).
package cmdparser

import (
	"fmt"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
)

// Parser is a CommandParser instance: `name ( arg, arg, ... )`. Contract
// mirrors ConditionParser's (spec.md §4.4): Parse, then GetCommand and
// GetImplTermCondition, then Reset.
type Parser struct {
	tokens []lex.Token
	pos    int
	values *valueparser.Parser

	cmd    graph.Command
	parsed bool
}

// New builds a Parser over toks.
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

func (p *Parser) consume(tt lex.TokenType, expected string) (lex.Token, error) {
	if p.current().Type != tt {
		return lex.Token{}, fmt.Errorf("cmdparser: expected %s at line %d, got %s", expected, p.current().Line, p.current().Type)
	}
	return p.advance(), nil
}

// Pos returns the parser's current token index.
func (p *Parser) Pos() int { return p.pos }

// Parse consumes one command invocation and stores it for GetCommand. The
// argument list's parentheses are optional: a bare name (e.g. `nop`) is a
// zero-argument call, matching spec.md §8 scenario 6's `do nop`. A literal
// argument directly after the name (e.g. `move "north")`) is an error.
func (p *Parser) Parse() error {
	name, err := p.consume(lex.IDENT, "a command name")
	if err != nil {
		return err
	}
	switch p.current().Type {
	case lex.STRING, lex.NUMBER, lex.BOOL:
		return fmt.Errorf("cmdparser: expected '(' before arguments at line %d, got %s", p.current().Line, p.current().Type)
	}
	if p.current().Type != lex.LPAREN {
		p.cmd, p.parsed = graph.CommandCall{Name: name.Value}, true
		return nil
	}
	p.advance()

	var args []graph.Value
	if p.current().Type != lex.RPAREN {
		for {
			sub := valueparser.New(p.tokens[p.pos:])
			if p.values != nil {
				for n, v := range p.values.Snapshot() {
					sub.Alias(n, v)
				}
			}
			v, err := sub.Parse()
			if err != nil {
				return fmt.Errorf("cmdparser: %w", err)
			}
			p.pos += sub.Pos()
			args = append(args, v)

			if p.current().Type != lex.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.consume(lex.RPAREN, "')'"); err != nil {
		return err
	}

	p.cmd, p.parsed = graph.CommandCall{Name: name.Value, Args: args}, true
	return nil
}

// GetCommand returns the command produced by the most recent Parse.
func (p *Parser) GetCommand() (graph.Command, bool) {
	return p.cmd, p.parsed
}

// GetImplTermCondition returns the implicit termination condition attached
// to the most recently parsed command. This core always discards it (spec.md
// §4.4: "an optional implicit termination condition (discarded by this
// core)"); no grammar form currently installs one, so it is always
// ConditionTrue.
func (p *Parser) GetImplTermCondition() graph.Condition {
	return graph.ConditionTrue()
}

// Reset clears internal state so Parser can be reused for another command.
func (p *Parser) Reset() {
	p.cmd, p.parsed = nil, false
}
