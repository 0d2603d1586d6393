package cmdparser

import (
	"fmt"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
)

// ValueChangeParser implements spec.md §4.5: constant definition, variable
// definition, alias definition, and plain assignment, all sharing one
// Parse/AssignCommand/Reset contract.
type ValueChangeParser struct {
	tokens []lex.Token
	pos    int
	values *valueparser.Parser

	cmd    graph.Command // nil for a pure declaration
	parsed bool
}

// NewValueChangeParser builds a ValueChangeParser over toks. values is the
// enclosing statement's ValueParser, used both to resolve references on the
// right-hand side and to record the alias a const/var/alias form declares
// (spec.md §4.2's scratch pad is where StateGraphParser looks later to
// resolve the new name).
func NewValueChangeParser(toks []lex.Token, values *valueparser.Parser) *ValueChangeParser {
	return &ValueChangeParser{tokens: toks, values: values}
}

func (p *ValueChangeParser) current() lex.Token {
	if p.pos >= len(p.tokens) {
		return lex.Token{Type: lex.EOF}
	}
	return p.tokens[p.pos]
}

func (p *ValueChangeParser) advance() lex.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// Pos returns the parser's current token index.
func (p *ValueChangeParser) Pos() int { return p.pos }

func (p *ValueChangeParser) peek() lex.Token {
	if p.pos+1 >= len(p.tokens) {
		return lex.Token{Type: lex.EOF}
	}
	return p.tokens[p.pos+1]
}

// Parse recognizes one of the four forms and stores the resulting command
// (or nil, for a pure declaration) for AssignCommand.
func (p *ValueChangeParser) Parse() error {
	var op graph.AssignOp
	switch p.current().Type {
	case lex.KW_CONST:
		op = graph.OpDeclareConst
		p.advance()
	case lex.KW_VAR:
		op = graph.OpDeclareVar
		p.advance()
	case lex.KW_ALIAS:
		op = graph.OpDeclareAlias
		p.advance()
	case lex.IDENT:
		op = graph.OpAssign
	default:
		return fmt.Errorf("cmdparser: expected const/var/alias/identifier at line %d, got %s", p.current().Line, p.current().Type)
	}

	// const/var forms optionally carry a type name before the declared
	// identifier (e.g. `const int x = 1`); when two identifiers appear back
	// to back, the first is a type annotation this core does not track.
	if op != graph.OpAssign && p.current().Type == lex.IDENT && p.peek().Type == lex.IDENT {
		p.advance()
	}

	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if p.current().Type != lex.EQUALS {
		return fmt.Errorf("cmdparser: expected '=' at line %d", p.current().Line)
	}
	p.advance()

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

	if p.values != nil {
		p.values.Alias(name, v)
	}

	// alias is a pure symbol-table binding (spec.md §4.5, the original's
	// seenvaluechange taking the ac == nil path): the name->value binding is
	// already recorded above, and no runtime assignment command is emitted.
	if op == graph.OpDeclareAlias {
		p.cmd, p.parsed = nil, true
		return nil
	}

	p.cmd, p.parsed = graph.CommandAssign{Op: op, Target: name, Value: v}, true
	return nil
}

func (p *ValueChangeParser) expectIdent() (string, error) {
	tok := p.current()
	if tok.Type != lex.IDENT {
		return "", fmt.Errorf("cmdparser: expected identifier at line %d, got %s", tok.Line, tok.Type)
	}
	p.advance()
	return tok.Value, nil
}

// AssignCommand returns the command produced by Parse: nil for a pure
// alias declaration (spec.md §4.5's "pure declaration" case — a
// symbol-table binding only, no runtime assignment), non-nil for
// const/var/plain assignment, all of which do emit a CommandAssign step.
func (p *ValueChangeParser) AssignCommand() (graph.Command, bool) {
	return p.cmd, p.parsed
}

// Reset clears internal state so ValueChangeParser can be reused.
func (p *ValueChangeParser) Reset() {
	p.cmd, p.parsed = nil, false
}
