package stategraph

import (
	"fmt"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/condparser"
	"github.com/higor-melo/ior/internal/lex"
)

// parseTransitionsSection implements the `transitions { translist }` block.
func (p *Parser) parseTransitionsSection() error {
	p.advance() // "transitions"
	p.skipNewlines()
	if err := p.expect(lex.LBRACE, "'{'"); err != nil {
		return err
	}
	for {
		p.skipNewlines()
		if p.current().Type == lex.RBRACE {
			break
		}
		if p.atEnd() {
			return syntaxErrorAt(p.current().Line)
		}
		if err := p.parseTransLine(); err != nil {
			return err
		}
	}
	return p.expect(lex.RBRACE, "'}'")
}

// parseTransLine implements action 10: `transline := ( "if" condition
// "then" )? "select" IDENT`. Transition rank decreases by one per line
// within the enclosing state, matching spec.md §8's invariant that ranks
// are strictly decreasing and pairwise distinct within a state.
func (p *Parser) parseTransLine() error {
	tok := p.current()
	switch tok.Type {
	case lex.KW_IF:
		p.advance()
		cp := condparser.New(p.tokens[p.pos:], p.values)
		if err := cp.Parse(); err != nil {
			return parseErrorAt(tok.Line, err.Error())
		}
		p.pos += cp.Pos()
		cond, _ := cp.GetParseResult()

		p.skipNewlines()
		if p.current().Type != lex.KW_THEN {
			return parseErrorAt(p.current().Line, "expected 'then' after 'if' condition, followed by 'select'")
		}
		p.advance()
		p.skipNewlines()
		if p.current().Type != lex.KW_SELECT {
			return parseErrorAt(p.current().Line, "expected 'select' after 'if ... then'")
		}
		p.pendingCond = cond
		return p.parseSelector()

	case lex.KW_SELECT:
		p.pendingCond = nil
		return p.parseSelector()

	default:
		return typedErrorAt(tok.Line, ErrorTransitionExpected)
	}
}

// parseSelector implements the "select" IDENT half of action 10, forward-
// referencing the target state via graph.Builder.NewState when it has not
// been defined yet (DESIGN.md Open Question resolution: forward references
// are modeled as undefined arena slots, resolved when the state is later
// declared).
func (p *Parser) parseSelector() error {
	p.advance() // "select"
	targetTok, err := p.expectIdent()
	if err != nil {
		return err
	}

	target, existed := p.builder.Lookup(targetTok.Value)
	if !existed {
		target = p.builder.NewState(targetTok.Value)
	}

	cond := p.pendingCond
	if cond == nil {
		cond = graph.ConditionTrue()
	}

	if err := p.builder.TransitionSet(p.currentState, target, cond, p.rank); err != nil {
		return parseErrorAt(targetTok.Line, fmt.Sprintf("transition rank %d: %s", p.rank, err.Error()))
	}
	p.rank--
	p.pendingCond = nil
	return nil
}
