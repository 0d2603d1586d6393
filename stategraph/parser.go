// Package stategraph implements the StateGraphParser of spec.md §4.8: the
// top-level grammar driver that manages the state/handle symbol tables,
// orchestrates the sub-parsers in internal/valueparser, internal/condparser,
// and internal/cmdparser, and emits graph.Builder calls to assemble the
// finished *graph.StateGraph.
package stategraph

import (
	"fmt"

	"github.com/higor-melo/ior/event"
	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
)

// Parser holds the transient state of a single parse. A Parser is built
// fresh per call to Parse and discarded afterward (spec.md §5: "the parser
// holds transient sub-parser state whose lifetime ends at reset() or at
// end-of-state"); it is never reused across parses and never touched from
// more than one goroutine.
type Parser struct {
	tokens []lex.Token
	pos    int

	events  *event.Service
	builder *graph.Builder
	values  *valueparser.Parser

	initName, finalName string
	haveInit, haveFinal bool

	currentState graph.StateRef
	rank         int
	pendingCond  graph.Condition
}

// Parse compiles source into a StateGraph, consulting events to resolve
// event names and Event_Handle bindings. On any failure it returns a nil
// graph and a *ParseError (spec.md §6/§7: "No partial StateGraph is ever
// returned").
func Parse(source []byte, events *event.Service) (*graph.StateGraph, error) {
	p := &Parser{
		tokens:       lex.Tokenize(string(source)),
		events:       events,
		builder:      graph.NewBuilder(),
		values:       valueparser.New(nil),
		currentState: graph.NoState,
	}
	return p.run()
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

func (p *Parser) atEnd() bool { return p.current().Type == lex.EOF }

func (p *Parser) skipNewlines() {
	for p.current().Type == lex.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expectIdent() (lex.Token, error) {
	tok := p.current()
	if tok.Type != lex.IDENT {
		return lex.Token{}, parseErrorAt(tok.Line, fmt.Sprintf("expected an identifier, got %s", tok.Type))
	}
	p.advance()
	return tok, nil
}

func (p *Parser) expect(tt lex.TokenType, label string) error {
	tok := p.current()
	if tok.Type != tt {
		return parseErrorAt(tok.Line, fmt.Sprintf("expected %s", label))
	}
	p.advance()
	return nil
}

// run drives the top-level production: varline* state* — actions 1-2 check
// endpoint presence at the state header rather than only at the end
// (DESIGN.md Open Question resolution), so vardecs may be interleaved with
// state blocks in source order.
func (p *Parser) run() (*graph.StateGraph, error) {
	p.skipNewlines()
	for !p.atEnd() {
		tok := p.current()
		switch tok.Type {
		case lex.KW_EVENT_HANDLE, lex.KW_INITIAL_STATE, lex.KW_FINAL_STATE:
			if err := p.parseVardec(); err != nil {
				return nil, err
			}
		case lex.KW_STATE:
			if err := p.parseState(); err != nil {
				return nil, err
			}
		default:
			return nil, typedErrorAt(tok.Line, ErrorStateExpected)
		}
		p.skipNewlines()
	}
	return p.finish()
}

func (p *Parser) parseVardec() error {
	tok := p.advance()
	switch tok.Type {
	case lex.KW_EVENT_HANDLE:
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		if _, err := p.events.DeclareHandle(name.Value); err != nil {
			return parseErrorAt(tok.Line, fmt.Sprintf("Event Handle %s redefined", name.Value))
		}
	case lex.KW_INITIAL_STATE:
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		p.initName, p.haveInit = name.Value, true
	case lex.KW_FINAL_STATE:
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		p.finalName, p.haveFinal = name.Value, true
	}
	return nil
}

// parseState implements action 2 (state header) through action 11 (end of
// state).
func (p *Parser) parseState() error {
	headerTok := p.advance() // KW_STATE
	if !p.haveInit || !p.haveFinal {
		return parseErrorAt(headerTok.Line, "missing Initial_State/Final_State declaration")
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}

	ref, existed := p.builder.Lookup(nameTok.Value)
	if !existed {
		ref = p.builder.NewState(nameTok.Value)
	} else if p.builder.IsDefined(ref) {
		return parseErrorAt(nameTok.Line, fmt.Sprintf("state %s redefined", nameTok.Value))
	}

	if err := p.builder.StartState(ref); err != nil {
		return parseErrorAt(nameTok.Line, err.Error())
	}
	p.currentState = ref
	p.rank = 0

	p.skipNewlines()
	if err := p.expect(lex.LBRACE, "'{'"); err != nil {
		return err
	}

	if err := p.parseStateContent(); err != nil {
		return err
	}

	if err := p.expect(lex.RBRACE, "'}'"); err != nil {
		return err
	}

	if err := p.builder.EndState(); err != nil {
		return parseErrorAt(nameTok.Line, err.Error())
	}
	p.values.Clear()
	p.currentState = graph.NoState
	return nil
}

// parseStateContent implements `content := line*` where `line := (
// statevars | entry | handle | transitions | exit )? newline` (spec.md
// §4.8; the original: `line = !( statevars | entry | handle | transitions
// | exit ) >> newline`) — a bare declaration/assignment may appear directly
// in a state body, sharing the same per-state alias scratch pad (cleared in
// parseState) that entry/handle/exit lines already use.
func (p *Parser) parseStateContent() error {
	for {
		p.skipNewlines()
		if p.current().Type == lex.RBRACE || p.atEnd() {
			return nil
		}
		tok := p.current()
		switch tok.Type {
		case lex.KW_CONST, lex.KW_VAR, lex.KW_ALIAS:
			if err := p.parseStatevars(); err != nil {
				return err
			}
		case lex.IDENT:
			// a bare identifier starts a line only as the assignment form
			// NAME = VALUE; any other word is not a known section keyword
			if p.pos+1 >= len(p.tokens) || p.tokens[p.pos+1].Type != lex.EQUALS {
				return sectionExpectedAt(tok.Line)
			}
			if err := p.parseStatevars(); err != nil {
				return err
			}
		case lex.KW_ENTRY:
			if err := p.parseSection(lex.KW_ENTRY, p.builder.SelectEntryNode, p.parseEELine); err != nil {
				return err
			}
		case lex.KW_EXIT:
			if err := p.parseSection(lex.KW_EXIT, p.builder.SelectExitNode, p.parseEELine); err != nil {
				return err
			}
		case lex.KW_HANDLE:
			if err := p.parseSection(lex.KW_HANDLE, p.builder.SelectHandleNode, p.parseHandleLine); err != nil {
				return err
			}
		case lex.KW_TRANSITIONS:
			if err := p.parseTransitionsSection(); err != nil {
				return err
			}
		default:
			return sectionExpectedAt(tok.Line)
		}
	}
}

func (p *Parser) parseSection(kw lex.TokenType, selectFn func() error, line func() error) error {
	p.advance() // the section keyword
	if err := selectFn(); err != nil {
		return parseErrorAt(p.current().Line, err.Error())
	}
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
		if err := line(); err != nil {
			return err
		}
	}
	return p.expect(lex.RBRACE, "'}'")
}

func (p *Parser) finish() (*graph.StateGraph, error) {
	if p.builder.StateCount() == 0 {
		return nil, parseErrorAt(p.lastLine(), "no states defined")
	}
	if !p.haveInit || !p.haveFinal {
		return nil, parseErrorAt(p.lastLine(), "missing Initial_State/Final_State declaration")
	}
	initRef, ok := p.builder.Lookup(p.initName)
	if !ok || !p.builder.IsDefined(initRef) {
		return nil, parseErrorAt(p.lastLine(), fmt.Sprintf("initial state %s is not defined", p.initName))
	}
	finalRef, ok := p.builder.Lookup(p.finalName)
	if !ok || !p.builder.IsDefined(finalRef) {
		return nil, parseErrorAt(p.lastLine(), fmt.Sprintf("final state %s is not defined", p.finalName))
	}
	p.builder.InitState(initRef)
	p.builder.FinalState(finalRef)

	g, err := p.builder.Build()
	if err != nil {
		return nil, parseErrorAt(p.lastLine(), err.Error())
	}
	return g, nil
}

func (p *Parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}
