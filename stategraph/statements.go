package stategraph

import (
	"fmt"

	"github.com/higor-melo/ior/event"
	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/cmdparser"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
)

// parseEELine implements `eeline := ( statevars | eecommand )? newline`
// where `eecommand := disconnectevent | connectevent | docommand |
// statecommand` (spec.md §4.8) — the grammar fragment usable inside
// `entry`/`exit`.
func (p *Parser) parseEELine() error {
	switch p.current().Type {
	case lex.KW_CONST, lex.KW_VAR, lex.KW_ALIAS:
		return p.parseStatevars()
	case lex.IDENT:
		return p.parseStatevars()
	case lex.KW_DISCONNECT:
		return p.parseDisconnect()
	case lex.KW_CONNECT:
		return p.parseConnect()
	case lex.KW_DO:
		return p.parseDoCommand()
	case lex.KW_EMIT:
		return p.parseEmit()
	default:
		tok := p.current()
		return parseErrorAt(tok.Line, fmt.Sprintf("unexpected token %s in entry/exit section", tok.Type))
	}
}

// parseHandleLine implements `handleline := ( statevars | handlecommand )?
// newline` where `handlecommand := docommand | statecommand`.
func (p *Parser) parseHandleLine() error {
	switch p.current().Type {
	case lex.KW_CONST, lex.KW_VAR, lex.KW_ALIAS:
		return p.parseStatevars()
	case lex.IDENT:
		return p.parseStatevars()
	case lex.KW_DO:
		return p.parseDoCommand()
	case lex.KW_EMIT:
		return p.parseEmit()
	default:
		tok := p.current()
		return parseErrorAt(tok.Line, fmt.Sprintf("unexpected token %s in handle section", tok.Type))
	}
}

// parseStatevars implements action 5: obtain the optional command from
// ValueChangeParser; if non-nil, setCommand then proceedToNext(ConditionTrue).
func (p *Parser) parseStatevars() error {
	vcp := cmdparser.NewValueChangeParser(p.tokens[p.pos:], p.values)
	if err := vcp.Parse(); err != nil {
		return parseErrorAt(p.current().Line, err.Error())
	}
	p.pos += vcp.Pos()

	cmd, ok := vcp.AssignCommand()
	if ok && cmd != nil {
		if err := p.builder.SetCommand(cmd); err != nil {
			return parseErrorAt(p.current().Line, err.Error())
		}
		if err := p.builder.ProceedToNext(graph.ConditionTrue()); err != nil {
			return parseErrorAt(p.current().Line, err.Error())
		}
	}
	return nil
}

// parseDoCommand implements action 6: docommand := "do" command.
func (p *Parser) parseDoCommand() error {
	p.advance() // "do"
	cp := cmdparser.New(p.tokens[p.pos:], p.values)
	if err := cp.Parse(); err != nil {
		return parseErrorAt(p.current().Line, err.Error())
	}
	p.pos += cp.Pos()

	cmd, _ := cp.GetCommand()
	if err := p.builder.SetCommand(cmd); err != nil {
		return parseErrorAt(p.current().Line, err.Error())
	}
	return p.connectToNext()
}

// parseEmit implements action 7: emitcommand := "emit" "(" valueRef ")".
func (p *Parser) parseEmit() error {
	tok := p.advance() // "emit"
	if err := p.expect(lex.LPAREN, "'('"); err != nil {
		return err
	}
	val, err := p.parseValueRef()
	if err != nil {
		return err
	}
	if err := p.expect(lex.RPAREN, "')'"); err != nil {
		return err
	}

	name, err := valueparser.RequireString(val)
	if err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	if !p.events.IsRegistered(name) {
		return parseErrorAt(tok.Line, p.suggestEvent(name))
	}
	cmd, err := p.events.MakeEmitAction(name, nil)
	if err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	if err := p.builder.SetCommand(cmd); err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	return p.connectToNext()
}

// parseConnect implements action 8: connectevent := "connect" IDENT "("
// valueRef "," command ")".
func (p *Parser) parseConnect() error {
	tok := p.advance() // "connect"
	handleTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	handle, err := p.events.ResolveHandle(handleTok.Value)
	if err != nil {
		return parseErrorAt(handleTok.Line, p.suggestHandle(handleTok.Value))
	}

	if err := p.expect(lex.LPAREN, "'('"); err != nil {
		return err
	}
	eventVal, err := p.parseValueRef()
	if err != nil {
		return err
	}
	eventName, err := valueparser.RequireString(eventVal)
	if err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	if !p.events.IsRegistered(eventName) {
		return parseErrorAt(tok.Line, p.suggestEvent(eventName))
	}
	if err := p.expect(lex.COMMA, "','"); err != nil {
		return err
	}

	sinkCmd, err := p.parseSinkCommand()
	if err != nil {
		return err
	}
	if err := p.expect(lex.RPAREN, "')'"); err != nil {
		return err
	}

	cmd, err := p.events.MakeCallbackBind(eventName, handle, event.CommandSink(sinkCmd))
	if err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	if err := p.builder.SetCommand(cmd); err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	return p.connectToNext()
}

// parseSinkCommand parses the bare `command` production used as the sink
// argument of connectevent — no leading "do" keyword there, matching
// `connect h ("e", do nop)` in spec.md §8 scenario 6, where the "do" belongs
// to the sink's own docommand wrapping, not to connectevent's grammar
// itself. Either form is accepted here for leniency.
func (p *Parser) parseSinkCommand() (graph.Command, error) {
	if p.current().Type == lex.KW_DO {
		p.advance()
	}
	cp := cmdparser.New(p.tokens[p.pos:], p.values)
	if err := cp.Parse(); err != nil {
		return nil, parseErrorAt(p.current().Line, err.Error())
	}
	p.pos += cp.Pos()
	cmd, _ := cp.GetCommand()
	return cmd, nil
}

// parseDisconnect implements action 9: disconnect… := "disconnect" IDENT.
func (p *Parser) parseDisconnect() error {
	tok := p.advance() // "disconnect"
	handleTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	handle, err := p.events.ResolveHandle(handleTok.Value)
	if err != nil {
		return parseErrorAt(handleTok.Line, p.suggestHandle(handleTok.Value))
	}
	cmd := p.events.MakeDisconnect(handle)
	if err := p.builder.SetCommand(cmd); err != nil {
		return parseErrorAt(tok.Line, err.Error())
	}
	return p.connectToNext()
}

// connectToNext wraps builder.ConnectToNext with this package's diagnostic
// conversion.
func (p *Parser) connectToNext() error {
	if err := p.builder.ConnectToNext(graph.ConditionTrue()); err != nil {
		return parseErrorAt(p.current().Line, err.Error())
	}
	return nil
}

// parseValueRef shares the current state's alias scratch pad with a
// throwaway valueparser.Parser so a value reference can resolve a name
// declared earlier in the same state (spec.md §4.2).
func (p *Parser) parseValueRef() (graph.Value, error) {
	sub := valueparser.New(p.tokens[p.pos:])
	for name, v := range p.values.Snapshot() {
		sub.Alias(name, v)
	}
	v, err := sub.Parse()
	if err != nil {
		return graph.Value{}, parseErrorAt(p.current().Line, err.Error())
	}
	p.pos += sub.Pos()
	return v, nil
}
