package graph

import "fmt"

// Command is the opaque action value CommandParser, ValueChangeParser, and
// EventService produce; the builder stores it on a chain step. Like
// Condition, it is a closed sum type (spec.md §9 DESIGN NOTE) rather than an
// interface implemented ad hoc by every collaborator — except for the two
// event-related kinds below, which must be able to reference an
// event/handle object owned by package event without event importing graph
// back, so those two kinds hold a small reference interface instead of a
// concrete struct.
type Command interface {
	Describe() string
	isCommand()
}

// CommandNop does nothing; it grounds the "do nop" examples in spec.md §8
// scenario 6. ValueChangeParser does not use it: a pure declaration yields
// a nil command instead.
type CommandNop struct{}

func (CommandNop) Describe() string { return "nop" }
func (CommandNop) isCommand()       {}

// CommandCall is a generic imperative command invocation: a command name
// plus positional arguments, the form CommandParser's `command` grammar
// fragment produces for anything that isn't a declaration, assignment,
// emit, connect, or disconnect.
type CommandCall struct {
	Name string
	Args []Value
}

func (c CommandCall) Describe() string {
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Describe()
	}
	return s + ")"
}
func (CommandCall) isCommand() {}

// AssignOp is the operator ValueChangeParser's assignment form installs.
type AssignOp int

const (
	OpDeclareConst AssignOp = iota
	OpDeclareVar
	OpDeclareAlias
	OpAssign
)

// CommandAssign is the command ValueChangeParser.AssignCommand returns for
// a non-nil declaration/assignment (spec.md §4.5): `const`/`var`
// definitions and plain `NAME = VALUE` assignment all produce one of these,
// distinguished by Op. An `alias` definition produces no command, so
// ValueChangeParser never emits OpDeclareAlias.
type CommandAssign struct {
	Op     AssignOp
	Target string
	Value  Value
}

func (c CommandAssign) Describe() string {
	switch c.Op {
	case OpDeclareConst:
		return fmt.Sprintf("const %s = %s", c.Target, c.Value.Describe())
	case OpDeclareVar:
		return fmt.Sprintf("var %s = %s", c.Target, c.Value.Describe())
	case OpDeclareAlias:
		return fmt.Sprintf("alias %s = %s", c.Target, c.Value.Describe())
	default:
		return fmt.Sprintf("%s = %s", c.Target, c.Value.Describe())
	}
}
func (CommandAssign) isCommand() {}

// EventRef is the minimal view of a registered event CommandEmitEvent needs;
// package event's Descriptor implements it, keeping graph free of an import
// on event (event already imports graph for Command/Condition/Value).
type EventRef interface {
	EventName() string
}

// CommandEmitEvent is the command built by EventService.MakeEmitAction
// (spec.md §6: "CommandEmitEvent(event) constructor").
type CommandEmitEvent struct {
	Event EventRef
}

func (c CommandEmitEvent) Describe() string { return "emit(" + c.Event.EventName() + ")" }
func (CommandEmitEvent) isCommand()         {}

// HandleRef is the minimal view of an Event_Handle symbol the
// connect/disconnect commands need; package event's Handle implements it.
type HandleRef interface {
	HandleName() string
}

// CommandConnect is the command handle.createConnect() returns (spec.md
// §4.8 action 8): installing it subscribes the handle's bound sink to its
// bound event.
type CommandConnect struct {
	Handle HandleRef
}

func (c CommandConnect) Describe() string { return "connect(" + c.Handle.HandleName() + ")" }
func (CommandConnect) isCommand()         {}

// CommandDisconnect is the command handle.createDisconnect() returns
// (spec.md §4.8 action 9).
type CommandDisconnect struct {
	Handle HandleRef
}

func (c CommandDisconnect) Describe() string { return "disconnect(" + c.Handle.HandleName() + ")" }
func (CommandDisconnect) isCommand()         {}
