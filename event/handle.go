package event

import "github.com/higor-melo/ior/graph"

// Sink is the callback target a `connect`/`disconnect` statement binds a
// Handle to. The parser never inspects a Sink's contents (spec.md §3: "The
// builder owns them"), so it is a tiny opaque marker rather than a function
// value — nothing in this repository calls one.
type Sink interface {
	Describe() string
}

// NamedSink is a Sink that carries only a name. The parser does not produce
// one: it binds the `command` argument of `connectevent` through
// CommandSink.
type NamedSink string

func (s NamedSink) Describe() string { return string(s) }

// commandSink adapts a graph.Command to Sink, used when the sink bound to a
// `connect` statement is itself the result of a docommand (spec.md §8
// scenario 6: `connect h ("e", do nop)`).
type commandSink struct{ cmd graph.Command }

func (s commandSink) Describe() string { return s.cmd.Describe() }

// CommandSink wraps cmd as a Sink.
func CommandSink(cmd graph.Command) Sink { return commandSink{cmd} }

// Handle is the Event_Handle symbol of spec.md §3: declared once via
// `Event_Handle NAME`, then bound to an event and a sink by each `connect
// NAME (event, sink)` statement that names it (a later one rebinds it). It implements
// graph.HandleRef so CommandConnect/CommandDisconnect can reference it
// without package graph importing event.
type Handle struct {
	name    string
	bound   bool
	event   *Descriptor
	sink    Sink
	proc    *Processor // nil for a synchronous bind
}

// HandleName implements graph.HandleRef.
func (h *Handle) HandleName() string { return h.name }

// Bound reports whether bind has been called on h yet.
func (h *Handle) Bound() bool { return h.bound }

// Event returns the event descriptor h is bound to, once Bound.
func (h *Handle) Event() *Descriptor { return h.event }

// Sink returns the sink h is bound to, once Bound.
func (h *Handle) Sink() Sink { return h.sink }

// Processor returns the async dispatcher h was bound with, or nil for a
// synchronous binding.
func (h *Handle) Processor() *Processor { return h.proc }

func (h *Handle) bind(evt *Descriptor, sink Sink, proc *Processor) {
	h.bound = true
	h.event = evt
	h.sink = sink
	h.proc = proc
}
