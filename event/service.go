package event

import (
	"fmt"
	"sync"

	"github.com/higor-melo/ior/graph"
)

// Service is the EventService of spec.md §4.6: a synchronous registry of
// typed events plus the Event_Handle symbols that bind them to sinks. A
// *Service is shared by a single parse and is safe for concurrent use only
// because nothing in this repository calls it concurrently — the
// sync.RWMutex exists for the same reason the teacher's registries carry
// one: a Service instance could in principle be shared across parses run on
// different goroutines, even though spec.md §5 never does so itself.
type Service struct {
	mu      sync.RWMutex
	events  map[string]*Descriptor
	handles map[string]*Handle
}

// NewService returns an empty EventService.
func NewService() *Service {
	return &Service{
		events:  make(map[string]*Descriptor),
		handles: make(map[string]*Handle),
	}
}

// Register adds a new typed event, failing if name is already registered.
func (s *Service) Register(name string, sig Signature) (*Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateEvent, name)
	}
	d := &Descriptor{name: name, sig: sig}
	s.events[name] = d
	return d, nil
}

// IsRegistered reports whether name has been Register'd.
func (s *Service) IsRegistered(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.events[name]
	return ok
}

// Resolve looks up a previously registered event, failing with
// ErrUnknownEvent if absent.
func (s *Service) Resolve(name string) (*Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	return d, nil
}

// MakeEmitAction builds the command an `emit(...)` statement installs:
// positional argument binding against the event's Signature, failing with
// ErrArgMismatch on arity or type mismatch (spec.md §4.6).
func (s *Service) MakeEmitAction(name string, args []graph.Value) (graph.Command, error) {
	d, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := d.sig.matches(len(args), func(i int) ArgKind { return argKindOf(args[i]) }); err != nil {
		return nil, err
	}
	return graph.CommandEmitEvent{Event: d}, nil
}

func argKindOf(v graph.Value) ArgKind {
	switch v.Kind {
	case graph.KindNumber:
		return KindFloat64
	case graph.KindBool:
		return KindBool
	default:
		return KindString
	}
}

// EventNames returns the registered event names, for "did you mean"
// diagnostic enrichment.
func (s *Service) EventNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.events))
	for name := range s.events {
		names = append(names, name)
	}
	return names
}

// HandleNames returns the declared Event_Handle symbol names, for "did you
// mean" diagnostic enrichment.
func (s *Service) HandleNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.handles))
	for name := range s.handles {
		names = append(names, name)
	}
	return names
}

// DeclareHandle registers a new Event_Handle symbol, failing if name is
// already declared (spec.md §3: "re-declaration is an error").
func (s *Service) DeclareHandle(name string) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.handles[name]; exists {
		return nil, fmt.Errorf("event: handle %q redefined", name)
	}
	h := &Handle{name: name}
	s.handles[name] = h
	return h, nil
}

// ResolveHandle looks up a declared Event_Handle symbol by name, failing
// with ErrUnknownHandle if absent (spec.md §3: "resolution failure is an
// error").
func (s *Service) ResolveHandle(name string) (*Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHandle, name)
	}
	return h, nil
}

// MakeCallbackBind builds the synchronous connect command for a `connect
// NAME (event, sink)` statement: it resolves the named event, binds handle
// to it and to sink, and returns the CommandConnect the builder chains in
// (spec.md §4.6 "synchronous" overload).
func (s *Service) MakeCallbackBind(eventName string, handle *Handle, sink Sink) (graph.Command, error) {
	d, err := s.Resolve(eventName)
	if err != nil {
		return nil, err
	}
	handle.bind(d, sink, nil)
	return graph.CommandConnect{Handle: handle}, nil
}

// MakeCallbackBindAsync is the async overload of MakeCallbackBind: the
// resulting command installs the subscription through proc instead of
// directly, matching eventservice_test.cpp's setupAsyn/EventProcessor
// pairing (spec.md §6.2).
func (s *Service) MakeCallbackBindAsync(eventName string, handle *Handle, sink Sink, proc *Processor) (graph.Command, error) {
	d, err := s.Resolve(eventName)
	if err != nil {
		return nil, err
	}
	handle.bind(d, sink, proc)
	return graph.CommandConnect{Handle: handle}, nil
}

// MakeDisconnect builds the command a `disconnect NAME` statement installs
// (spec.md §4.8 action 8/9).
func (s *Service) MakeDisconnect(handle *Handle) graph.Command {
	return graph.CommandDisconnect{Handle: handle}
}
