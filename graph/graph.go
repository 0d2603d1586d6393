package graph

import "fmt"

// CompiledState is the frozen, read-only view of a state node once Build
// has closed the Builder over it.
type CompiledState struct {
	Name        string
	Entry       []Step
	Handle      []Step
	Exit        []Step
	Transitions []Transition
}

// StateGraph is the compiled output of StateGraphParser: an immutable,
// directed graph of states with a designated Init and Final state
// (spec.md §3); whether Final is reachable from Init is not checked. It is safe for concurrent read access by multiple
// goroutines since nothing in this package mutates it after Build returns.
type StateGraph struct {
	states []CompiledState
	byName map[string]StateRef
	init   int
	final  int
}

// StateCount returns the number of states in g.
func (g *StateGraph) StateCount() int { return len(g.states) }

// State returns the compiled state at ref, or (zero, false) if ref is out
// of range.
func (g *StateGraph) State(ref StateRef) (CompiledState, bool) {
	if ref < 0 || int(ref) >= len(g.states) {
		return CompiledState{}, false
	}
	return g.states[ref], true
}

// Lookup resolves a state by name, as recorded during building.
func (g *StateGraph) Lookup(name string) (StateRef, bool) {
	ref, ok := g.byName[name]
	return ref, ok
}

// InitState returns the machine-wide initial state.
func (g *StateGraph) InitState() StateRef { return StateRef(g.init) }

// FinalState returns the machine-wide final state.
func (g *StateGraph) FinalState() StateRef { return StateRef(g.final) }

// Validate re-checks the invariants spec.md §8 lists for every successful
// parse: reachability of Final from Init is explicitly NOT checked here
// (spec.md Non-goals exclude graph-reachability analysis) — this only
// confirms the structural shape Build already guaranteed (valid init and
// final indices, every transition target in range).
func (g *StateGraph) Validate() error {
	if g.init < 0 || g.init >= len(g.states) {
		return fmt.Errorf("graph: invalid init state index %d", g.init)
	}
	if g.final < 0 || g.final >= len(g.states) {
		return fmt.Errorf("graph: invalid final state index %d", g.final)
	}
	for _, s := range g.states {
		for _, t := range s.Transitions {
			if int(t.Target) < 0 || int(t.Target) >= len(g.states) {
				return fmt.Errorf("graph: state %q has a transition to an out-of-range target", s.Name)
			}
		}
	}
	return nil
}
