package graph

import "fmt"

// StateRef is an opaque handle to a state node in a Builder's arena. Forward
// references (a `select` naming a state before its `state NAME { ... }`
// block appears) are modeled by allocating the arena slot at first mention
// and handing back a StateRef that stays valid for the rest of the parse —
// DESIGN NOTE, spec.md §9: "an arena of state nodes addressed by integer
// index ... avoids back-references and keeps the graph relocatable."
type StateRef int

// NoState is the zero-value-distinct sentinel for "no state selected".
const NoState StateRef = -1

// Step is one (command, guard-to-next) edge in a chain (spec.md §3).
// Command may be nil only for the empty-chain case (a chain with zero
// steps); a Step that exists always carries a non-nil Command.
type Step struct {
	Command Command
	Guard   Condition
}

// Transition is a (guard, target, rank) triple (spec.md §3, Glossary).
// Higher Rank fires first.
type Transition struct {
	Guard  Condition
	Target StateRef
	Rank   int
}

type chainKind int

const (
	chainNone chainKind = iota
	chainEntry
	chainHandle
	chainExit
)

type stateNode struct {
	Name              string
	Defined           bool
	Entry, Handle, Exit []Step
	Transitions       []Transition
}

// Builder is the StateGraphBuilder of spec.md §4.7: an incrementally
// assembled IR with a single insertion cursor. None of its methods are safe
// for concurrent use (spec.md §5).
type Builder struct {
	arena   []*stateNode
	byName  map[string]StateRef
	current StateRef
	chain   chainKind
	pending Command
	init    StateRef
	final   StateRef
}

// NewBuilder returns an empty Builder ready for a single parse.
func NewBuilder() *Builder {
	return &Builder{
		byName:  make(map[string]StateRef),
		current: NoState,
		init:    NoState,
		final:   NoState,
	}
}

// NewState returns the StateRef for name, allocating an undefined state node
// on first mention (idempotent for repeated names — spec.md §4.7).
func (b *Builder) NewState(name string) StateRef {
	if ref, ok := b.byName[name]; ok {
		return ref
	}
	ref := StateRef(len(b.arena))
	b.arena = append(b.arena, &stateNode{Name: name})
	b.byName[name] = ref
	return ref
}

// Lookup returns the StateRef already allocated for name, if any.
func (b *Builder) Lookup(name string) (StateRef, bool) {
	ref, ok := b.byName[name]
	return ref, ok
}

// IsDefined reports whether StartState/EndState has bracketed ref's
// definition.
func (b *Builder) IsDefined(ref StateRef) bool {
	return b.node(ref) != nil && b.node(ref).Defined
}

// StateCount returns the number of state names allocated so far, defined or
// not.
func (b *Builder) StateCount() int { return len(b.arena) }

// Name returns the identifier a StateRef was allocated for.
func (b *Builder) Name(ref StateRef) string {
	if n := b.node(ref); n != nil {
		return n.Name
	}
	return "<invalid>"
}

func (b *Builder) node(ref StateRef) *stateNode {
	if ref < 0 || int(ref) >= len(b.arena) {
		return nil
	}
	return b.arena[ref]
}

// StartState brackets the beginning of state's definition (spec.md §4.7).
// The cursor defaults to the entry chain: a `statevars` line appearing in a
// state's content before any explicit entry/handle/exit section (spec.md
// §4.8's `content := line*`, `line := ( statevars | entry | handle |
// transitions | exit )?`) attaches to entry, the chain that runs on
// entering the state, the same as an explicit `entry { ... }` block would.
func (b *Builder) StartState(state StateRef) error {
	if b.current != NoState {
		return fmt.Errorf("graph: StartState called while state %q is still open", b.Name(b.current))
	}
	if b.node(state) == nil {
		return fmt.Errorf("graph: StartState: invalid state reference")
	}
	b.current = state
	b.chain = chainEntry
	b.pending = nil
	return nil
}

// EndState closes the current state's definition.
func (b *Builder) EndState() error {
	if b.current == NoState {
		return fmt.Errorf("graph: EndState called with no open state")
	}
	if b.pending != nil {
		return fmt.Errorf("graph: EndState: command %q never connected", b.pending.Describe())
	}
	b.node(b.current).Defined = true
	b.current = NoState
	b.chain = chainNone
	return nil
}

func (b *Builder) selectChain(k chainKind) error {
	if b.current == NoState {
		return fmt.Errorf("graph: chain selection outside a state")
	}
	if b.pending != nil {
		return fmt.Errorf("graph: cannot change chain with an unconnected command pending")
	}
	b.chain = k
	return nil
}

// SelectEntryNode, SelectHandleNode, and SelectExitNode switch which chain
// subsequent SetCommand/ConnectToNext/ProceedToNext calls append to.
func (b *Builder) SelectEntryNode() error  { return b.selectChain(chainEntry) }
func (b *Builder) SelectHandleNode() error { return b.selectChain(chainHandle) }
func (b *Builder) SelectExitNode() error   { return b.selectChain(chainExit) }

// SetCommand stores cmd as the pending command at the current cursor. It is
// an error to call SetCommand without a chain selection, or twice in a row
// without an intervening ConnectToNext/ProceedToNext (spec.md §4.7
// invariant).
func (b *Builder) SetCommand(cmd Command) error {
	if b.chain == chainNone {
		return fmt.Errorf("graph: SetCommand called without selecting entry/handle/exit")
	}
	if b.pending != nil {
		return fmt.Errorf("graph: SetCommand called again before the previous command (%q) was connected", b.pending.Describe())
	}
	b.pending = cmd
	return nil
}

// ConnectToNext appends an edge from the pending command to a freshly
// advanced cursor position, taking ownership of guard. It requires a
// pending command (spec.md §4.7: "It is an error to call setCommand without
// a selection" and the symmetric requirement that connectToNext always
// flushes one).
func (b *Builder) ConnectToNext(guard Condition) error {
	if b.pending == nil {
		return fmt.Errorf("graph: ConnectToNext called with no pending command")
	}
	return b.flush(guard)
}

// ProceedToNext advances the cursor. When a command is pending (the
// ValueChangeParser path, spec.md §4.8 action 5) it behaves exactly like
// ConnectToNext. When nothing is pending — the common case right after an
// eecommand/handlecommand already flushed its own edge via ConnectToNext —
// it is a deliberate no-op: the cursor is already positioned for the next
// statement, matching spec.md §4.8 action 4's "so the next statement
// appends after it" without inserting a spurious empty step.
func (b *Builder) ProceedToNext(guard Condition) error {
	if b.pending == nil {
		return nil
	}
	return b.flush(guard)
}

func (b *Builder) flush(guard Condition) error {
	if guard == nil {
		guard = ConditionTrue()
	}
	node := b.node(b.current)
	step := Step{Command: b.pending, Guard: guard}
	switch b.chain {
	case chainEntry:
		node.Entry = append(node.Entry, step)
	case chainHandle:
		node.Handle = append(node.Handle, step)
	case chainExit:
		node.Exit = append(node.Exit, step)
	default:
		return fmt.Errorf("graph: no chain selected")
	}
	b.pending = nil
	return nil
}

// TransitionSet records an outbound transition from `from` with the given
// guard, target, and rank (spec.md §4.7). Duplicate targets within one
// state are permitted and recorded as distinct transitions (spec.md §9 Open
// Question 2); duplicate ranks within a state are rejected, since spec.md
// §3's invariant requires rank values to be unique per state.
func (b *Builder) TransitionSet(from, target StateRef, guard Condition, rank int) error {
	node := b.node(from)
	if node == nil {
		return fmt.Errorf("graph: TransitionSet: invalid source state")
	}
	if b.node(target) == nil {
		return fmt.Errorf("graph: TransitionSet: invalid target state")
	}
	for _, t := range node.Transitions {
		if t.Rank == rank {
			return fmt.Errorf("graph: TransitionSet: duplicate rank %d in state %q", rank, node.Name)
		}
	}
	if guard == nil {
		guard = ConditionTrue()
	}
	node.Transitions = append(node.Transitions, Transition{Guard: guard, Target: target, Rank: rank})
	return nil
}

// InitState records the machine-wide initial state.
func (b *Builder) InitState(state StateRef) { b.init = state }

// FinalState records the machine-wide final state.
func (b *Builder) FinalState(state StateRef) { b.final = state }

// Build assembles the finished StateGraph, defensively re-checking the
// structural invariants spec.md §8 lists as properties of every successful
// parse (exactly one init/final, every transition target in the state set,
// every state defined). StateGraphParser is responsible for the
// user-visible semantic diagnostics (spec.md §4.8 action 12); Build's error
// here should never trigger in a correctly driven parse — it exists as a
// last defensive check before an IR escapes this package.
func (b *Builder) Build() (*StateGraph, error) {
	if b.init == NoState || b.final == NoState {
		return nil, fmt.Errorf("graph: Build called before InitState/FinalState")
	}
	for _, n := range b.arena {
		if !n.Defined {
			return nil, fmt.Errorf("graph: Build: state %q referenced but never defined", n.Name)
		}
		for _, t := range n.Transitions {
			if b.node(t.Target) == nil {
				return nil, fmt.Errorf("graph: Build: transition in %q targets an unknown state", n.Name)
			}
		}
	}

	states := make([]CompiledState, len(b.arena))
	for i, n := range b.arena {
		states[i] = CompiledState{
			Name:        n.Name,
			Entry:       n.Entry,
			Handle:      n.Handle,
			Exit:        n.Exit,
			Transitions: n.Transitions,
		}
	}
	return &StateGraph{
		states: states,
		byName: b.byName,
		init:   int(b.init),
		final:  int(b.final),
	}, nil
}
