package graph

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a compact, lossy CBOR-encodable summary of a compiled
// StateGraph: state names, step counts per chain, and the transition table
// rendered as (guard description, target name, rank) triples. It does not
// round-trip Command/Condition values — those are a closed sum type of Go
// interfaces with no serialization contract of their own (spec.md §1
// Non-goals exclude runtime execution, so there is nothing downstream that
// needs a byte-exact Command back). A Snapshot exists for inspection and
// caching of the *shape* of a compiled graph, not for reconstructing an
// executable one.
type Snapshot struct {
	States []StateSummary `cbor:"states"`
	Init   string         `cbor:"init"`
	Final  string         `cbor:"final"`
}

// StateSummary is one state's contribution to a Snapshot.
type StateSummary struct {
	Name        string                 `cbor:"name"`
	EntrySteps  int                    `cbor:"entry_steps"`
	HandleSteps int                    `cbor:"handle_steps"`
	ExitSteps   int                    `cbor:"exit_steps"`
	Transitions []TransitionSummary    `cbor:"transitions"`
}

// TransitionSummary is one transition's contribution to a StateSummary.
type TransitionSummary struct {
	Guard  string `cbor:"guard"`
	Target string `cbor:"target"`
	Rank   int    `cbor:"rank"`
}

// Snapshot renders g as a Snapshot.
func (g *StateGraph) Snapshot() Snapshot {
	snap := Snapshot{
		States: make([]StateSummary, len(g.states)),
		Init:   g.states[g.init].Name,
		Final:  g.states[g.final].Name,
	}
	for i, s := range g.states {
		ts := make([]TransitionSummary, len(s.Transitions))
		for j, t := range s.Transitions {
			ts[j] = TransitionSummary{
				Guard:  t.Guard.Describe(),
				Target: g.states[t.Target].Name,
				Rank:   t.Rank,
			}
		}
		snap.States[i] = StateSummary{
			Name:        s.Name,
			EntrySteps:  len(s.Entry),
			HandleSteps: len(s.Handle),
			ExitSteps:   len(s.Exit),
			Transitions: ts,
		}
	}
	return snap
}

// Encode renders g's Snapshot as CBOR bytes.
func (g *StateGraph) Encode() ([]byte, error) {
	return cbor.Marshal(g.Snapshot())
}

// DecodeSnapshot parses CBOR bytes produced by Encode back into a Snapshot.
// Note this is NOT the inverse of Encode at the StateGraph level — see the
// Snapshot doc comment.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("graph: decode snapshot: %w", err)
	}
	return snap, nil
}
