package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildLinear builds a two-state, one-transition graph: s0 --(true)--> s1,
// where s0's handle chain holds one nop step and s1 has empty chains.
func buildLinear(t *testing.T) *StateGraph {
	t.Helper()
	b := NewBuilder()

	s0 := b.NewState("s0")
	s1 := b.NewState("s1")

	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.SelectHandleNode())
	require.NoError(t, b.SetCommand(CommandNop{}))
	require.NoError(t, b.ConnectToNext(ConditionTrue()))
	require.NoError(t, b.TransitionSet(s0, s1, ConditionTrue(), 0))
	require.NoError(t, b.EndState())

	require.NoError(t, b.StartState(s1))
	require.NoError(t, b.EndState())

	b.InitState(s0)
	b.FinalState(s1)

	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilderLinearGraph(t *testing.T) {
	g := buildLinear(t)
	require.Equal(t, 2, g.StateCount())
	require.NoError(t, g.Validate())

	s0ref, ok := g.Lookup("s0")
	require.True(t, ok)
	s0, ok := g.State(s0ref)
	require.True(t, ok)
	require.Len(t, s0.Handle, 1)
	require.Equal(t, "nop", s0.Handle[0].Command.Describe())
	require.Len(t, s0.Transitions, 1)
	require.True(t, IsConditionTrue(s0.Transitions[0].Guard))

	require.Equal(t, g.InitState(), s0ref)
}

func TestBuilderForwardReference(t *testing.T) {
	b := NewBuilder()

	// select s1 (used as a transition target) before s1's own block appears.
	s0 := b.NewState("s0")
	s1 := b.NewState("s1")
	require.False(t, b.IsDefined(s1))

	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.TransitionSet(s0, s1, ConditionTrue(), 0))
	require.NoError(t, b.EndState())

	require.NoError(t, b.StartState(s1))
	require.NoError(t, b.EndState())
	require.True(t, b.IsDefined(s1))

	b.InitState(s0)
	b.FinalState(s1)
	_, err := b.Build()
	require.NoError(t, err)
}

func TestBuilderRejectsUnconnectedCommand(t *testing.T) {
	b := NewBuilder()
	s0 := b.NewState("s0")
	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.SelectEntryNode())
	require.NoError(t, b.SetCommand(CommandNop{}))
	require.Error(t, b.EndState())
}

func TestBuilderRejectsDuplicateRank(t *testing.T) {
	b := NewBuilder()
	s0 := b.NewState("s0")
	s1 := b.NewState("s1")
	s2 := b.NewState("s2")
	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.TransitionSet(s0, s1, ConditionTrue(), 0))
	require.Error(t, b.TransitionSet(s0, s2, ConditionTrue(), 0))
}

func TestBuilderBuildRejectsUndefinedState(t *testing.T) {
	b := NewBuilder()
	s0 := b.NewState("s0")
	s1 := b.NewState("s1") // referenced, never started/ended

	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.TransitionSet(s0, s1, ConditionTrue(), 0))
	require.NoError(t, b.EndState())

	b.InitState(s0)
	b.FinalState(s0)
	_, err := b.Build()
	require.Error(t, err)
}

func TestProceedToNextNoOpWithoutPending(t *testing.T) {
	b := NewBuilder()
	s0 := b.NewState("s0")
	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.SelectHandleNode())
	// ProceedToNext with nothing pending must not panic or add a step.
	require.NoError(t, b.ProceedToNext(ConditionTrue()))
	require.NoError(t, b.EndState())

	state, _ := b.node(s0), true
	require.Empty(t, state.Handle)
}

func TestProceedToNextFlushesPendingCommand(t *testing.T) {
	b := NewBuilder()
	s0 := b.NewState("s0")
	require.NoError(t, b.StartState(s0))
	require.NoError(t, b.SelectHandleNode())
	require.NoError(t, b.SetCommand(CommandAssign{Op: OpDeclareVar, Target: "x", Value: Number(1)}))
	require.NoError(t, b.ProceedToNext(ConditionTrue()))
	require.NoError(t, b.EndState())

	state := b.node(s0)
	require.Len(t, state.Handle, 1)
}
