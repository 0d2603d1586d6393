package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEncodeDecodeRoundTrip(t *testing.T) {
	g := buildLinear(t)

	data, err := g.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)

	want := g.Snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotSummarizesShape(t *testing.T) {
	g := buildLinear(t)
	snap := g.Snapshot()

	require.Equal(t, "s0", snap.Init)
	require.Equal(t, "s1", snap.Final)
	require.Len(t, snap.States, 2)

	var s0 StateSummary
	for _, s := range snap.States {
		if s.Name == "s0" {
			s0 = s
		}
	}
	require.Equal(t, 1, s0.HandleSteps)
	require.Len(t, s0.Transitions, 1)
	require.Equal(t, "s1", s0.Transitions[0].Target)
	require.Equal(t, "true", s0.Transitions[0].Guard)
}
