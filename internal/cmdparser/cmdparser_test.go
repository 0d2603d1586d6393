package cmdparser

import (
	"testing"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/stretchr/testify/require"
)

func TestParseCommandNoArgs(t *testing.T) {
	p := New(lex.Tokenize(`stop()`), nil)
	require.NoError(t, p.Parse())
	cmd, ok := p.GetCommand()
	require.True(t, ok)
	require.Equal(t, "stop()", cmd.Describe())
	require.True(t, graph.IsConditionTrue(p.GetImplTermCondition()))
}

func TestParseCommandWithArgs(t *testing.T) {
	p := New(lex.Tokenize(`move("north", 1.5)`), nil)
	require.NoError(t, p.Parse())
	cmd, _ := p.GetCommand()
	require.Equal(t, `move("north", 1.5)`, cmd.Describe())
}

func TestParseCommandMissingParenFails(t *testing.T) {
	p := New(lex.Tokenize(`move "north")`), nil)
	require.Error(t, p.Parse())
}

func TestResetAllowsReuse(t *testing.T) {
	p := New(lex.Tokenize(`stop()`), nil)
	require.NoError(t, p.Parse())
	p.Reset()
	_, ok := p.GetCommand()
	require.False(t, ok)
}
