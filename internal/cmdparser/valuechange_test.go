package cmdparser

import (
	"testing"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
	"github.com/stretchr/testify/require"
)

func TestParseConstDeclaration(t *testing.T) {
	vp := valueparser.New(nil)
	p := NewValueChangeParser(lex.Tokenize(`const max_speed = 10`), vp)
	require.NoError(t, p.Parse())
	cmd, ok := p.AssignCommand()
	require.True(t, ok)
	require.Equal(t, "const max_speed = 10", cmd.Describe())

	snap := vp.Snapshot()
	require.Equal(t, graph.Number(10), snap["max_speed"])
}

func TestParseConstDeclarationWithTypeAnnotation(t *testing.T) {
	vp := valueparser.New(nil)
	p := NewValueChangeParser(lex.Tokenize(`const int x = 1`), vp)
	require.NoError(t, p.Parse())
	cmd, _ := p.AssignCommand()
	require.Equal(t, "const x = 1", cmd.Describe())
}

func TestParseVarAndAliasDeclaration(t *testing.T) {
	vp := valueparser.New(nil)
	p := NewValueChangeParser(lex.Tokenize(`var counter = 0`), vp)
	require.NoError(t, p.Parse())
	cmd, _ := p.AssignCommand()
	require.Equal(t, "var counter = 0", cmd.Describe())

	p2 := NewValueChangeParser(lex.Tokenize(`alias door = "front"`), vp)
	require.NoError(t, p2.Parse())
	cmd2, ok := p2.AssignCommand()
	require.True(t, ok)
	require.Nil(t, cmd2)

	snap := vp.Snapshot()
	require.Equal(t, graph.String("front"), snap["door"])
}

// TestParseAliasIsPureDeclaration covers spec.md §4.5's pure-declaration
// case: alias binds a name in the scratch pad but emits no command, unlike
// const/var/plain assignment which all produce a runtime CommandAssign.
func TestParseAliasIsPureDeclaration(t *testing.T) {
	vp := valueparser.New(nil)
	p := NewValueChangeParser(lex.Tokenize(`alias x = 1`), vp)
	require.NoError(t, p.Parse())
	cmd, ok := p.AssignCommand()
	require.True(t, ok)
	require.Nil(t, cmd)
}

func TestParsePlainAssignment(t *testing.T) {
	vp := valueparser.New(nil)
	vp.Alias("counter", graph.Number(0))
	p := NewValueChangeParser(lex.Tokenize(`counter = 5`), vp)
	require.NoError(t, p.Parse())
	cmd, _ := p.AssignCommand()
	require.Equal(t, "counter = 5", cmd.Describe())
}

func TestParseRejectsMissingEquals(t *testing.T) {
	p := NewValueChangeParser(lex.Tokenize(`var counter 0`), nil)
	require.Error(t, p.Parse())
}

func TestValueChangeResetAllowsReuse(t *testing.T) {
	p := NewValueChangeParser(lex.Tokenize(`var counter = 0`), nil)
	require.NoError(t, p.Parse())
	p.Reset()
	_, ok := p.AssignCommand()
	require.False(t, ok)
}
