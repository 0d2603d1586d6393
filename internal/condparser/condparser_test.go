package condparser

import (
	"testing"

	"github.com/higor-melo/ior/graph"
	"github.com/higor-melo/ior/internal/lex"
	"github.com/higor-melo/ior/internal/valueparser"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleComparison(t *testing.T) {
	p := New(lex.Tokenize(`"a" == "a"`), nil)
	require.NoError(t, p.Parse())
	cond, ok := p.GetParseResult()
	require.True(t, ok)
	require.Equal(t, `"a" == "a"`, cond.Describe())
}

func TestParseNotEqual(t *testing.T) {
	p := New(lex.Tokenize(`"a" != "b"`), nil)
	require.NoError(t, p.Parse())
	cond, _ := p.GetParseResult()
	require.Equal(t, `"a" != "b"`, cond.Describe())
}

func TestParseAndOrPrecedence(t *testing.T) {
	p := New(lex.Tokenize(`"a" == "a" && "b" == "b" || "c" == "d"`), nil)
	require.NoError(t, p.Parse())
	cond, _ := p.GetParseResult()

	top, ok := cond.(graph.ConditionBinary)
	require.True(t, ok)
	require.Equal(t, graph.OpOr, top.Op)

	left, ok := top.Left.(graph.ConditionBinary)
	require.True(t, ok)
	require.Equal(t, graph.OpAnd, left.Op)

	_, ok = top.Right.(graph.ConditionCompare)
	require.True(t, ok)
}

func TestParseNegation(t *testing.T) {
	p := New(lex.Tokenize(`!"a" == "a"`), nil)
	require.NoError(t, p.Parse())
	cond, _ := p.GetParseResult()
	require.Equal(t, `!"a" == "a"`, cond.Describe())
}

func TestResetAllowsReuse(t *testing.T) {
	p := New(lex.Tokenize(`"a" == "a"`), nil)
	require.NoError(t, p.Parse())
	p.Reset()
	_, ok := p.GetParseResult()
	require.False(t, ok)
}

func TestParseUsesSharedAliases(t *testing.T) {
	vp := valueparser.New(nil)
	vp.Alias("mode", graph.String("auto"))
	p := New(lex.Tokenize(`mode == "auto"`), vp)
	require.NoError(t, p.Parse())
	cond, _ := p.GetParseResult()
	require.Equal(t, `"auto" == "auto"`, cond.Describe())
}
