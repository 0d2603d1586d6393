package lex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	src := "state s0 { entry { } }\n"
	toks := Tokenize(src)

	want := []TokenType{KW_STATE, IDENT, LBRACE, KW_ENTRY, LBRACE, RBRACE, RBRACE, NEWLINE, EOF}
	require.Len(t, toks, len(want))
	for i, tt := range want {
		require.Equalf(t, tt, toks[i].Type, "token %d", i)
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks := Tokenize(`emit("e")`)
	require.Equal(t, KW_EMIT, toks[0].Type)
	require.Equal(t, LPAREN, toks[1].Type)
	require.Equal(t, STRING, toks[2].Type)
	require.Equal(t, "e", toks[2].Value)
	require.Equal(t, RPAREN, toks[3].Type)
}

func TestTokenizePreservesLineNumbers(t *testing.T) {
	src := "state a {\n\n  entry { }\n}\n"
	toks := Tokenize(src)

	var entryLine int
	for _, tok := range toks {
		if tok.Type == KW_ENTRY {
			entryLine = tok.Line
		}
	}
	require.Equal(t, 3, entryLine)
}

func TestTokenizeSkipsComments(t *testing.T) {
	src := "state a { // a state\n  entry { /* nothing */ }\n}\n"
	toks := Tokenize(src)
	for _, tok := range toks {
		require.NotEqual(t, ILLEGAL, tok.Type)
	}
}

func TestTokenizeCommentsDoNotShiftLines(t *testing.T) {
	src := "/* line one\nline two */state a { }\n"
	toks := Tokenize(src)
	require.Equal(t, KW_STATE, toks[0].Type)
	require.Equal(t, 2, toks[0].Line)
}
