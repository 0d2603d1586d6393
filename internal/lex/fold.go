package lex

import "golang.org/x/text/cases"

var foldCaser = cases.Fold()

// FoldTypeName normalizes an identifier for case-insensitive comparison
// (e.g. cmd/iorc props matching a CLI-supplied `--type` filter against a
// property's declared type name) using full Unicode case folding rather
// than the lexer's own ASCII-only scanning rules.
func FoldTypeName(s string) string {
	return foldCaser.String(s)
}
