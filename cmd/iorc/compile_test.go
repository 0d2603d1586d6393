package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileCommandReportsSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.sg")
	require.NoError(t, os.WriteFile(path, []byte(`
Initial_State s0
Final_State s0
state s0 { }
`), 0o644))

	cmd := newRootCommand(newLogger(false))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"compile", path})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "ok (")
}

func TestCompileCommandReportsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sg")
	require.NoError(t, os.WriteFile(path, []byte(`not a valid graph {{{`), 0o644))

	cmd := newRootCommand(newLogger(false))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"compile", path})
	require.Error(t, cmd.Execute())
	require.Contains(t, errOut.String(), "error at line")
}
