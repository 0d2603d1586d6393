// Command iorc is the state-graph compiler's CLI: compile parses a .sg
// source file and reports success or diagnostics, props loads and dumps a
// property document, and watch recompiles a directory of graph sources on
// every save. Re-expressed with cobra from cmd/devcmd/main.go's flag-based
// shape, since cobra is a real dependency across the retrieved pack
// (ground: cli/go.mod).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := newLogger(os.Getenv("IORC_DEBUG") != "")
	slog.SetDefault(logger)

	root := newRootCommand(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "iorc",
		Short:         "Compile and inspect state-graph sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCompileCommand(logger))
	root.AddCommand(newPropsCommand(logger))
	root.AddCommand(newWatchCommand(logger))
	return root
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printErr(err error) {
	fmt.Fprintf(os.Stderr, "iorc: %v\n", err)
}
