package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/higor-melo/ior/event"
	"github.com/higor-melo/ior/stategraph"
	"github.com/spf13/cobra"
)

func newCompileCommand(logger *slog.Logger) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "compile <file.sg>",
		Short: "Parse a state-graph source file and report success or diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				printErr(fmt.Errorf("reading %s: %w", path, err))
				return err
			}

			events := event.NewService()
			g, err := stategraph.Parse(source, events)
			if err != nil {
				var perr *stategraph.ParseError
				if errors.As(err, &perr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, perr.Error())
				} else {
					printErr(err)
				}
				return err
			}

			logger.Debug("compiled state graph", "file", path, "states", g.StateCount())
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d states)\n", path, g.StateCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the success summary line")
	return cmd
}
