package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/higor-melo/ior/event"
	"github.com/higor-melo/ior/stategraph"
	"github.com/spf13/cobra"
)

// newWatchCommand recompiles every .sg file under a directory whenever it
// changes. Each recompile is its own independent stategraph.Parse call
// against a freshly read file — nothing partially compiled is ever held
// across saves or swapped into a running graph, so this sits outside the
// "no hot-reload of partially compiled graphs" restriction: there is no
// partial graph here, only a sequence of complete, disposable ones.
func newWatchCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Recompile .sg sources under a directory on every save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				printErr(err)
				return err
			}
			defer watcher.Close()

			if err := addDirRecursive(watcher, dir); err != nil {
				printErr(err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s for .sg changes (ctrl-c to stop)\n", dir)
			for _, path := range sgFilesUnder(dir) {
				compileOne(cmd, logger, path)
			}

			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !strings.HasSuffix(ev.Name, ".sg") {
						continue
					}
					if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					compileOne(cmd, logger, ev.Name)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Error("watch error", "err", err)
				}
			}
		},
	}
	return cmd
}

func compileOne(cmd *cobra.Command, logger *slog.Logger, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("read failed", "file", path, "err", err)
		return
	}

	events := event.NewService()
	g, err := stategraph.Parse(source, events)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, err.Error())
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d states)\n", path, g.StateCount())
}

func addDirRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func sgFilesUnder(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".sg") {
			out = append(out, path)
		}
		return nil
	})
	return out
}
