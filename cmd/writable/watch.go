package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/writable/config"
	"github.com/jpalmerr/writable/internal/script"
	"github.com/jpalmerr/writable/internal/watch"
	"github.com/spf13/cobra"
)

// watchCmd re-runs a script each time its file changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a script whenever its file changes",
	Long: `Run a script, then run it again every time the file is saved.

The script file is held in a store; each successful reload notifies the
store's subscriber, which runs the new version. A file that fails to parse
is reported and the previous version is kept.

Runs until interrupted (Ctrl+C) or SIGTERM.

Example:
  writable watch -c session.yaml
  writable watch -c session.yaml --debounce 250ms`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to script file (required)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period after a change before reloading")
	_ = watchCmd.MarkFlagRequired("config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	w, err := watch.New(path, debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	unsubscribe := w.Store().Subscribe(func(s *config.Script) {
		fmt.Fprintf(out, "--- %s (%d steps)\n", s.Name, len(s.Steps))
		if _, err := script.NewRunner(s, out, logger).Run(ctx); err != nil {
			logger.Warn("run failed", "script", s.Name, "error", err.Error())
		}
	})
	defer unsubscribe()

	return w.Start(ctx)
}
