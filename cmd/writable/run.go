package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/writable/config"
	"github.com/jpalmerr/writable/internal/script"
	"github.com/spf13/cobra"
)

// runCmd runs a script once.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a script against a new store",
	Long: `Run a script against a new integer store and print what subscribers receive.

Without --config the built-in count session is run: a logger subscribes,
the counter is set and updated a few times, the logger unsubscribes, and a
final update goes unobserved.

Example:
  writable run
  writable run -c session.yaml
  writable run --config session.toml --log-level debug`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to script file (.yaml, .yml, or .toml)")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	s := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		s, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load script: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := script.NewRunner(s, cmd.OutOrStdout(), logger).Run(ctx); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}
