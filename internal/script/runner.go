package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/writable"
	"github.com/jpalmerr/writable/config"
)

// Result summarizes a completed run.
type Result struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Final is the store's value after the last step.
	Final int

	// Notifications counts subscriber calls, including the immediate call
	// made on subscribe.
	Notifications int
}

// Runner executes a [config.Script].
//
// A Runner may be reused; every call to [Runner.Run] starts from a new store
// holding the script's initial value.
type Runner struct {
	script *config.Script
	out    io.Writer
	logger *slog.Logger
}

// NewRunner creates a [Runner] that writes output lines to out.
//
// If logger is nil, [slog.Default] is used.
func NewRunner(script *config.Script, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		script: script,
		out:    out,
		logger: logger,
	}
}

// Run executes every step in order.
//
// Output lines:
//
//	subscriber <name> received <value>
//	value is <value>
//
// Subscribing a name that is already active is skipped with a warning.
// Unsubscribing an unknown name is a no-op. Subscriptions still active after
// the last step are revoked before Run returns.
//
// Run checks ctx between steps and returns ctx.Err() if it is cancelled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID, "script", r.script.Name)

	store := writable.New(r.script.Initial,
		writable.WithName(r.script.Name),
		writable.WithLogger(logger),
	)

	active := make(map[string]writable.Unsubscriber)
	defer func() {
		for _, unsubscribe := range active {
			unsubscribe()
		}
	}()

	notifications := 0
	delay := r.script.StepDelay.Duration()

	logger.Info("run started", "steps", len(r.script.Steps), "initial", r.script.Initial)

	for i, step := range r.script.Steps {
		if i > 0 && delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return Result{}, err
			}
		}
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", "step", i)
			return Result{}, err
		}

		switch step.Action() {
		case "subscribe":
			name := step.Subscribe
			if _, exists := active[name]; exists {
				logger.Warn("subscriber already active, skipping", "step", i, "subscriber", name)
				continue
			}
			active[name] = store.Subscribe(func(v int) {
				notifications++
				fmt.Fprintf(r.out, "subscriber %s received %d\n", name, v)
			})

		case "unsubscribe":
			if unsubscribe, ok := active[step.Unsubscribe]; ok {
				unsubscribe()
				delete(active, step.Unsubscribe)
			}

		case "set":
			store.Set(*step.Set)

		case "update":
			op, err := step.Operation()
			if err != nil {
				return Result{}, fmt.Errorf("steps[%d]: update: %w", i, err)
			}
			store.Update(op.Apply)

		case "print":
			fmt.Fprintf(r.out, "value is %d\n", store.Value())

		default:
			return Result{}, fmt.Errorf("steps[%d]: no action", i)
		}

		logger.Debug("step completed", "step", i, "action", step.Action(), "value", store.Value())
	}

	result := Result{
		RunID:         runID,
		Final:         store.Value(),
		Notifications: notifications,
	}
	logger.Info("run completed", "final", result.Final, "notifications", result.Notifications)
	return result, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
