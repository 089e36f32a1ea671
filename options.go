package writable

import (
	"log/slog"
)

// storeConfig holds mutable state during Store construction.
type storeConfig struct {
	name          string
	logger        *slog.Logger
	recoverPanics bool
}

// Option is a function that configures a [Store] during construction.
//
// Built-in options: [WithName], [WithLogger], [WithPanicRecovery].
// Nil options are ignored.
type Option func(*storeConfig)

// WithName sets a label for the store that appears in log records.
//
// Defaults to "store" if not specified or empty.
//
// Example:
//
//	theme := writable.New("dark", writable.WithName("theme"))
func WithName(name string) Option {
	return func(cfg *storeConfig) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithLogger sets a custom [slog.Logger] for the store.
//
// The store logs subscription changes at Debug level and recovered subscriber
// panics at Error level. If not specified, [slog.Default] is used. A nil
// logger is ignored.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	store := writable.New(0, writable.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *storeConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithPanicRecovery makes the store recover panics raised by subscribers.
//
// A recovered panic is logged with its stack trace and a correlation ID, and
// notification continues with the next subscriber. Without this option a
// panicking subscriber propagates to the caller of [Store.Set],
// [Store.Update], or [Store.Subscribe].
//
// Panics raised by an update callback are never recovered.
func WithPanicRecovery() Option {
	return func(cfg *storeConfig) {
		cfg.recoverPanics = true
	}
}
