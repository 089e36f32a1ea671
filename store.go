package writable

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/jpalmerr/writable/internal/registry"
)

const defaultName = "store"

// Unsubscriber revokes the subscription it was returned for.
//
// Calling it more than once has no effect after the first call.
type Unsubscriber func()

// round is a queued notification. Values are boxed so that a nil interface
// T survives the trip through the queue.
type round[T any] struct {
	value T
}

// Store is an observable container for a single value of type T.
//
// Store is created with [New] and is ready for use immediately. Each Store is
// independent; stores share no state. Methods may be called from multiple
// goroutines without corrupting the value or the registry, and subscribers
// are always invoked without internal locks held. Delivery guarantees only
// hold for callers on the notifying goroutine; see the package documentation
// on concurrent callers.
type Store[T any] struct {
	mu          sync.RWMutex
	value       T
	subscribers *registry.Registry[func(T)]

	// pending holds values whose notification round has not been delivered.
	// notifying is true while some goroutine is draining pending.
	pending   *queue.Queue
	notifying bool

	id            string
	name          string
	logger        *slog.Logger
	recoverPanics bool
}

// New creates a [Store] holding initial with no subscribers.
//
// Example:
//
//	count := writable.New(0)
//	user := writable.New(User{Name: "guest"}, writable.WithName("user"))
func New[T any](initial T, opts ...Option) *Store[T] {
	cfg := &storeConfig{name: defaultName}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[T]{
		value:         initial,
		subscribers:   registry.New[func(T)](),
		pending:       queue.New(),
		id:            uuid.NewString(),
		name:          cfg.name,
		logger:        logger,
		recoverPanics: cfg.recoverPanics,
	}
}

// Value returns the current value.
func (s *Store[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set assigns v and notifies every subscriber with it.
//
// Subscribers run synchronously in subscription order before Set returns.
// When Set is called while the store is already notifying, the value is
// assigned at once and its round is queued behind the current one. The
// goroutine that is notifying delivers it, so a Set from another goroutine
// can return before any subscriber has seen v.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	drain := s.publish(v)
	s.mu.Unlock()

	if drain {
		s.drain()
	}
}

// Update replaces the value with fn applied to the current value, then
// notifies subscribers as [Store.Set] does.
//
// fn runs with the store locked and must not call any method on the same
// store, not even [Store.Value]; doing so deadlocks.
// If fn panics, the panic propagates, the value is unchanged, and no
// subscriber is notified. A nil fn is a no-op.
func (s *Store[T]) Update(fn func(T) T) {
	if fn == nil {
		return
	}

	drain, _ := s.commit(func(current T) (T, error) {
		return fn(current), nil
	})
	if drain {
		s.drain()
	}
}

// TryUpdate is like [Store.Update] for transforms that can fail.
//
// If fn returns an error, the value is unchanged, no subscriber is notified,
// and the error is returned wrapped. A nil fn is a no-op.
//
// Example:
//
//	err := balance.TryUpdate(func(v int) (int, error) {
//	    if v < amount {
//	        return v, ErrInsufficientFunds
//	    }
//	    return v - amount, nil
//	})
func (s *Store[T]) TryUpdate(fn func(T) (T, error)) error {
	if fn == nil {
		return nil
	}

	drain, err := s.commit(fn)
	if err != nil {
		return fmt.Errorf("update callback: %w", err)
	}
	if drain {
		s.drain()
	}
	return nil
}

// Subscribe registers fn to receive every future value and immediately calls
// it once with the current value.
//
// The returned [Unsubscriber] removes exactly this registration. After it
// runs the store holds no reference to fn. A nil fn registers nothing and
// returns a no-op Unsubscriber.
//
// If the immediate call panics, the registration is removed before the panic
// propagates.
func (s *Store[T]) Subscribe(fn func(T)) Unsubscriber {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	token := s.subscribers.Add(fn)
	current := s.value
	count := s.subscribers.Len()
	s.mu.Unlock()

	s.logger.Debug("subscriber added",
		"store", s.name,
		"store_id", s.id,
		"subscribers", count,
	)

	delivered := false
	defer func() {
		if !delivered {
			s.remove(token)
		}
	}()
	s.invoke(fn, current)
	delivered = true

	return func() {
		s.remove(token)
	}
}

// Len returns the number of active subscriptions.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscribers.Len()
}

// ID returns the store's unique instance identifier.
func (s *Store[T]) ID() string {
	return s.id
}

// Name returns the label set with [WithName].
func (s *Store[T]) Name() string {
	return s.name
}

// commit applies fn to the current value and publishes the result.
// Reports whether the caller must drain.
func (s *Store[T]) commit(fn func(T) (T, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.value)
	if err != nil {
		return false, err
	}
	return s.publish(next), nil
}

// publish assigns v and queues its notification round. Must be called with
// s.mu held. Reports whether the caller became responsible for draining.
func (s *Store[T]) publish(v T) bool {
	s.value = v
	s.pending.Add(round[T]{value: v})

	if s.notifying {
		return false
	}
	s.notifying = true
	return true
}

// remove deletes the registration for token if it is still present.
func (s *Store[T]) remove(token string) {
	s.mu.Lock()
	removed := s.subscribers.Remove(token)
	count := s.subscribers.Len()
	s.mu.Unlock()

	if removed {
		s.logger.Debug("subscriber removed",
			"store", s.name,
			"store_id", s.id,
			"subscribers", count,
		)
	}
}

// registered reports whether token is still subscribed.
func (s *Store[T]) registered(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscribers.Has(token)
}
