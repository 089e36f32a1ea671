package writable

import (
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
)

// drain delivers queued notification rounds until none remain.
//
// Only one goroutine drains a store at a time. Each round snapshots the
// subscribers when it starts; a subscription revoked mid-round is skipped if
// it has not been called yet, and one added mid-round joins from the next
// round. If a subscriber panics, every queued round is discarded, including
// rounds queued by other goroutines, and the store is left ready for the next
// Set.
func (s *Store[T]) drain() {
	finished := false
	defer func() {
		if finished {
			return
		}
		s.mu.Lock()
		for s.pending.Length() > 0 {
			s.pending.Remove()
		}
		s.notifying = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if s.pending.Length() == 0 {
			s.notifying = false
			s.mu.Unlock()
			finished = true
			return
		}
		next := s.pending.Remove().(round[T])
		entries := s.subscribers.Entries()
		s.mu.Unlock()

		for _, entry := range entries {
			if !s.registered(entry.Token) {
				continue
			}
			s.invoke(entry.Value, next.value)
		}
	}
}

// invoke calls a subscriber, recovering and logging panics when the store
// was created with WithPanicRecovery.
func (s *Store[T]) invoke(fn func(T), value T) {
	if !s.recoverPanics {
		fn(value)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("subscriber panicked",
				"store", s.name,
				"store_id", s.id,
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn(value)
}
