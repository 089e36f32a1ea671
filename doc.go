// Package writable provides an observable value container.
//
// A [Store] holds a single value of any type and notifies registered
// subscribers whenever the value changes. It is a building block for
// propagating state in small applications, not a reactive framework: there
// are no derived stores, no batching, and no asynchronous delivery.
//
// # Quick Start
//
//	count := writable.New(0)
//
//	unsubscribe := count.Subscribe(func(v int) {
//	    fmt.Println("count is", v)
//	}) // prints "count is 0" immediately
//
//	count.Set(1)                               // prints "count is 1"
//	count.Update(func(v int) int { return v + 1 }) // prints "count is 2"
//
//	unsubscribe()
//	count.Set(10) // no output
//
// # Notification
//
// Subscribers are called synchronously, in the order they subscribed, before
// [Store.Set] or [Store.Update] returns. [Store.Subscribe] also calls the new
// subscriber once with the current value before returning.
//
// A subscriber may call back into the store. A nested Set assigns the value
// at once, but its notification round is queued and delivered after the
// current round completes, so every subscriber observes values in the order
// they were set.
//
// The transform passed to [Store.Update] or [Store.TryUpdate] is different:
// it runs with the store locked and must not read or write the same store.
//
// # Concurrent Callers
//
// The store is designed for a single goroutine. Calling it from several
// goroutines is memory safe, but only one goroutine notifies at a time. A Set
// made while another goroutine is notifying assigns the value and returns at
// once; its round is delivered later on the notifying goroutine. If a
// subscriber panics during that notification, the queued round is discarded
// and the value is never delivered. Callers that need every value delivered
// before Set returns must serialize their writes.
//
// # Errors and Panics
//
// The store defines no error kinds. Revoking a subscription twice is a no-op.
// A panicking subscriber propagates to the caller and aborts the rest of that
// round unless the store was created with [WithPanicRecovery].
//
// # Configuration
//
//	store := writable.New(Settings{},
//	    writable.WithName("settings"),
//	    writable.WithLogger(logger),
//	    writable.WithPanicRecovery(),
//	)
package writable
