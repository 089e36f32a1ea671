package registry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a snapshot of a single registration.
type Entry[V any] struct {
	Token string
	Value V
}

// Registry is an insertion-ordered collection of registrations keyed by
// generated tokens.
//
// Removing a registration drops the registry's reference to its value.
type Registry[V any] struct {
	entries *orderedmap.OrderedMap[string, V]
	source  Source
}

// Option configures a [Registry].
type Option func(*registryConfig)

type registryConfig struct {
	source Source
}

// WithTokenSource sets the random source used for token generation.
// A nil source is ignored.
func WithTokenSource(src Source) Option {
	return func(cfg *registryConfig) {
		if src != nil {
			cfg.source = src
		}
	}
}

// New creates an empty [Registry].
func New[V any](opts ...Option) *Registry[V] {
	cfg := &registryConfig{source: globalSource{}}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return &Registry[V]{
		entries: orderedmap.New[string, V](),
		source:  cfg.source,
	}
}

// Add registers v and returns its token.
//
// The token is unique among registrations present at the time of the call.
func (r *Registry[V]) Add(v V) string {
	token := NewToken(r.source)
	for r.Has(token) {
		token = NewToken(r.source)
	}

	r.entries.Set(token, v)
	return token
}

// Remove deletes the registration stored under token.
// Reports whether a registration was removed. Unknown tokens are a no-op.
func (r *Registry[V]) Remove(token string) bool {
	_, present := r.entries.Delete(token)
	return present
}

// Has reports whether token is currently registered.
func (r *Registry[V]) Has(token string) bool {
	_, present := r.entries.Get(token)
	return present
}

// Len returns the number of registrations.
func (r *Registry[V]) Len() int {
	return r.entries.Len()
}

// Entries returns a snapshot of all registrations in insertion order.
//
// The returned slice is a copy; later Add or Remove calls do not affect it.
func (r *Registry[V]) Entries() []Entry[V] {
	result := make([]Entry[V], 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, Entry[V]{Token: pair.Key, Value: pair.Value})
	}
	return result
}
