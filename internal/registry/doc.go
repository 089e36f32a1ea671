// Package registry provides the ordered subscriber registry used by the
// writable store.
//
// Registrations are kept in insertion order and keyed by a generated token.
// Tokens are 10 characters drawn uniformly from a 53-symbol dictionary
// ("_", A-Z, a-z). A token that collides with a present key is discarded and
// the whole string is drawn again, so uniqueness holds by construction.
//
// The main components are:
//
//   - [Registry]: insertion-ordered map from token to registered value
//   - [Entry]: a snapshot of one registration
//   - [NewToken]: the token generator
//
// Registry is not safe for concurrent use. The store serializes access.
package registry
