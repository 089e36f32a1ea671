package registry

import (
	"math/rand/v2"
	"strings"
)

const (
	// TokenLength is the number of characters in a generated token.
	TokenLength = 10

	// Alphabet is the dictionary tokens are sampled from.
	Alphabet = "_ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// Source supplies uniformly distributed integers in [0, n).
//
// *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewToken draws a token of [TokenLength] characters from [Alphabet],
// sampling each position independently.
func NewToken(src Source) string {
	if src == nil {
		src = globalSource{}
	}

	var b strings.Builder
	b.Grow(TokenLength)
	for i := 0; i < TokenLength; i++ {
		b.WriteByte(Alphabet[src.IntN(len(Alphabet))])
	}
	return b.String()
}
