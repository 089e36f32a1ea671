package registry

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource replays a fixed sequence of draws and counts calls.
type seqSource struct {
	draws []int
	calls int
}

func (s *seqSource) IntN(n int) int {
	v := s.draws[s.calls%len(s.draws)] % n
	s.calls++
	return v
}

// narrowSource restricts draws to the first width symbols.
type narrowSource struct {
	r     *rand.Rand
	width int
}

func (s *narrowSource) IntN(int) int { return s.r.IntN(s.width) }

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNewToken_LengthAndAlphabet(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		token := NewToken(src)
		require.Len(t, token, TokenLength)
		for _, c := range token {
			assert.True(t, strings.ContainsRune(Alphabet, c), "unexpected character %q in %q", c, token)
		}
	}
}

func TestNewToken_NilSource(t *testing.T) {
	token := NewToken(nil)
	assert.Len(t, token, TokenLength)
}

func TestNewToken_AlphabetSize(t *testing.T) {
	assert.Len(t, Alphabet, 53)
	assert.Equal(t, byte('_'), Alphabet[0])
}

func TestNewToken_MapsDrawsToAlphabet(t *testing.T) {
	src := &seqSource{draws: []int{0, 1, 26, 27, 52, 0, 1, 26, 27, 52}}

	assert.Equal(t, "_AZaz_AZaz", NewToken(src))
	assert.Equal(t, TokenLength, src.calls)
}

func TestRegistry_AddPreservesOrder(t *testing.T) {
	r := New[string]()

	first := r.Add("first")
	second := r.Add("second")
	third := r.Add("third")

	entries := r.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{first, second, third},
		[]string{entries[0].Token, entries[1].Token, entries[2].Token})
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{entries[0].Value, entries[1].Value, entries[2].Value})
}

func TestRegistry_AddRetriesOnCollision(t *testing.T) {
	draws := append(repeat(0, 20), repeat(1, 10)...)
	src := &seqSource{draws: draws}
	r := New[int](WithTokenSource(src))

	first := r.Add(1)
	second := r.Add(2)

	assert.Equal(t, "__________", first)
	assert.Equal(t, "AAAAAAAAAA", second)
	assert.Equal(t, 30, src.calls, "colliding token should be redrawn in full")
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_TokensUnique(t *testing.T) {
	// two symbols per position leaves 1024 tokens, so collisions are frequent
	src := &narrowSource{r: rand.New(rand.NewPCG(7, 11)), width: 2}
	r := New[int](WithTokenSource(src))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		token := r.Add(i)
		require.False(t, seen[token], "duplicate token %q", token)
		seen[token] = true
	}
	assert.Equal(t, 200, r.Len())
}

func TestRegistry_Remove(t *testing.T) {
	r := New[string]()

	a := r.Add("a")
	b := r.Add("b")
	c := r.Add("c")

	assert.True(t, r.Remove(b))
	assert.False(t, r.Has(b))
	assert.True(t, r.Has(a))
	assert.True(t, r.Has(c))

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Value)
	assert.Equal(t, "c", entries[1].Value)
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	r := New[string]()
	a := r.Add("a")

	assert.False(t, r.Remove("does-not-exist"))
	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a), "second removal should report false")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_EntriesIsSnapshot(t *testing.T) {
	r := New[string]()
	r.Add("a")

	entries := r.Entries()
	r.Add("b")

	assert.Len(t, entries, 1)
	assert.Len(t, r.Entries(), 2)
}

func TestRegistry_NilOptionIgnored(t *testing.T) {
	r := New[int](nil, WithTokenSource(nil))
	r.Add(1)
	assert.Equal(t, 1, r.Len())
}
