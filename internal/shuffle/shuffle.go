// Package shuffle produces uniformly random permutations.
package shuffle

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Source yields uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Slice returns a shuffled copy of in. The input is not modified.
func Slice[T any](r Source, in []T) []T {
	out := slices.Clone(in)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// New returns a deterministic source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeeded returns a source seeded from the wall clock.
func NewTimeSeeded() *rand.Rand {
	return New(uint64(time.Now().UnixNano()))
}
