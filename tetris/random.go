package tetris

import "math/rand/v2"

// RandomSource picks piece kinds. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewRandomSource returns a PCG-backed source; equal seeds give equal games.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomKind draws one of the seven kinds uniformly, with replacement.
func RandomKind(src RandomSource) Kind {
	return Kinds[src.IntN(len(Kinds))]
}
