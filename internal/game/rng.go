package game

import "math/rand/v2"

// Rand is the random source injected into decision, jail and layout code.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed generator. Equal seeds give equal sequences.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func pick(options []Direction, rng Rand) Direction {
	if len(options) == 1 {
		return options[0]
	}
	return options[rng.IntN(len(options))]
}
