package bandit

import "math/rand/v2"

// Rand is the randomness consumed by arm draws and by the random policies.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	NormFloat64() float64
}

const seedStream = 0x9e3779b97f4a7c15

// NewRand returns a PCG generator whose whole sequence is fixed by seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}
