package cave

import "math/rand/v2"

// RandomSource is the seeded uniform generator consumed by the synthesizer,
// the validator and the marker scatter.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// NewRandomSource returns a deterministic PCG-backed source for seed.
func NewRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
