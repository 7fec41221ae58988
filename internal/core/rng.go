package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding. Every trait roll in the engine goes through an injected *RNG so a
// seed reproduces a whole field.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Range returns a uniform value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// IntN returns a uniform int in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// RangeInt returns a uniform int in [lo, hi] inclusive.
func (r *RNG) RangeInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool { return r.r.Float64() < p }

// Sign returns -1 or 1 with equal probability.
func (r *RNG) Sign() float64 {
	if r.r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool { return r.r.IntN(2) == 1 }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
