// Package rng is the injectable random source of the simulator.
package rng

import (
	"fmt"
	"math/rand/v2"

	"igsim-core/simerr"
)

// Rand is the subset of *rand.Rand the core draws from.
type Rand interface {
	IntN(n int) int
	Float64() float64
	ExpFloat64() float64
}

var _ Rand = (*rand.Rand)(nil)

// New returns an independent PCG stream. Two calls with the same
// (seed, stream) produce identical sequences; distinct streams do not overlap
// in practice, which is what lets repertoire members be generated in any order.
func New(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// UniformInt draws uniformly from [min, max].
func UniformInt(r Rand, min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("uniform range [%d, %d]: min exceeds max: %w", min, max, simerr.ErrConfiguration)
	}
	if min == max {
		return min, nil
	}
	return min + r.IntN(max-min+1), nil
}

// Bernoulli reports true with probability p.
func Bernoulli(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// CheckProb validates a probability parameter.
func CheckProb(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s=%g must be within [0, 1]: %w", name, p, simerr.ErrConfiguration)
	}
	return nil
}

// Sample picks k distinct elements of pool (partial Fisher-Yates on a copy).
// k is clamped to len(pool).
func Sample(r Rand, pool []int, k int) []int {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return nil
	}
	p := append([]int(nil), pool...)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(p)-i)
		p[i], p[j] = p[j], p[i]
	}
	return p[:k]
}
