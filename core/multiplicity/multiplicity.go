// Package multiplicity assigns clone counts to variable regions.
package multiplicity

import (
	"fmt"
	"math"

	"igsim-core/region"
	"igsim-core/rng"
	"igsim-core/simerr"
)

// Creator returns a multiplicity >= 1 for a variable region. It must not
// modify the region.
type Creator interface {
	AssignMultiplicity(r rng.Rand, vr *region.VariableRegion) int
}

// Exponential draws x ~ Exp(Lambda) (mean 1/Lambda) and returns
// max(1, floor(x)).
type Exponential struct {
	Lambda float64
}

// NewExponential validates lambda.
func NewExponential(lambda float64) (Exponential, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return Exponential{}, fmt.Errorf("exponential rate %g must be positive and finite: %w", lambda, simerr.ErrConfiguration)
	}
	return Exponential{Lambda: lambda}, nil
}

func (e Exponential) AssignMultiplicity(r rng.Rand, _ *region.VariableRegion) int {
	x := r.ExpFloat64() / e.Lambda
	if x >= math.MaxInt32 {
		return math.MaxInt32
	}
	if n := int(x); n > 1 {
		return n
	}
	return 1
}

// Lambda is the exponential rate that takes a repertoire of size source to
// roughly target antibodies: source/target.
func Lambda(source, target int) (float64, error) {
	if source <= 0 || target <= 0 {
		return 0, fmt.Errorf("repertoire sizes source=%d target=%d must be positive: %w", source, target, simerr.ErrConfiguration)
	}
	return float64(source) / float64(target), nil
}

// Constant always returns N (at least 1).
type Constant struct {
	N int
}

func (c Constant) AssignMultiplicity(rng.Rand, *region.VariableRegion) int {
	return max(1, c.N)
}
