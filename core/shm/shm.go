// Package shm applies somatic hypermutation to variable regions.
//
// Strategies are composed sequentially: each one sees the sequence left by
// the previous one. Every strategy substitutes bases only, so the sequence
// length never changes.
//
// When a strategy draws more mutations than it has eligible sites, it mutates
// every eligible site and stops. This clamping is intentional and silent.
package shm

import (
	"fmt"

	"igsim-core/region"
	"igsim-core/rng"
	"igsim-core/simerr"
)

// Strategy mutates vr in place and returns how many sites it changed.
type Strategy interface {
	Name() string
	Apply(r rng.Rand, vr *region.VariableRegion) (int, error)
}

// Bounds is an inclusive [Min, Max] mutation count range.
type Bounds struct {
	Min int
	Max int
}

func (b Bounds) draw(r rng.Rand) (int, error) {
	if b.Min < 0 {
		return 0, fmt.Errorf("mutation count min %d must be >= 0: %w", b.Min, simerr.ErrConfiguration)
	}
	return rng.UniformInt(r, b.Min, b.Max)
}

// Composite applies its strategies strictly in order.
type Composite []Strategy

func (c Composite) Name() string { return "composite" }

func (c Composite) Apply(r rng.Rand, vr *region.VariableRegion) (int, error) {
	return c.apply(r, vr, nil)
}

// apply reports each member's count to observe, if set.
func (c Composite) apply(r rng.Rand, vr *region.VariableRegion, observe func(string, int)) (int, error) {
	total := 0
	for _, s := range c {
		n, err := s.Apply(r, vr)
		if err != nil {
			return total, fmt.Errorf("%s: %w", s.Name(), err)
		}
		if observe != nil {
			observe(s.Name(), n)
		}
		total += n
	}
	return total, nil
}

// Creator runs a strategy (usually a Composite) over a variable region.
type Creator struct {
	Strategy Strategy
	// Observe, if set, receives per-strategy mutation counts.
	Observe func(strategy string, mutated int)
}

// CreateSHM mutates vr in place and returns it. Callers that must keep the
// unmutated region clone it first.
func (c Creator) CreateSHM(r rng.Rand, vr *region.VariableRegion) (*region.VariableRegion, error) {
	if comp, ok := c.Strategy.(Composite); ok {
		if _, err := comp.apply(r, vr, c.Observe); err != nil {
			return nil, fmt.Errorf("shm %w", err)
		}
		return vr, nil
	}
	n, err := c.Strategy.Apply(r, vr)
	if err != nil {
		return nil, fmt.Errorf("shm %s: %w", c.Strategy.Name(), err)
	}
	if c.Observe != nil {
		c.Observe(c.Strategy.Name(), n)
	}
	return vr, nil
}
