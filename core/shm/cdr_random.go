// core/shm/cdr_random.go
package shm

import (
	"igsim-core/dna"
	"igsim-core/region"
	"igsim-core/rng"
)

// CDRBasedRandomStrategy mutates random distinct sites; each lands in the
// framework with probability FRProb and in a CDR otherwise. When one class is
// exhausted the other is used. Unlabeled regions are all framework.
type CDRBasedRandomStrategy struct {
	Count  Bounds
	FRProb float64
}

func (s CDRBasedRandomStrategy) Name() string { return "cdr_random" }

func (s CDRBasedRandomStrategy) Apply(r rng.Rand, vr *region.VariableRegion) (int, error) {
	if err := rng.CheckProb("framework probability", s.FRProb); err != nil {
		return 0, err
	}
	n, err := s.Count.draw(r)
	if err != nil {
		return 0, err
	}

	cdrs := vr.CDRs()
	var fr, cdr []int
	for pos := 0; pos < vr.Len(); pos++ {
		if cdrs.Contains(pos) {
			cdr = append(cdr, pos)
		} else {
			fr = append(fr, pos)
		}
	}

	take := func(pool *[]int) int {
		p := *pool
		i := r.IntN(len(p))
		pos := p[i]
		p[i] = p[len(p)-1]
		*pool = p[:len(p)-1]
		return pos
	}

	mutated := 0
	for ; mutated < n && len(fr)+len(cdr) > 0; mutated++ {
		inFR := rng.Bernoulli(r, s.FRProb)
		switch {
		case inFR && len(fr) == 0:
			inFR = false
		case !inFR && len(cdr) == 0:
			inFR = true
		}
		var pos int
		if inFR {
			pos = take(&fr)
		} else {
			pos = take(&cdr)
		}
		if err := vr.Substitute(pos, dna.Substitute(r, vr.Base(pos))); err != nil {
			return mutated, err
		}
	}
	return mutated, nil
}
