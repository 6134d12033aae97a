// core/junction/removing.go
package junction

import (
	"fmt"

	"igsim-core/recomb"
	"igsim-core/rng"
	"igsim-core/simerr"
)

// RemovingStrategy samples exonuclease trims for a recombination.
type RemovingStrategy interface {
	SampleRemoving(r rng.Rand, rec *recomb.Recombination) (recomb.RemovingSettings, error)
}

// UniformRemovingStrategy draws each trim uniformly from [0, min(max, available)].
// The two D trims share the D segment, so DStart is drawn first and DEnd
// from what is left.
type UniformRemovingStrategy struct {
	MaxVEnd   int
	MaxDStart int
	MaxDEnd   int
	MaxJStart int
}

func (s UniformRemovingStrategy) validate() error {
	if s.MaxVEnd < 0 || s.MaxDStart < 0 || s.MaxDEnd < 0 || s.MaxJStart < 0 {
		return fmt.Errorf("removing bounds %+v must be >= 0: %w", s, simerr.ErrConfiguration)
	}
	return nil
}

func (s UniformRemovingStrategy) SampleRemoving(r rng.Rand, rec *recomb.Recombination) (recomb.RemovingSettings, error) {
	var out recomb.RemovingSettings
	if err := s.validate(); err != nil {
		return out, err
	}
	var err error
	if out.VEnd, err = rng.UniformInt(r, 0, min(s.MaxVEnd, rec.VGene().Len())); err != nil {
		return out, err
	}
	if rec.Chain() == recomb.Heavy {
		dLen := rec.DGene().Len()
		if out.DStart, err = rng.UniformInt(r, 0, min(s.MaxDStart, dLen)); err != nil {
			return out, err
		}
		if out.DEnd, err = rng.UniformInt(r, 0, min(s.MaxDEnd, dLen-out.DStart)); err != nil {
			return out, err
		}
	}
	if out.JStart, err = rng.UniformInt(r, 0, min(s.MaxJStart, rec.JGene().Len())); err != nil {
		return out, err
	}
	return out, nil
}

// ExonucleaseRemover attaches sampled trims.
type ExonucleaseRemover struct {
	Strategy RemovingStrategy
}

// CreateRemovingSettings samples and attaches removing settings; it returns
// the same recombination.
func (e ExonucleaseRemover) CreateRemovingSettings(r rng.Rand, rec *recomb.Recombination) (*recomb.Recombination, error) {
	s, err := e.Strategy.SampleRemoving(r, rec)
	if err != nil {
		return nil, err
	}
	if err := rec.AttachRemovingSettings(s); err != nil {
		return nil, err
	}
	return rec, nil
}
