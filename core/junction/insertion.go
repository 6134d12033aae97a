// core/junction/insertion.go
package junction

import (
	"fmt"

	"igsim-core/dna"
	"igsim-core/recomb"
	"igsim-core/rng"
	"igsim-core/simerr"
)

/* ------------------------------ P nucleotides ----------------------------- */

// PInsertionStrategy samples palindromic insertions.
type PInsertionStrategy interface {
	SamplePInsertion(r rng.Rand, rec *recomb.Recombination) (recomb.PInsertionSettings, error)
}

// UniformPInsertionStrategy draws each palindrome length from
// [0, min(MaxLen, remaining segment length)]. The inserted fragment is the
// reverse complement of the trimmed segment end it hangs off.
type UniformPInsertionStrategy struct {
	MaxLen int
}

func (s UniformPInsertionStrategy) SamplePInsertion(r rng.Rand, rec *recomb.Recombination) (recomb.PInsertionSettings, error) {
	var out recomb.PInsertionSettings
	if s.MaxLen < 0 {
		return out, fmt.Errorf("p-insertion max length %d must be >= 0: %w", s.MaxLen, simerr.ErrConfiguration)
	}
	rm := rec.RemovingSettings()

	// Trimmed segments, as they appear in the rearranged sequence.
	v := rec.VGene().Seq[:rec.VGeneLen()]
	j := rec.JGene().Seq[rm.JStart:]

	draw := func(avail int) (int, error) { return rng.UniformInt(r, 0, min(s.MaxLen, avail)) }

	n, err := draw(len(v))
	if err != nil {
		return out, err
	}
	out.VEnd = dna.RevComp(v[len(v)-n:])

	if rec.Chain() == recomb.Heavy {
		d := rec.DGene().Seq[rm.DStart : rec.DGene().Len()-rm.DEnd]
		if n, err = draw(len(d)); err != nil {
			return out, err
		}
		out.DStart = dna.RevComp(d[:n])
		if n, err = draw(len(d)); err != nil {
			return out, err
		}
		out.DEnd = dna.RevComp(d[len(d)-n:])
	}

	if n, err = draw(len(j)); err != nil {
		return out, err
	}
	out.JStart = dna.RevComp(j[:n])
	return out, nil
}

// PNucleotidesCreator attaches sampled palindromes.
type PNucleotidesCreator struct {
	Strategy PInsertionStrategy
}

// CreatePNucleotides requires removing settings to be attached first.
func (c PNucleotidesCreator) CreatePNucleotides(r rng.Rand, rec *recomb.Recombination) (*recomb.Recombination, error) {
	if !rec.Has(recomb.StageRemoving) {
		return nil, fmt.Errorf("p-insertion before exonuclease removal: %w", simerr.ErrConfiguration)
	}
	s, err := c.Strategy.SamplePInsertion(r, rec)
	if err != nil {
		return nil, err
	}
	if err := rec.AttachPInsertionSettings(s); err != nil {
		return nil, err
	}
	return rec, nil
}

/* ------------------------------ N nucleotides ----------------------------- */

// NInsertionStrategy samples non-templated insertions.
type NInsertionStrategy interface {
	SampleNInsertion(r rng.Rand, rec *recomb.Recombination) (recomb.NInsertionSettings, error)
}

// UniformNInsertionStrategy draws each junction length from [MinLen, MaxLen]
// and each base uniformly over ACGT.
type UniformNInsertionStrategy struct {
	MinLen int
	MaxLen int
}

func (s UniformNInsertionStrategy) SampleNInsertion(r rng.Rand, rec *recomb.Recombination) (recomb.NInsertionSettings, error) {
	var out recomb.NInsertionSettings
	if s.MinLen < 0 {
		return out, fmt.Errorf("n-insertion min length %d must be >= 0: %w", s.MinLen, simerr.ErrConfiguration)
	}
	fragment := func() (string, error) {
		n, err := rng.UniformInt(r, s.MinLen, s.MaxLen)
		if err != nil {
			return "", err
		}
		return dna.RandomSeq(r, n), nil
	}
	var err error
	if rec.Chain() == recomb.Light {
		out.VJ, err = fragment()
		return out, err
	}
	if out.VD, err = fragment(); err != nil {
		return out, err
	}
	out.DJ, err = fragment()
	return out, err
}

// NNucleotidesCreator attaches sampled N insertions.
type NNucleotidesCreator struct {
	Strategy NInsertionStrategy
}

// CreateNNucleotides requires P-insertion settings to be attached first.
func (c NNucleotidesCreator) CreateNNucleotides(r rng.Rand, rec *recomb.Recombination) (*recomb.Recombination, error) {
	if !rec.Has(recomb.StageRemoving | recomb.StagePInsertion) {
		return nil, fmt.Errorf("n-insertion before removal and p-insertion (have %v): %w", rec.Stages(), simerr.ErrConfiguration)
	}
	s, err := c.Strategy.SampleNInsertion(r, rec)
	if err != nil {
		return nil, err
	}
	if err := rec.AttachNInsertionSettings(s); err != nil {
		return nil, err
	}
	return rec, nil
}
