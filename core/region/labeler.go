// core/region/labeler.go
package region

import (
	"fmt"

	"igsim-core/recomb"
	"igsim-core/simerr"
)

// finalStages must all be attached before a region can be annotated.
const finalStages = recomb.StageRemoving | recomb.StagePInsertion | recomb.StageNInsertion

// LabelingStrategy places CDR boundaries over a variable region.
type LabelingStrategy interface {
	Label(v *VariableRegion) (CDRLabeling, error)
}

// FixedOffsetStrategy uses fixed offsets from the germline boundaries:
// CDR1 and CDR2 sit at fixed offsets within the V segment; CDR3 starts
// CDR3VTail bases before the end of the trimmed V and ends CDR3JHead bases
// into the trimmed J.
type FixedOffsetStrategy struct {
	CDR1      Range
	CDR2      Range
	CDR3VTail int
	CDR3JHead int
}

// DefaultFixedOffsets approximates IMGT positions on a full-length
// V segment (~296 nt): CDR1 78-114, CDR2 165-195, CDR3 from the conserved
// Cys codon to the W/F of the J motif.
var DefaultFixedOffsets = FixedOffsetStrategy{
	CDR1:      Range{Start: 78, End: 114},
	CDR2:      Range{Start: 165, End: 195},
	CDR3VTail: 9,
	CDR3JHead: 12,
}

func (s FixedOffsetStrategy) Label(v *VariableRegion) (CDRLabeling, error) {
	if s.CDR1.Start < 0 || s.CDR1.Len() < 0 || s.CDR2.Len() < 0 || s.CDR3VTail < 0 || s.CDR3JHead < 0 {
		return CDRLabeling{}, fmt.Errorf("cdr offsets %+v: %w", s, simerr.ErrConfiguration)
	}
	if s.CDR2.Start < s.CDR1.End {
		return CDRLabeling{}, fmt.Errorf("CDR2 %v overlaps CDR1 %v: %w", s.CDR2, s.CDR1, simerr.ErrConfiguration)
	}

	rec := v.Recombination()
	vLen, jLen, total := rec.VGeneLen(), rec.JGeneLen(), v.Len()

	cdr3 := Range{Start: vLen - s.CDR3VTail, End: total - jLen + s.CDR3JHead}
	switch {
	case s.CDR3VTail > vLen:
		return CDRLabeling{}, fmt.Errorf("trimmed V length %d shorter than CDR3 V tail %d: %w", vLen, s.CDR3VTail, simerr.ErrAnnotation)
	case s.CDR3JHead > jLen:
		return CDRLabeling{}, fmt.Errorf("trimmed J length %d shorter than CDR3 J head %d: %w", jLen, s.CDR3JHead, simerr.ErrAnnotation)
	case s.CDR2.End > cdr3.Start:
		return CDRLabeling{}, fmt.Errorf("sequence of length %d too short: CDR2 ends at %d past CDR3 start %d: %w",
			total, s.CDR2.End, cdr3.Start, simerr.ErrAnnotation)
	}
	return NewCDRLabeling(s.CDR1, s.CDR2, cdr3), nil
}

// Labeler annotates variable regions with a pluggable strategy.
type Labeler struct {
	Strategy LabelingStrategy
}

// LabelCDRs stores the strategy's labeling on v and returns v. The
// recombination must have every junctional stage attached.
func (l Labeler) LabelCDRs(v *VariableRegion) (*VariableRegion, error) {
	if rec := v.Recombination(); !rec.Has(finalStages) {
		return nil, fmt.Errorf("recombination has stages [%v], want [%v]: %w", rec.Stages(), finalStages, simerr.ErrConfiguration)
	}
	cdrs, err := l.Strategy.Label(v)
	if err != nil {
		return nil, err
	}
	v.SetCDRs(cdrs)
	return v, nil
}
