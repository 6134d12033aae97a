// Package region holds the unit of repertoire storage: a finalized
// recombination, its (possibly hypermutated) working sequence and its CDR
// annotations.
package region

import (
	"fmt"

	"igsim-core/recomb"
	"igsim-core/simerr"
)

// Mutation is one substitution applied to the working sequence.
type Mutation struct {
	Pos  int
	From byte
	To   byte
}

func (m Mutation) String() string { return fmt.Sprintf("%c%d%c", m.From, m.Pos, m.To) }

// VariableRegion exclusively owns its recombination.
type VariableRegion struct {
	rec       *recomb.Recombination
	seq       []byte
	cdrs      CDRLabeling
	mutations []Mutation
}

// New wraps rec; the working sequence starts as rec.Sequence().
func New(rec *recomb.Recombination) *VariableRegion {
	return &VariableRegion{rec: rec, seq: []byte(rec.Sequence())}
}

func (v *VariableRegion) Recombination() *recomb.Recombination { return v.rec }

// Sequence is the working sequence, including any hypermutations.
func (v *VariableRegion) Sequence() string { return string(v.seq) }

func (v *VariableRegion) Len() int { return len(v.seq) }

// Base returns the nucleotide at pos.
func (v *VariableRegion) Base(pos int) byte { return v.seq[pos] }

func (v *VariableRegion) CDRs() CDRLabeling { return v.cdrs }

func (v *VariableRegion) SetCDRs(l CDRLabeling) { v.cdrs = l }

// Mutations lists applied substitutions in application order.
func (v *VariableRegion) Mutations() []Mutation { return append([]Mutation(nil), v.mutations...) }

// Substitute replaces the base at pos. Length never changes.
func (v *VariableRegion) Substitute(pos int, base byte) error {
	if pos < 0 || pos >= len(v.seq) {
		return fmt.Errorf("substitution at %d outside [0, %d): %w", pos, len(v.seq), simerr.ErrRange)
	}
	if v.seq[pos] == base {
		return nil
	}
	v.mutations = append(v.mutations, Mutation{Pos: pos, From: v.seq[pos], To: base})
	v.seq[pos] = base
	return nil
}

// Clone returns an independent copy with its own recombination clone.
func (v *VariableRegion) Clone() *VariableRegion {
	return &VariableRegion{
		rec:       v.rec.Clone(),
		seq:       append([]byte(nil), v.seq...),
		cdrs:      v.cdrs,
		mutations: append([]Mutation(nil), v.mutations...),
	}
}
