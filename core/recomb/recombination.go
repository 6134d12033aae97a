// Package recomb models one V(D)J rearrangement: fixed gene indices into a
// shared gene database plus the three junctional settings groups, assembled
// lazily into a nucleotide sequence.
package recomb

import (
	"fmt"
	"strings"

	"igsim-core/genedb"
	"igsim-core/simerr"
)

// Stage is a junctional settings group; stages are attached in order
// removing → P insertion → N insertion.
type Stage uint8

const (
	StageRemoving Stage = 1 << iota
	StagePInsertion
	StageNInsertion
)

func (s Stage) String() string {
	var parts []string
	if s&StageRemoving != 0 {
		parts = append(parts, "removing")
	}
	if s&StagePInsertion != 0 {
		parts = append(parts, "p-insertion")
	}
	if s&StageNInsertion != 0 {
		parts = append(parts, "n-insertion")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

type cacheState uint8

const (
	stale cacheState = iota
	fresh
)

// Recombination binds gene indices and junctional settings. Indices never
// change after construction; the database is borrowed, never copied, and
// must outlive the recombination.
type Recombination struct {
	db    *genedb.Database
	chain Chain

	vIdx, dIdx, jIdx int
	v, d, j          genedb.Gene

	removing RemovingSettings
	pIns     PInsertionSettings
	nIns     NInsertionSettings
	stages   Stage

	seq   string
	state cacheState
}

// NewHeavy builds a VDJ recombination.
func NewHeavy(db *genedb.Database, v, d, j int) (*Recombination, error) {
	r := &Recombination{db: db, chain: Heavy, vIdx: v, dIdx: d, jIdx: j}
	var err error
	if r.v, err = db.GetByIndex(genedb.Variable, v); err != nil {
		return nil, err
	}
	if r.d, err = db.GetByIndex(genedb.Diversity, d); err != nil {
		return nil, err
	}
	if r.j, err = db.GetByIndex(genedb.Join, j); err != nil {
		return nil, err
	}
	return r, nil
}

// NewLight builds a VJ recombination.
func NewLight(db *genedb.Database, v, j int) (*Recombination, error) {
	r := &Recombination{db: db, chain: Light, vIdx: v, dIdx: -1, jIdx: j}
	var err error
	if r.v, err = db.GetByIndex(genedb.Variable, v); err != nil {
		return nil, err
	}
	if r.j, err = db.GetByIndex(genedb.Join, j); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recombination) Chain() Chain               { return r.chain }
func (r *Recombination) Database() *genedb.Database { return r.db }

func (r *Recombination) VGeneIndex() int { return r.vIdx }

// DGeneIndex is -1 for light chains.
func (r *Recombination) DGeneIndex() int { return r.dIdx }
func (r *Recombination) JGeneIndex() int { return r.jIdx }

func (r *Recombination) VGene() genedb.Gene { return r.v }

// DGene is the zero Gene for light chains.
func (r *Recombination) DGene() genedb.Gene { return r.d }
func (r *Recombination) JGene() genedb.Gene { return r.j }

// VGeneLen is the V length left after the V-end trim.
func (r *Recombination) VGeneLen() int { return r.v.Len() - r.removing.VEnd }

// DGeneLen is the D length left after both D trims (0 for light chains).
func (r *Recombination) DGeneLen() int { return r.d.Len() - r.removing.DStart - r.removing.DEnd }

// JGeneLen is the J length left after the J-start trim.
func (r *Recombination) JGeneLen() int { return r.j.Len() - r.removing.JStart }

func (r *Recombination) RemovingSettings() RemovingSettings     { return r.removing }
func (r *Recombination) PInsertionSettings() PInsertionSettings { return r.pIns }
func (r *Recombination) NInsertionSettings() NInsertionSettings { return r.nIns }

// Stages reports which settings groups have been attached.
func (r *Recombination) Stages() Stage { return r.stages }

// Has reports whether stage s has been attached.
func (r *Recombination) Has(s Stage) bool { return r.stages&s == s }

// AttachRemovingSettings replaces the trim lengths. Trims longer than their
// segment fail with simerr.ErrRange and leave the recombination unchanged.
func (r *Recombination) AttachRemovingSettings(s RemovingSettings) error {
	if err := s.check(r.chain); err != nil {
		return err
	}
	switch {
	case s.VEnd > r.v.Len():
		return fmt.Errorf("V end trim %d exceeds %s length %d: %w", s.VEnd, r.v.Name, r.v.Len(), simerr.ErrRange)
	case s.DStart+s.DEnd > r.d.Len():
		return fmt.Errorf("D trims %d+%d exceed %s length %d: %w", s.DStart, s.DEnd, r.d.Name, r.d.Len(), simerr.ErrRange)
	case s.JStart > r.j.Len():
		return fmt.Errorf("J start trim %d exceeds %s length %d: %w", s.JStart, r.j.Name, r.j.Len(), simerr.ErrRange)
	}
	r.removing = s
	r.stages |= StageRemoving
	r.state = stale
	return nil
}

// AttachPInsertionSettings replaces the palindromic fragments.
func (r *Recombination) AttachPInsertionSettings(s PInsertionSettings) error {
	if err := s.check(r.chain); err != nil {
		return err
	}
	r.pIns = s
	r.stages |= StagePInsertion
	r.state = stale
	return nil
}

// AttachNInsertionSettings replaces the non-templated fragments.
func (r *Recombination) AttachNInsertionSettings(s NInsertionSettings) error {
	if err := s.check(r.chain); err != nil {
		return err
	}
	r.nIns = s
	r.stages |= StageNInsertion
	r.state = stale
	return nil
}

// Sequence returns the rearranged sequence, recomputing it only when a
// settings group changed since the last call.
func (r *Recombination) Sequence() string {
	if r.state == stale {
		r.seq = r.compute()
		r.state = fresh
	}
	return r.seq
}

// Len is len(Sequence()) computed from the parts.
func (r *Recombination) Len() int {
	return r.VGeneLen() + r.DGeneLen() + r.JGeneLen() + r.pIns.Len() + r.nIns.Len()
}

func (r *Recombination) compute() string {
	var b strings.Builder
	b.Grow(r.Len())
	b.WriteString(r.v.Seq[:r.VGeneLen()])
	b.WriteString(r.pIns.VEnd)
	if r.chain == Heavy {
		b.WriteString(r.nIns.VD)
		b.WriteString(r.pIns.DStart)
		b.WriteString(r.d.Seq[r.removing.DStart : r.d.Len()-r.removing.DEnd])
		b.WriteString(r.pIns.DEnd)
		b.WriteString(r.nIns.DJ)
	} else {
		b.WriteString(r.nIns.VJ)
	}
	b.WriteString(r.pIns.JStart)
	b.WriteString(r.j.Seq[r.removing.JStart:])
	return b.String()
}

// Clone returns an independent copy sharing only the (immutable) database.
func (r *Recombination) Clone() *Recombination {
	c := *r
	return &c
}

func (r *Recombination) String() string {
	var b strings.Builder
	if r.chain == Heavy {
		fmt.Fprintf(&b, "Indices: %d %d %d\n", r.vIdx, r.dIdx, r.jIdx)
	} else {
		fmt.Fprintf(&b, "Indices: %d %d\n", r.vIdx, r.jIdx)
	}
	fmt.Fprintf(&b, "Vgene. %s\n", r.v.Name)
	if r.chain == Heavy {
		fmt.Fprintf(&b, "Dgene. %s\n", r.d.Name)
	}
	fmt.Fprintf(&b, "Jgene. %s\n", r.j.Name)
	fmt.Fprintf(&b, "Endonuclease removals: %v\n", r.removing)
	fmt.Fprintf(&b, "P nucleotides settings: %v\n", r.pIns)
	fmt.Fprintf(&b, "N nucleotides settings: %v\n", r.nIns)
	fmt.Fprintf(&b, "Sequence: %s\n", r.Sequence())
	return b.String()
}
