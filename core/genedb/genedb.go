// Package genedb is the immutable, index-addressed store of germline gene
// segments. A Database is built once, then shared read-only by every
// recombination that refers to it; nothing in the simulator copies it.
package genedb

import (
	"fmt"

	"igsim-core/dna"
	"igsim-core/simerr"
)

// Category is a gene segment family.
type Category int

const (
	Variable Category = iota
	Diversity
	Join
	numCategories
)

func (c Category) String() string {
	switch c {
	case Variable:
		return "V"
	case Diversity:
		return "D"
	case Join:
		return "J"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Gene is one named germline segment.
type Gene struct {
	Name string
	Seq  string
}

// Len is the raw segment length.
func (g Gene) Len() int { return len(g.Seq) }

// Database holds the genes of every category. The zero value is empty.
type Database struct {
	genes [numCategories][]Gene
}

// GetByIndex returns the gene at idx within cat.
func (db *Database) GetByIndex(cat Category, idx int) (Gene, error) {
	if cat < 0 || cat >= numCategories {
		return Gene{}, fmt.Errorf("gene category %v: %w", cat, simerr.ErrIndex)
	}
	list := db.genes[cat]
	if idx < 0 || idx >= len(list) {
		return Gene{}, fmt.Errorf("%v gene index %d out of range [0, %d): %w", cat, idx, len(list), simerr.ErrIndex)
	}
	return list[idx], nil
}

// Len returns the number of genes in cat.
func (db *Database) Len(cat Category) int {
	if cat < 0 || cat >= numCategories {
		return 0
	}
	return len(db.genes[cat])
}

// Require fails when any of cats has no genes.
func (db *Database) Require(cats ...Category) error {
	for _, c := range cats {
		if db.Len(c) == 0 {
			return fmt.Errorf("gene database has no %v genes: %w", c, simerr.ErrConfiguration)
		}
	}
	return nil
}

// Builder accumulates genes; Build freezes them into a Database.
type Builder struct {
	genes [numCategories][]Gene
	built bool
}

// Add validates and appends a gene to cat.
func (b *Builder) Add(cat Category, name, seq string) error {
	if b.built {
		return fmt.Errorf("gene database already built")
	}
	if cat < 0 || cat >= numCategories {
		return fmt.Errorf("gene category %v: %w", cat, simerr.ErrIndex)
	}
	s, err := dna.Validate(seq)
	if err != nil {
		return fmt.Errorf("%v gene %q: %w", cat, name, err)
	}
	b.genes[cat] = append(b.genes[cat], Gene{Name: name, Seq: s})
	return nil
}

// Build returns the frozen database. The builder cannot be reused.
func (b *Builder) Build() *Database {
	b.built = true
	db := &Database{}
	for c := range b.genes {
		db.genes[c] = append([]Gene(nil), b.genes[c]...)
	}
	return db
}

// MustNew builds a database from literal sequences; for fixtures and tests.
// Gene names are <category><index>.
func MustNew(v, d, j []string) *Database {
	var b Builder
	for cat, list := range [][]string{v, d, j} {
		for i, s := range list {
			c := Category(cat)
			if err := b.Add(c, fmt.Sprintf("%v%d", c, i), s); err != nil {
				panic(err)
			}
		}
	}
	return b.Build()
}
