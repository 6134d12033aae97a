// Package junction produces recombinations and their junctional settings.
//
// Each creator delegates sampling to a pluggable strategy so alternative
// statistical models can be swapped in without touching the pipeline. The
// creators enforce the junctional order: remove, then P-insert, then N-insert.
package junction

import (
	"fmt"

	"igsim-core/genedb"
	"igsim-core/recomb"
	"igsim-core/rng"
)

// Recombinator produces a fresh recombination.
type Recombinator interface {
	CreateRecombination(r rng.Rand) (*recomb.Recombination, error)
}

// UniformRecombinator picks every gene index uniformly.
type UniformRecombinator struct {
	DB    *genedb.Database
	Chain recomb.Chain
}

// NewUniformRecombinator checks the database has the categories chain needs.
func NewUniformRecombinator(db *genedb.Database, chain recomb.Chain) (*UniformRecombinator, error) {
	cats := []genedb.Category{genedb.Variable, genedb.Join}
	if chain == recomb.Heavy {
		cats = append(cats, genedb.Diversity)
	}
	if err := db.Require(cats...); err != nil {
		return nil, fmt.Errorf("%v chain: %w", chain, err)
	}
	return &UniformRecombinator{DB: db, Chain: chain}, nil
}

func (u *UniformRecombinator) CreateRecombination(r rng.Rand) (*recomb.Recombination, error) {
	v := r.IntN(u.DB.Len(genedb.Variable))
	if u.Chain == recomb.Light {
		j := r.IntN(u.DB.Len(genedb.Join))
		return recomb.NewLight(u.DB, v, j)
	}
	d := r.IntN(u.DB.Len(genedb.Diversity))
	j := r.IntN(u.DB.Len(genedb.Join))
	return recomb.NewHeavy(u.DB, v, d, j)
}
