// core/genedb/load.go
package genedb

import (
	"context"

	"igsim-core/fasta"
)

// LoadFile appends every FASTA record of path to cat.
func (b *Builder) LoadFile(ctx context.Context, cat Category, path string) (int, error) {
	n := 0
	err := fasta.ReadFileCtx(ctx, path, func(r fasta.Record) error {
		if err := b.Add(cat, r.ID, string(r.Seq)); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}
