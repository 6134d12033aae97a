// internal/pipeline/genes.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"igsim-core/genedb"
	"igsim-core/recomb"

	"igsim/internal/config"
)

// LoadDatabase reads the gene FASTA files the chain needs. The D file is
// ignored for light chains.
func LoadDatabase(ctx context.Context, p config.Params, logger *slog.Logger) (*genedb.Database, error) {
	chain, err := p.ChainKind()
	if err != nil {
		return nil, err
	}
	files := []struct {
		cat  genedb.Category
		path string
	}{
		{genedb.Variable, p.Genes.V},
		{genedb.Diversity, p.Genes.D},
		{genedb.Join, p.Genes.J},
	}

	var b genedb.Builder
	for _, f := range files {
		if f.cat == genedb.Diversity && chain == recomb.Light {
			continue
		}
		n, err := b.LoadFile(ctx, f.cat, f.path)
		if err != nil {
			return nil, fmt.Errorf("load %v genes: %w", f.cat, err)
		}
		if logger != nil {
			logger.Debug("loaded genes", "category", f.cat, "file", f.path, "count", n)
		}
	}
	return b.Build(), nil
}
