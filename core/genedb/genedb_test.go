package genedb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"igsim-core/simerr"
)

func TestGetByIndex(t *testing.T) {
	db := MustNew([]string{"ACGTACGT"}, []string{"TTTT"}, []string{"GGGGCCCC"})

	g, err := db.GetByIndex(Variable, 0)
	require.NoError(t, err)
	require.Equal(t, Gene{Name: "V0", Seq: "ACGTACGT"}, g)
	require.Equal(t, 8, g.Len())

	_, err = db.GetByIndex(Join, 1)
	require.ErrorIs(t, err, simerr.ErrIndex)
	_, err = db.GetByIndex(Diversity, -1)
	require.ErrorIs(t, err, simerr.ErrIndex)
	_, err = db.GetByIndex(Category(9), 0)
	require.ErrorIs(t, err, simerr.ErrIndex)
}

func TestRequire(t *testing.T) {
	db := MustNew([]string{"ACGT"}, nil, []string{"GG"})
	require.NoError(t, db.Require(Variable, Join))
	require.ErrorIs(t, db.Require(Variable, Diversity, Join), simerr.ErrConfiguration)
}

func TestBuilder_RejectsBadBases(t *testing.T) {
	var b Builder
	require.Error(t, b.Add(Variable, "bad", "ACGN"))
	require.NoError(t, b.Add(Variable, "ok", "acgt"))
	db := b.Build()
	g, err := db.GetByIndex(Variable, 0)
	require.NoError(t, err)
	require.Equal(t, "ACGT", g.Seq)
	require.Error(t, b.Add(Variable, "late", "ACGT"), "builder is frozen after Build")
	require.Equal(t, 1, db.Len(Variable))
}

func TestLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "j.fa")
	require.NoError(t, os.WriteFile(fn, []byte(">IGHJ1*01\nGCTGAATACTTCCAGCAC\n>IGHJ2*01\nCTACTGGTACTTCGATCTC\n"), 0o644))

	var b Builder
	n, err := b.LoadFile(context.Background(), Join, fn)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	db := b.Build()
	g, err := db.GetByIndex(Join, 1)
	require.NoError(t, err)
	require.Equal(t, "IGHJ2*01", g.Name)
}
