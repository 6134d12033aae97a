package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igsim-core/genedb"
	"igsim-core/repertoire"
	"igsim-core/simerr"

	"igsim/internal/config"
	"igsim/internal/metrics"
)

var (
	testV = []string{
		strings.Repeat("AGCT", 10),
		strings.Repeat("ACGT", 10),
		"CAGGTGCAGCTGGTGCAGTCTGGGGCTGAGGTGAAGAAGCC",
	}
	testD = []string{"GGTATAGTGG", "AGGATATTGTAGTAG"}
	testJ = []string{"ACTACTTTGACTACTGG", "TGGTTCGACCCCTGG"}
)

func testParams() config.Params {
	p := config.Defaults()
	p.Genes = config.GenesConfig{V: "v.fa", D: "d.fa", J: "j.fa"}
	p.Repertoire = config.RepertoireConfig{BaseSize: 20, MutatedSize: 60, FinalSize: 120}
	p.Removing = config.RemovingConfig{MaxVEnd: 2, MaxDStart: 2, MaxDEnd: 2, MaxJStart: 2}
	p.CDR = config.CDRConfig{CDR1Start: 3, CDR1End: 9, CDR2Start: 12, CDR2End: 18, CDR3VTail: 6, CDR3JHead: 4}
	p.PatternSHM = config.PatternSHMConfig{Min: 1, Max: 3, SubstitutionProb: 0.8}
	p.CDRSHM = config.CDRSHMConfig{Min: 0, Max: 2, FRProb: 0.3}
	return p
}

func fingerprint(rep *repertoire.Repertoire) []string {
	out := make([]string, 0, rep.Size())
	for _, c := range rep.All() {
		out = append(out, fmt.Sprintf("%s:%d:%v", c.Region.Sequence(), c.Multiplicity, c.Region.CDRs()))
	}
	return out
}

func simulate(t *testing.T, p config.Params, opts ...Option) Result {
	t.Helper()
	s, err := New(p, genedb.MustNew(testV, testD, testJ), opts...)
	require.NoError(t, err)
	res, err := s.Simulate(context.Background())
	require.NoError(t, err)
	return res
}

func TestSimulate_Deterministic(t *testing.T) {
	p := testParams()
	a := simulate(t, p, WithThreads(1))
	b := simulate(t, p, WithThreads(1))
	c := simulate(t, p, WithThreads(4))

	assert.Equal(t, fingerprint(a.Base), fingerprint(b.Base))
	assert.Equal(t, fingerprint(a.Mutated), fingerprint(b.Mutated))
	assert.Equal(t, fingerprint(a.Base), fingerprint(c.Base), "thread count must not change the base repertoire")
	assert.Equal(t, fingerprint(a.Mutated), fingerprint(c.Mutated), "thread count must not change the mutated repertoire")

	p.Seed++
	d := simulate(t, p, WithThreads(1))
	assert.NotEqual(t, fingerprint(a.Base), fingerprint(d.Base))
}

func TestSimulate_PhaseShape(t *testing.T) {
	m := metrics.New()
	res := simulate(t, testParams(), WithThreads(3), WithMetrics(m))

	require.Equal(t, 20, res.Base.Size())
	require.Equal(t, res.Base.TotalCount(), res.Mutated.Size(), "one mutated cluster per base antibody")

	k := 0
	for _, parent := range res.Base.All() {
		require.True(t, parent.Region.CDRs().Labeled())
		for range parent.Multiplicity {
			child, err := res.Mutated.At(k)
			require.NoError(t, err)
			assert.Equal(t, parent.Region.Len(), child.Region.Len(), "SHM preserves length")
			assert.Equal(t, parent.Region.CDRs(), child.Region.CDRs())
			assert.GreaterOrEqual(t, child.Multiplicity, 1)
			k++
		}
		assert.Empty(t, parent.Region.Mutations(), "base regions are never mutated in place")
	}
}

func TestSimulate_LightChain(t *testing.T) {
	p := testParams()
	p.Chain = "light"
	p.Genes.D = ""
	s, err := New(p, genedb.MustNew(testV, nil, testJ))
	require.NoError(t, err)
	base, err := s.CreateBaseRepertoire(context.Background())
	require.NoError(t, err)
	for _, c := range base.All() {
		rec := c.Region.Recombination()
		assert.Equal(t, -1, rec.DGeneIndex())
		assert.Equal(t, rec.VGeneLen()+rec.PInsertionSettings().Len()+rec.NInsertionSettings().Len()+rec.JGeneLen(), rec.Len())
	}
}

func TestSimulate_Cancelled(t *testing.T) {
	s, err := New(testParams(), genedb.MustNew(testV, testD, testJ), WithThreads(2))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Simulate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulate_AnnotationFailureAborts(t *testing.T) {
	p := testParams()
	p.CDR.CDR2End = 60 // past every V segment
	p.CDR.CDR2Start = 50
	s, err := New(p, genedb.MustNew(testV, testD, testJ))
	require.NoError(t, err)
	res, err := s.Simulate(context.Background())
	assert.ErrorIs(t, err, simerr.ErrAnnotation)
	assert.Nil(t, res.Base)
}

func TestNew_MissingCategory(t *testing.T) {
	_, err := New(testParams(), genedb.MustNew(testV, nil, testJ))
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
}

func TestLoadDatabase(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	p := testParams()
	p.Genes = config.GenesConfig{
		V: write("v.fa", ">IGHV1-2*01 some description\nACGTACGT\nACGT\n>IGHV1-3\nAGCTAGCT\n"),
		D: write("d.fa", ">IGHD1\nTTTT\n"),
		J: write("j.fa", ">IGHJ4\nGGGGCCCC\n"),
	}
	db, err := LoadDatabase(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len(genedb.Variable))
	g, err := db.GetByIndex(genedb.Variable, 0)
	require.NoError(t, err)
	assert.Equal(t, "IGHV1-2*01", g.Name)
	assert.Equal(t, "ACGTACGTACGT", g.Seq)

	p.Chain = "light"
	p.Genes.D = filepath.Join(dir, "missing.fa")
	db, err = LoadDatabase(context.Background(), p, nil)
	require.NoError(t, err, "light chains never read the D file")
	assert.Zero(t, db.Len(genedb.Diversity))

	p.Chain = "heavy"
	_, err = LoadDatabase(context.Background(), p, nil)
	assert.Error(t, err)
}
