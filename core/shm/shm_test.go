package shm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igsim-core/genedb"
	"igsim-core/recomb"
	"igsim-core/region"
	"igsim-core/rng"
	"igsim-core/simerr"
)

func lightRegion(t *testing.T, v, j string) *region.VariableRegion {
	t.Helper()
	db := genedb.MustNew([]string{v}, nil, []string{j})
	rec, err := recomb.NewLight(db, 0, 0)
	require.NoError(t, err)
	return region.New(rec)
}

func diff(a, b string) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func TestHotspotSites(t *testing.T) {
	// AGCT matches RGYW (G at 1) and WRCY (C at 2).
	assert.Equal(t, []int{1, 2}, HotspotSites([]byte("AGCT")))
	assert.Empty(t, HotspotSites([]byte("CCCCCCCC")))
	assert.Equal(t, []int{1, 2, 5, 6}, HotspotSites([]byte("AGCTAGCT")))
}

func TestRgywWrcy_ClampsToEligibleSites(t *testing.T) {
	vr := lightRegion(t, "AGCTTTTT", "TTAGCT")
	before := vr.Sequence()
	sites := HotspotSites([]byte(before))
	require.Len(t, sites, 4)

	s := RgywWrcyStrategy{Count: Bounds{Min: 100, Max: 100}, SubstitutionProb: 1}
	n, err := s.Apply(rng.New(1, 0), vr)
	require.NoError(t, err)
	assert.Equal(t, len(sites), n)
	assert.Equal(t, len(before), vr.Len())
	assert.Equal(t, len(sites), diff(before, vr.Sequence()))
	for _, m := range vr.Mutations() {
		assert.Contains(t, sites, m.Pos)
	}
}

func TestRgywWrcy_ZeroProbabilityLeavesSequence(t *testing.T) {
	vr := lightRegion(t, "AGCTAGCTAGCT", "AGCT")
	before := vr.Sequence()
	s := RgywWrcyStrategy{Count: Bounds{Min: 3, Max: 5}, SubstitutionProb: 0}
	n, err := s.Apply(rng.New(7, 0), vr)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, before, vr.Sequence())
}

func TestCDRRandom_ClampsToLength(t *testing.T) {
	vr := lightRegion(t, strings.Repeat("ACGT", 4), "GGCC")
	before := vr.Sequence()
	s := CDRBasedRandomStrategy{Count: Bounds{Min: 1000, Max: 1000}, FRProb: 0.5}
	n, err := s.Apply(rng.New(3, 0), vr)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, 20, diff(before, vr.Sequence()))
}

func TestCDRRandom_FrameworkOnly(t *testing.T) {
	vr := lightRegion(t, strings.Repeat("ACGT", 10), "GGCCGGCC")
	vr.SetCDRs(region.NewCDRLabeling(region.Range{Start: 5, End: 10}, region.Range{Start: 20, End: 25}, region.Range{Start: 30, End: 40}))
	s := CDRBasedRandomStrategy{Count: Bounds{Min: 10, Max: 10}, FRProb: 1}
	n, err := s.Apply(rng.New(11, 0), vr)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	for _, m := range vr.Mutations() {
		assert.False(t, vr.CDRs().Contains(m.Pos), "mutation at %d landed in a CDR", m.Pos)
	}
}

func TestCDRRandom_FallsBackWhenClassExhausted(t *testing.T) {
	vr := lightRegion(t, "ACGTACGTAC", "GG")
	vr.SetCDRs(region.NewCDRLabeling(region.Range{Start: 0, End: 2}, region.Range{Start: 4, End: 6}, region.Range{Start: 8, End: 12}))
	// 8 CDR sites, 4 framework sites; FRProb 0 still reaches the framework once CDRs run out.
	s := CDRBasedRandomStrategy{Count: Bounds{Min: 12, Max: 12}, FRProb: 0}
	n, err := s.Apply(rng.New(5, 0), vr)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestCreator_CompositeOrderAndObserve(t *testing.T) {
	vr := lightRegion(t, strings.Repeat("AGCT", 8), strings.Repeat("ACGT", 3))
	before := vr.Sequence()

	seen := map[string]int{}
	var order []string
	c := Creator{
		Strategy: Composite{
			RgywWrcyStrategy{Count: Bounds{Min: 2, Max: 4}, SubstitutionProb: 1},
			CDRBasedRandomStrategy{Count: Bounds{Min: 1, Max: 3}, FRProb: 0.5},
		},
		Observe: func(name string, n int) {
			order = append(order, name)
			seen[name] = n
		},
	}
	out, err := c.CreateSHM(rng.New(9, 0), vr)
	require.NoError(t, err)
	assert.Same(t, vr, out)
	assert.Equal(t, []string{"rgyw_wrcy", "cdr_random"}, order)
	assert.Equal(t, len(before), out.Len())
	assert.GreaterOrEqual(t, seen["rgyw_wrcy"], 2)
	assert.LessOrEqual(t, seen["rgyw_wrcy"], 4)
	assert.GreaterOrEqual(t, seen["cdr_random"], 1)
}

func TestComposite_ApplyMatchesCreator(t *testing.T) {
	seq := strings.Repeat("AGCT", 8)
	comp := Composite{
		RgywWrcyStrategy{Count: Bounds{Min: 2, Max: 4}, SubstitutionProb: 1},
		CDRBasedRandomStrategy{Count: Bounds{Min: 1, Max: 3}, FRProb: 0.5},
	}

	direct := lightRegion(t, seq, "ACGTACGTACGT")
	total, err := comp.Apply(rng.New(9, 0), direct)
	require.NoError(t, err)

	viaCreator := lightRegion(t, seq, "ACGTACGTACGT")
	sum := 0
	_, err = Creator{Strategy: comp, Observe: func(_ string, n int) { sum += n }}.CreateSHM(rng.New(9, 0), viaCreator)
	require.NoError(t, err)

	assert.Equal(t, direct.Sequence(), viaCreator.Sequence())
	assert.Equal(t, total, sum)

	// nested composites report as one strategy
	outer := Composite{comp}
	names := map[string]int{}
	_, err = Creator{Strategy: outer, Observe: func(name string, n int) { names[name] += n }}.CreateSHM(rng.New(9, 0), lightRegion(t, seq, "ACGTACGTACGT"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"composite": total}, names)
}

func TestStrategies_RejectBadParameters(t *testing.T) {
	vr := lightRegion(t, "AGCTAGCT", "AC")
	r := rng.New(1, 1)

	_, err := RgywWrcyStrategy{Count: Bounds{Min: 5, Max: 1}, SubstitutionProb: 0.5}.Apply(r, vr)
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
	_, err = RgywWrcyStrategy{Count: Bounds{Min: 1, Max: 1}, SubstitutionProb: 1.5}.Apply(r, vr)
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
	_, err = CDRBasedRandomStrategy{Count: Bounds{Min: -1, Max: 1}, FRProb: 0.5}.Apply(r, vr)
	assert.ErrorIs(t, err, simerr.ErrConfiguration)

	_, err = Creator{Strategy: Composite{CDRBasedRandomStrategy{Count: Bounds{Min: 2, Max: 1}}}}.CreateSHM(r, vr)
	assert.ErrorIs(t, err, simerr.ErrConfiguration)
}
