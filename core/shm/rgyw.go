// core/shm/rgyw.go
package shm

import (
	"sort"

	"igsim-core/dna"
	"igsim-core/region"
	"igsim-core/rng"
)

// AID hotspot motifs and the offset of the targeted base within each.
var hotspots = []struct {
	motif  []byte
	target int
}{
	{[]byte("RGYW"), 1}, // G
	{[]byte("WRCY"), 2}, // C
}

// RgywWrcyStrategy targets the hotspot base of RGYW/WRCY motifs. Each chosen
// site is substituted with probability SubstitutionProb.
type RgywWrcyStrategy struct {
	Count            Bounds
	SubstitutionProb float64
}

func (s RgywWrcyStrategy) Name() string { return "rgyw_wrcy" }

// HotspotSites returns the sorted, distinct hotspot positions of seq.
func HotspotSites(seq []byte) []int {
	seen := make(map[int]struct{})
	var sites []int
	for _, h := range hotspots {
		for _, pos := range dna.FindMotif(seq, h.motif) {
			p := pos + h.target
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			sites = append(sites, p)
		}
	}
	sort.Ints(sites)
	return sites
}

func (s RgywWrcyStrategy) Apply(r rng.Rand, vr *region.VariableRegion) (int, error) {
	if err := rng.CheckProb("substitution probability", s.SubstitutionProb); err != nil {
		return 0, err
	}
	n, err := s.Count.draw(r)
	if err != nil {
		return 0, err
	}
	sites := HotspotSites([]byte(vr.Sequence()))
	mutated := 0
	for _, pos := range rng.Sample(r, sites, n) {
		if !rng.Bernoulli(r, s.SubstitutionProb) {
			continue
		}
		if err := vr.Substitute(pos, dna.Substitute(r, vr.Base(pos))); err != nil {
			return mutated, err
		}
		mutated++
	}
	return mutated, nil
}
