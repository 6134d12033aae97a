// internal/output/convert.go
package output

import (
	"fmt"

	"github.com/google/uuid"

	"igsim-core/recomb"
	"igsim-core/region"
	"igsim-core/repertoire"

	"igsim/pkg/api"
)

// clusterNamespace roots every cluster ID.
var clusterNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:igsim:cluster"))

// ClusterID is a name-based (SHA-1) UUID over phase, ordinal and sequence,
// so reruns with the same seed reproduce the same IDs.
func ClusterID(phase string, ordinal int, seq string) string {
	return uuid.NewSHA1(clusterNamespace, []byte(fmt.Sprintf("%s/%d/%s", phase, ordinal, seq))).String()
}

// ToAPICluster converts a domain cluster to the stable wire schema (v1).
func ToAPICluster(phase string, ordinal int, c repertoire.Cluster) api.ClusterV1 {
	vr := c.Region
	rec := vr.Recombination()
	seq := vr.Sequence()

	rm := rec.RemovingSettings()
	pi := rec.PInsertionSettings()
	ni := rec.NInsertionSettings()

	v := api.ClusterV1{
		ID:           ClusterID(phase, ordinal, seq),
		Phase:        phase,
		Ordinal:      ordinal,
		Chain:        rec.Chain().String(),
		VGene:        rec.VGene().Name,
		JGene:        rec.JGene().Name,
		VIndex:       rec.VGeneIndex(),
		JIndex:       rec.JGeneIndex(),
		Removing:     api.RemovingV1{VEnd: rm.VEnd, DStart: rm.DStart, DEnd: rm.DEnd, JStart: rm.JStart},
		PInsertion:   api.PInsertionV1{VEnd: pi.VEnd, DStart: pi.DStart, DEnd: pi.DEnd, JStart: pi.JStart},
		NInsertion:   api.NInsertionV1{VD: ni.VD, DJ: ni.DJ, VJ: ni.VJ},
		Sequence:     seq,
		Length:       len(seq),
		Multiplicity: c.Multiplicity,
	}
	if rec.Chain() == recomb.Heavy {
		d := rec.DGeneIndex()
		v.DIndex = &d
		v.DGene = rec.DGene().Name
	}
	v.Segments = segments(rec)
	if cdrs := vr.CDRs(); cdrs.Labeled() {
		for i, r := range cdrs.Ranges() {
			v.CDRs = append(v.CDRs, api.CDRV1{Name: region.CDR(i).String(), Start: r.Start, End: r.End})
		}
	}
	for _, m := range vr.Mutations() {
		v.Mutations = append(v.Mutations, api.MutationV1{Pos: m.Pos, From: string(m.From), To: string(m.To)})
	}
	return v
}

// segments lays out the pieces of rec in assembly order.
func segments(rec *recomb.Recombination) []api.SegmentV1 {
	pi := rec.PInsertionSettings()
	ni := rec.NInsertionSettings()
	type piece struct {
		kind string
		n    int
	}
	var pieces []piece
	if rec.Chain() == recomb.Heavy {
		pieces = []piece{
			{"V", rec.VGeneLen()}, {"P", len(pi.VEnd)}, {"N", len(ni.VD)}, {"P", len(pi.DStart)},
			{"D", rec.DGeneLen()}, {"P", len(pi.DEnd)}, {"N", len(ni.DJ)}, {"P", len(pi.JStart)},
			{"J", rec.JGeneLen()},
		}
	} else {
		pieces = []piece{
			{"V", rec.VGeneLen()}, {"P", len(pi.VEnd)}, {"N", len(ni.VJ)}, {"P", len(pi.JStart)},
			{"J", rec.JGeneLen()},
		}
	}
	var out []api.SegmentV1
	pos := 0
	for _, p := range pieces {
		if p.n == 0 {
			continue
		}
		out = append(out, api.SegmentV1{Kind: p.kind, Start: pos, End: pos + p.n})
		pos += p.n
	}
	return out
}
