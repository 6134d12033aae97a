// internal/output/rows.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"igsim/pkg/api"
)

// CDRField renders the range of the named CDR, or "" when absent.
func CDRField(c api.ClusterV1, name string) string {
	for _, r := range c.CDRs {
		if r.Name == name {
			return fmt.Sprintf("%d-%d", r.Start, r.End)
		}
	}
	return ""
}

// MutationsCSV renders substitutions as From<pos>To, comma separated.
func MutationsCSV(ms []api.MutationV1) string {
	if len(ms) == 0 {
		return ""
	}
	ss := make([]string, len(ms))
	for i, m := range ms {
		ss[i] = m.From + fmt.Sprint(m.Pos) + m.To
	}
	return strings.Join(ss, ",")
}

// FormatRowTSV returns the TSVHeader columns (no trailing newline). The
// first two columns are "<sequence> <multiplicity>".
func FormatRowTSV(c api.ClusterV1) string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s",
		c.Sequence, c.Multiplicity,
		CDRField(c, "CDR1"), CDRField(c, "CDR2"), CDRField(c, "CDR3"),
		c.VGene, c.DGene, c.JGene,
		MutationsCSV(c.Mutations),
		c.Phase, c.Ordinal, c.ID,
	)
}

// LessCluster orders by multiplicity (descending), then sequence, then
// phase and ordinal (for --sort).
func LessCluster(a, b api.ClusterV1) bool {
	if a.Multiplicity != b.Multiplicity {
		return a.Multiplicity > b.Multiplicity
	}
	if a.Sequence != b.Sequence {
		return a.Sequence < b.Sequence
	}
	if a.Phase != b.Phase {
		return a.Phase < b.Phase
	}
	return a.Ordinal < b.Ordinal
}

func SortClusters(list []api.ClusterV1) {
	sort.SliceStable(list, func(i, j int) bool { return LessCluster(list[i], list[j]) })
}
