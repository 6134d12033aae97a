package pretty

import (
	"strings"
	"testing"

	"igsim/pkg/api"
)

func cluster() api.ClusterV1 {
	return api.ClusterV1{
		Phase: "mutated", Ordinal: 7, Chain: "heavy",
		VGene: "V0", DGene: "D0", JGene: "J0",
		Sequence: "TCGTACTTGGGGCCCC", Length: 16, Multiplicity: 4,
		Segments: []api.SegmentV1{{Kind: "V", Start: 0, End: 6}, {Kind: "D", Start: 6, End: 8}, {Kind: "J", Start: 8, End: 16}},
		CDRs: []api.CDRV1{
			{Name: "CDR1", Start: 0, End: 2}, {Name: "CDR2", Start: 3, End: 5}, {Name: "CDR3", Start: 5, End: 9},
		},
		Mutations: []api.MutationV1{{Pos: 0, From: "A", To: "T"}},
	}
}

func TestRender_NoWrap(t *testing.T) {
	o := DefaultOptions
	o.Width = 0
	got := RenderWithOptions(cluster(), o)
	want := strings.Join([]string{
		"# mutated_7 heavy V=V0 D=D0 J=J0 len=16 x4",
		"# TCGTAC TT GGGGCCCC",
		"# V----- D- J-------",
		"# 11 223 33 3",
		"# *",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRender_Wrap(t *testing.T) {
	o := DefaultOptions
	o.Width = 8
	got := RenderWithOptions(cluster(), o)
	want := strings.Join([]string{
		"# mutated_7 heavy V=V0 D=D0 J=J0 len=16 x4",
		"# TCGTAC T",
		"# V----- D",
		"# 11 223 3",
		"# *",
		"#",
		"# T GGGGCC",
		"# - J-----",
		"# 3 3",
		"#",
		"# CC",
		"# --",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRender_LightWithoutAnnotations(t *testing.T) {
	c := api.ClusterV1{Phase: "base", Chain: "light", VGene: "V1", JGene: "J2", Sequence: "ACGT", Length: 4, Multiplicity: 1}
	got := Render(c)
	want := "# base_0 light V=V1 J=J2 len=4 x1\n# ACGT\n# ?---\n"
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.FillGlyph != "-" || d.MutationGlyph != "*" || d.Gap != " " || !d.ShowCDRs {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
}
