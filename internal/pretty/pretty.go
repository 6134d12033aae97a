// Package pretty draws an ASCII junction diagram of a cluster: the sequence
// split at segment boundaries, a segment track, a CDR track and a mutation
// track. Every line starts with "# " so TSV readers can skip it.
package pretty

import (
	"fmt"
	"strings"

	"igsim/pkg/api"
)

// Options control the ASCII rendering. Glyphs must be one column wide.
type Options struct {
	// Wrap blocks at this many columns. If <=0, never wrap.
	Width int

	// Separator drawn between segments on every track.
	Gap string

	// Segment track: kind letter followed by FillGlyph to the segment end.
	FillGlyph string

	// CDR track shows 1/2/3 under CDR positions.
	ShowCDRs bool

	// Mutation track marks substituted positions.
	ShowMutations bool
	MutationGlyph string
}

// DefaultOptions is the look used by --pretty.
var DefaultOptions = Options{
	Width:         100,
	Gap:           " ",
	FillGlyph:     "-",
	ShowCDRs:      true,
	ShowMutations: true,
	MutationGlyph: "*",
}

const linePrefix = "# "

func (o Options) withDefaults() Options {
	if o.FillGlyph == "" {
		o.FillGlyph = DefaultOptions.FillGlyph
	}
	if o.MutationGlyph == "" {
		o.MutationGlyph = DefaultOptions.MutationGlyph
	}
	return o
}

// cdrGlyph returns '1'..'3' when pos is in a CDR, ' ' otherwise.
func cdrGlyph(cdrs []api.CDRV1, pos int) byte {
	for _, r := range cdrs {
		if pos >= r.Start && pos < r.End && len(r.Name) == 4 {
			return r.Name[3]
		}
	}
	return ' '
}

// Render draws c with DefaultOptions.
func Render(c api.ClusterV1) string { return RenderWithOptions(c, DefaultOptions) }

func RenderWithOptions(c api.ClusterV1, o Options) string {
	o = o.withDefaults()

	segs := c.Segments
	if len(segs) == 0 {
		segs = []api.SegmentV1{{Kind: "?", Start: 0, End: len(c.Sequence)}}
	}
	mutated := make(map[int]bool, len(c.Mutations))
	for _, m := range c.Mutations {
		mutated[m.Pos] = true
	}

	var seq, seg, cdr, mut strings.Builder
	blank := strings.Repeat(" ", len(o.Gap))
	for i, s := range segs {
		start, end := max(0, s.Start), min(s.End, len(c.Sequence))
		if start >= end {
			continue
		}
		if i > 0 {
			seq.WriteString(o.Gap)
			seg.WriteString(blank)
			cdr.WriteString(blank)
			mut.WriteString(blank)
		}
		seq.WriteString(c.Sequence[start:end])
		kind := "?"
		if s.Kind != "" {
			kind = s.Kind[:1]
		}
		seg.WriteString(kind)
		seg.WriteString(strings.Repeat(o.FillGlyph, end-start-1))
		for p := start; p < end; p++ {
			cdr.WriteByte(cdrGlyph(c.CDRs, p))
			if mutated[p] {
				mut.WriteString(o.MutationGlyph)
			} else {
				mut.WriteByte(' ')
			}
		}
	}

	rows := []string{seq.String(), seg.String()}
	if o.ShowCDRs && len(c.CDRs) > 0 {
		rows = append(rows, cdr.String())
	}
	if o.ShowMutations && len(c.Mutations) > 0 {
		rows = append(rows, mut.String())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s_%d %s V=%s", linePrefix, c.Phase, c.Ordinal, c.Chain, c.VGene)
	if c.DGene != "" {
		fmt.Fprintf(&b, " D=%s", c.DGene)
	}
	fmt.Fprintf(&b, " J=%s len=%d x%d\n", c.JGene, c.Length, c.Multiplicity)

	n := len(rows[0])
	width := o.Width
	if width <= 0 {
		width = max(n, 1)
	}
	for off := 0; off < n; off += width {
		if off > 0 {
			b.WriteString(strings.TrimSpace(linePrefix) + "\n")
		}
		for i, row := range rows {
			chunk := strings.TrimRight(row[min(off, len(row)):min(off+width, len(row))], " ")
			// annotation tracks drop empty chunks; sequence and segments always print
			if chunk == "" && i >= 2 {
				continue
			}
			b.WriteString(linePrefix + chunk + "\n")
		}
	}
	return b.String()
}
