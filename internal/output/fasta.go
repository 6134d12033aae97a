package output

import (
	"fmt"
	"io"
	"strings"

	"igsim/pkg/api"
)

// fastaLineWidth wraps sequence lines.
const fastaLineWidth = 60

func writeFASTARecord(w io.Writer, c api.ClusterV1) error {
	var b strings.Builder
	fmt.Fprintf(&b, ">%s_%d id=%s multiplicity=%d v=%s", c.Phase, c.Ordinal, c.ID, c.Multiplicity, c.VGene)
	if c.DGene != "" {
		fmt.Fprintf(&b, " d=%s", c.DGene)
	}
	fmt.Fprintf(&b, " j=%s", c.JGene)
	for _, r := range c.CDRs {
		fmt.Fprintf(&b, " %s=%d-%d", strings.ToLower(r.Name), r.Start, r.End)
	}
	b.WriteByte('\n')
	for i := 0; i < len(c.Sequence); i += fastaLineWidth {
		b.WriteString(c.Sequence[i:min(i+fastaLineWidth, len(c.Sequence))])
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// StreamFASTA streams FASTA records from a channel to the writer.
func StreamFASTA(w io.Writer, in <-chan api.ClusterV1) error {
	for c := range in {
		if err := writeFASTARecord(w, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteFASTA writes a slice of clusters as FASTA records to the writer.
func WriteFASTA(w io.Writer, list []api.ClusterV1) error {
	for _, c := range list {
		if err := writeFASTARecord(w, c); err != nil {
			return err
		}
	}
	return nil
}
