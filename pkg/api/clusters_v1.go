// pkg/api/clusters_v1.go
package api

// ClusterV1 is the stable JSON/JSONL schema for one repertoire cluster.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ClusterV1 struct {
	ID      string `json:"id"`
	Phase   string `json:"phase"` // "base" | "mutated"
	Ordinal int    `json:"ordinal"`
	Chain   string `json:"chain"` // "heavy" | "light"

	VGene  string `json:"v_gene"`
	DGene  string `json:"d_gene,omitempty"`
	JGene  string `json:"j_gene"`
	VIndex int    `json:"v_index"`
	DIndex *int   `json:"d_index,omitempty"` // nil for light chains
	JIndex int    `json:"j_index"`

	Removing   RemovingV1   `json:"removing"`
	PInsertion PInsertionV1 `json:"p_insertion"`
	NInsertion NInsertionV1 `json:"n_insertion"`

	Sequence     string       `json:"sequence"`
	Length       int          `json:"length"`
	Multiplicity int          `json:"multiplicity"`
	Segments     []SegmentV1  `json:"segments,omitempty"`
	CDRs         []CDRV1      `json:"cdrs,omitempty"`
	Mutations    []MutationV1 `json:"mutations,omitempty"`
}

// SegmentV1 is one germline or inserted piece of Sequence, [start, end).
// Kind is V, D, J, P or N; empty pieces are omitted.
type SegmentV1 struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// RemovingV1 carries exonuclease trim lengths.
type RemovingV1 struct {
	VEnd   int `json:"v_end"`
	DStart int `json:"d_start,omitempty"`
	DEnd   int `json:"d_end,omitempty"`
	JStart int `json:"j_start"`
}

// PInsertionV1 carries palindromic nucleotides per segment end.
type PInsertionV1 struct {
	VEnd   string `json:"v_end,omitempty"`
	DStart string `json:"d_start,omitempty"`
	DEnd   string `json:"d_end,omitempty"`
	JStart string `json:"j_start,omitempty"`
}

// NInsertionV1 carries non-templated nucleotides per junction.
type NInsertionV1 struct {
	VD string `json:"vd,omitempty"`
	DJ string `json:"dj,omitempty"`
	VJ string `json:"vj,omitempty"`
}

// CDRV1 is a half-open [start, end) range on Sequence.
type CDRV1 struct {
	Name  string `json:"name"` // "CDR1" | "CDR2" | "CDR3"
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// MutationV1 is one SHM substitution, listed in application order. From is
// the base just before this substitution, so a site hit twice appears twice.
type MutationV1 struct {
	Pos  int    `json:"pos"`
	From string `json:"from"`
	To   string `json:"to"`
}
