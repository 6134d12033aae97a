package output

// Output format names accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "sequence\tmultiplicity\tcdr1\tcdr2\tcdr3\tv_gene\td_gene\tj_gene\tmutations\tphase\tordinal\tid"
