// Package writers turns repertoire clusters into serialized outputs.
//
// Writers own all presentation knowledge (TSV, JSON, JSONL, FASTA); the
// pipeline stays orchestration-only. JSON and JSONL go through pkg/api (v1)
// for a stable wire format.
package writers
