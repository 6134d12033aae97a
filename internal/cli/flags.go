// internal/cli/flags.go
package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"igsim/internal/config"
)

// bindings maps flag names to config keys.
var bindings = map[string]string{
	"chain":   "chain",
	"seed":    "seed",
	"threads": "threads",

	"v-genes": "genes.v",
	"d-genes": "genes.d",
	"j-genes": "genes.j",

	"base-size":    "repertoire.base_size",
	"mutated-size": "repertoire.mutated_size",
	"final-size":   "repertoire.final_size",

	"max-v-end":   "removing.max_v_end",
	"max-d-start": "removing.max_d_start",
	"max-d-end":   "removing.max_d_end",
	"max-j-start": "removing.max_j_start",
	"max-p-len":   "p_insertion.max_len",
	"min-n-len":   "n_insertion.min_len",
	"max-n-len":   "n_insertion.max_len",

	"cdr1-start":  "cdr.cdr1_start",
	"cdr1-end":    "cdr.cdr1_end",
	"cdr2-start":  "cdr.cdr2_start",
	"cdr2-end":    "cdr.cdr2_end",
	"cdr3-v-tail": "cdr.cdr3_v_tail",
	"cdr3-j-head": "cdr.cdr3_j_head",

	"pattern-shm-min":  "pattern_shm.min",
	"pattern-shm-max":  "pattern_shm.max",
	"pattern-shm-prob": "pattern_shm.substitution_prob",
	"cdr-shm-min":      "cdr_shm.min",
	"cdr-shm-max":      "cdr_shm.max",
	"cdr-shm-fr-prob":  "cdr_shm.fr_prob",

	"output":       "output.format",
	"base-out":     "output.base_file",
	"mutated-out":  "output.mutated_file",
	"header":       "output.header",
	"sort":         "output.sort",
	"pretty":       "output.pretty",
	"metrics-file": "metrics_file",
	"log-level":    "log.level",
	"quiet":        "log.quiet",
}

// registerFlags declares one flag per config key, with the built-in
// defaults shown in --help.
func registerFlags(fs *pflag.FlagSet) {
	d := config.Defaults()

	fs.String("chain", d.Chain, "chain to simulate: heavy (VDJ) or light (VJ)")
	fs.Uint64("seed", d.Seed, "random seed; equal seeds give identical repertoires")
	fs.IntP("threads", "t", d.Threads, "worker goroutines (0 = all CPUs); output does not depend on it")

	fs.String("v-genes", d.Genes.V, "FASTA file of V gene segments [*]")
	fs.String("d-genes", d.Genes.D, "FASTA file of D gene segments [* heavy]")
	fs.String("j-genes", d.Genes.J, "FASTA file of J gene segments [*]")

	fs.Int("base-size", d.Repertoire.BaseSize, "number of naive clusters in the base repertoire")
	fs.Int("mutated-size", d.Repertoire.MutatedSize, "expected antibodies of the base repertoire")
	fs.Int("final-size", d.Repertoire.FinalSize, "expected antibodies of the mutated repertoire")

	fs.Int("max-v-end", d.Removing.MaxVEnd, "max bases trimmed from the V 3' end")
	fs.Int("max-d-start", d.Removing.MaxDStart, "max bases trimmed from the D 5' end")
	fs.Int("max-d-end", d.Removing.MaxDEnd, "max bases trimmed from the D 3' end")
	fs.Int("max-j-start", d.Removing.MaxJStart, "max bases trimmed from the J 5' end")
	fs.Int("max-p-len", d.PInsertion.MaxLen, "max palindromic (P) nucleotides per segment end")
	fs.Int("min-n-len", d.NInsertion.MinLen, "min non-templated (N) nucleotides per junction")
	fs.Int("max-n-len", d.NInsertion.MaxLen, "max non-templated (N) nucleotides per junction")

	fs.Int("cdr1-start", d.CDR.CDR1Start, "CDR1 start offset in V")
	fs.Int("cdr1-end", d.CDR.CDR1End, "CDR1 end offset in V (exclusive)")
	fs.Int("cdr2-start", d.CDR.CDR2Start, "CDR2 start offset in V")
	fs.Int("cdr2-end", d.CDR.CDR2End, "CDR2 end offset in V (exclusive)")
	fs.Int("cdr3-v-tail", d.CDR.CDR3VTail, "CDR3 starts this many bases before the end of V")
	fs.Int("cdr3-j-head", d.CDR.CDR3JHead, "CDR3 ends this many bases into J")

	fs.Int("pattern-shm-min", d.PatternSHM.Min, "min RGYW/WRCY hotspot mutations per copy")
	fs.Int("pattern-shm-max", d.PatternSHM.Max, "max RGYW/WRCY hotspot mutations per copy")
	fs.Float64("pattern-shm-prob", d.PatternSHM.SubstitutionProb, "substitution probability at a chosen hotspot")
	fs.Int("cdr-shm-min", d.CDRSHM.Min, "min CDR-biased random mutations per copy")
	fs.Int("cdr-shm-max", d.CDRSHM.Max, "max CDR-biased random mutations per copy")
	fs.Float64("cdr-shm-fr-prob", d.CDRSHM.FRProb, "probability a random mutation lands in framework")

	fs.StringP("output", "o", d.Output.Format, "output format: text | json | jsonl | fasta")
	fs.String("base-out", d.Output.BaseFile, `base repertoire file ("-" = stdout, "" = skip)`)
	fs.String("mutated-out", d.Output.MutatedFile, `mutated repertoire file ("-" = stdout, "" = skip)`)
	fs.Bool("header", d.Output.Header, "print a header row (text)")
	fs.Bool("sort", d.Output.Sort, "sort clusters by multiplicity before writing")
	fs.Bool("pretty", d.Output.Pretty, "draw a junction diagram under each row (text)")
	fs.String("metrics-file", d.MetricsFile, "write run metrics in Prometheus text format")
	fs.String("log-level", d.Log.Level, "debug | info | warn | error")
	fs.BoolP("quiet", "q", d.Log.Quiet, "only log warnings and errors")
}

// bindFlags hands every declared flag to viper under its config key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s for %s is not declared", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
