// Package config holds the simulation parameters. Values come from, in
// increasing precedence: built-in defaults, an optional YAML file, IGSIM_*
// environment variables and command line flags (bound in internal/cli).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"igsim-core/recomb"
	"igsim-core/simerr"
)

// EnvPrefix is the prefix of environment overrides: genes.v -> IGSIM_GENES_V.
const EnvPrefix = "IGSIM"

// GenesConfig lists the FASTA files of each gene category.
type GenesConfig struct {
	V string `mapstructure:"v" yaml:"v"`
	D string `mapstructure:"d" yaml:"d"`
	J string `mapstructure:"j" yaml:"j"`
}

// RepertoireConfig sets the target sizes of the two phases. The base phase
// draws multiplicities with rate base_size/mutated_size, the mutated phase with
// rate (base antibodies)/final_size.
type RepertoireConfig struct {
	BaseSize    int `mapstructure:"base_size" yaml:"base_size"`
	MutatedSize int `mapstructure:"mutated_size" yaml:"mutated_size"`
	FinalSize   int `mapstructure:"final_size" yaml:"final_size"`
}

type RemovingConfig struct {
	MaxVEnd   int `mapstructure:"max_v_end" yaml:"max_v_end"`
	MaxDStart int `mapstructure:"max_d_start" yaml:"max_d_start"`
	MaxDEnd   int `mapstructure:"max_d_end" yaml:"max_d_end"`
	MaxJStart int `mapstructure:"max_j_start" yaml:"max_j_start"`
}

type PInsertionConfig struct {
	MaxLen int `mapstructure:"max_len" yaml:"max_len"`
}

type NInsertionConfig struct {
	MinLen int `mapstructure:"min_len" yaml:"min_len"`
	MaxLen int `mapstructure:"max_len" yaml:"max_len"`
}

// CDRConfig positions CDR1/CDR2 inside V and CDR3 around the V-J junction.
type CDRConfig struct {
	CDR1Start int `mapstructure:"cdr1_start" yaml:"cdr1_start"`
	CDR1End   int `mapstructure:"cdr1_end" yaml:"cdr1_end"`
	CDR2Start int `mapstructure:"cdr2_start" yaml:"cdr2_start"`
	CDR2End   int `mapstructure:"cdr2_end" yaml:"cdr2_end"`
	CDR3VTail int `mapstructure:"cdr3_v_tail" yaml:"cdr3_v_tail"`
	CDR3JHead int `mapstructure:"cdr3_j_head" yaml:"cdr3_j_head"`
}

type PatternSHMConfig struct {
	Min              int     `mapstructure:"min" yaml:"min"`
	Max              int     `mapstructure:"max" yaml:"max"`
	SubstitutionProb float64 `mapstructure:"substitution_prob" yaml:"substitution_prob"`
}

type CDRSHMConfig struct {
	Min    int     `mapstructure:"min" yaml:"min"`
	Max    int     `mapstructure:"max" yaml:"max"`
	FRProb float64 `mapstructure:"fr_prob" yaml:"fr_prob"`
}

// OutputConfig: "-" writes to stdout, "" skips the phase.
type OutputConfig struct {
	Format      string `mapstructure:"format" yaml:"format"`
	BaseFile    string `mapstructure:"base_file" yaml:"base_file"`
	MutatedFile string `mapstructure:"mutated_file" yaml:"mutated_file"`
	Header      bool   `mapstructure:"header" yaml:"header"`
	Sort        bool   `mapstructure:"sort" yaml:"sort"`
	Pretty      bool   `mapstructure:"pretty" yaml:"pretty"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Quiet bool   `mapstructure:"quiet" yaml:"quiet"`
}

// Params is the root-level settings struct.
type Params struct {
	Chain   string `mapstructure:"chain" yaml:"chain"`
	Seed    uint64 `mapstructure:"seed" yaml:"seed"`
	Threads int    `mapstructure:"threads" yaml:"threads"`

	Genes       GenesConfig      `mapstructure:"genes" yaml:"genes"`
	Repertoire  RepertoireConfig `mapstructure:"repertoire" yaml:"repertoire"`
	Removing    RemovingConfig   `mapstructure:"removing" yaml:"removing"`
	PInsertion  PInsertionConfig `mapstructure:"p_insertion" yaml:"p_insertion"`
	NInsertion  NInsertionConfig `mapstructure:"n_insertion" yaml:"n_insertion"`
	CDR         CDRConfig        `mapstructure:"cdr" yaml:"cdr"`
	PatternSHM  PatternSHMConfig `mapstructure:"pattern_shm" yaml:"pattern_shm"`
	CDRSHM      CDRSHMConfig     `mapstructure:"cdr_shm" yaml:"cdr_shm"`
	Output      OutputConfig     `mapstructure:"output" yaml:"output"`
	MetricsFile string           `mapstructure:"metrics_file" yaml:"metrics_file"`
	Log         LogConfig        `mapstructure:"log" yaml:"log"`
}

// Defaults returns the built-in parameters.
func Defaults() Params {
	return Params{
		Chain:   "heavy",
		Seed:    1,
		Threads: 1,
		Repertoire: RepertoireConfig{
			BaseSize:    100,
			MutatedSize: 1000,
			FinalSize:   5000,
		},
		Removing:   RemovingConfig{MaxVEnd: 5, MaxDStart: 5, MaxDEnd: 5, MaxJStart: 5},
		PInsertion: PInsertionConfig{MaxLen: 3},
		NInsertion: NInsertionConfig{MinLen: 0, MaxLen: 10},
		CDR: CDRConfig{
			CDR1Start: 78, CDR1End: 114,
			CDR2Start: 165, CDR2End: 195,
			CDR3VTail: 9, CDR3JHead: 12,
		},
		PatternSHM: PatternSHMConfig{Min: 0, Max: 5, SubstitutionProb: 0.7},
		CDRSHM:     CDRSHMConfig{Min: 0, Max: 5, FRProb: 0.2},
		Output:     OutputConfig{Format: "text", MutatedFile: "-"},
		Log:        LogConfig{Level: "info"},
	}
}

// New returns a viper instance carrying the defaults and the environment
// overrides. Callers bind flags and read a config file on top of it.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v, "", Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key so AutomaticEnv and Unmarshal see it.
func setDefaults(v *viper.Viper, prefix string, p Params) {
	var m map[string]any
	b, _ := yaml.Marshal(p)
	_ = yaml.Unmarshal(b, &m)
	flatten(v, prefix, m)
}

func flatten(v *viper.Viper, prefix string, m map[string]any) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			flatten(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// ReadFile merges a YAML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config file %s: %v: %w", path, err, simerr.ErrConfiguration)
	}
	return nil
}

// Decode unmarshals v without validating it.
func Decode(v *viper.Viper) (Params, error) {
	var p Params
	if err := v.Unmarshal(&p); err != nil {
		return p, fmt.Errorf("decode config: %v: %w", err, simerr.ErrConfiguration)
	}
	p.Chain = strings.ToLower(strings.TrimSpace(p.Chain))
	p.Output.Format = strings.ToLower(strings.TrimSpace(p.Output.Format))
	return p, nil
}

// Load decodes and validates v.
func Load(v *viper.Viper) (Params, error) {
	p, err := Decode(v)
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

// ChainKind parses the chain name.
func (p Params) ChainKind() (recomb.Chain, error) {
	return recomb.ParseChain(p.Chain)
}

// Validate checks cross-field constraints. All violations are reported.
func (p Params) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	chain, err := p.ChainKind()
	if err != nil {
		errs = append(errs, err)
	}
	if p.Genes.V == "" {
		bad("genes.v is required")
	}
	if p.Genes.J == "" {
		bad("genes.j is required")
	}
	if err == nil && chain == recomb.Heavy && p.Genes.D == "" {
		bad("genes.d is required for the heavy chain")
	}
	if p.Threads < 0 {
		bad("threads=%d must be >= 0", p.Threads)
	}

	r := p.Repertoire
	if r.BaseSize <= 0 || r.MutatedSize <= 0 || r.FinalSize <= 0 {
		bad("repertoire sizes base=%d mutated=%d final=%d must be positive", r.BaseSize, r.MutatedSize, r.FinalSize)
	}

	rm := p.Removing
	if rm.MaxVEnd < 0 || rm.MaxDStart < 0 || rm.MaxDEnd < 0 || rm.MaxJStart < 0 {
		bad("removing bounds must be >= 0")
	}
	if p.PInsertion.MaxLen < 0 {
		bad("p_insertion.max_len=%d must be >= 0", p.PInsertion.MaxLen)
	}
	if n := p.NInsertion; n.MinLen < 0 || n.MinLen > n.MaxLen {
		bad("n_insertion range [%d, %d] is invalid", n.MinLen, n.MaxLen)
	}

	c := p.CDR
	if c.CDR1Start < 0 || c.CDR1Start > c.CDR1End || c.CDR2Start > c.CDR2End || c.CDR2Start < c.CDR1End {
		bad("cdr ranges CDR1 %d-%d CDR2 %d-%d are invalid", c.CDR1Start, c.CDR1End, c.CDR2Start, c.CDR2End)
	}
	if c.CDR3VTail < 0 || c.CDR3JHead < 0 {
		bad("cdr3 offsets must be >= 0")
	}

	if s := p.PatternSHM; s.Min < 0 || s.Min > s.Max {
		bad("pattern_shm range [%d, %d] is invalid", s.Min, s.Max)
	}
	if pr := p.PatternSHM.SubstitutionProb; pr < 0 || pr > 1 {
		bad("pattern_shm.substitution_prob=%g must be within [0, 1]", pr)
	}
	if s := p.CDRSHM; s.Min < 0 || s.Min > s.Max {
		bad("cdr_shm range [%d, %d] is invalid", s.Min, s.Max)
	}
	if pr := p.CDRSHM.FRProb; pr < 0 || pr > 1 {
		bad("cdr_shm.fr_prob=%g must be within [0, 1]", pr)
	}

	switch p.Output.Format {
	case "text", "json", "jsonl", "fasta":
	default:
		bad("output.format %q: want text, json, jsonl or fasta", p.Output.Format)
	}
	if p.Output.BaseFile == "-" && p.Output.MutatedFile == "-" {
		bad("output.base_file and output.mutated_file cannot both be stdout")
	}
	switch strings.ToLower(p.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		bad("log.level %q: want debug, info, warn or error", p.Log.Level)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", simerr.ErrConfiguration, errors.Join(errs...))
}

// YAML renders the resolved parameters.
func (p Params) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}
