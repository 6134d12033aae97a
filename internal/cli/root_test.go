package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igsim/internal/config"
)

func execute(t *testing.T, args ...string) (config.Params, Options, string, error) {
	t.Helper()
	v := config.New()
	var got Options
	ran := false
	cmd, err := NewRootCommand(v, func(_ context.Context, o Options) error {
		got, ran = o, true
		return nil
	})
	require.NoError(t, err)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	if err != nil || !ran {
		return config.Params{}, got, out.String(), err
	}
	p, derr := config.Decode(v)
	require.NoError(t, derr)
	return p, got, out.String(), nil
}

func TestFlagsBindToConfigKeys(t *testing.T) {
	p, opts, _, err := execute(t,
		"--chain", "light", "--seed", "42", "-t", "3",
		"--v-genes", "v.fa", "--j-genes", "j.fa",
		"--base-size", "10", "--max-n-len", "4",
		"--pattern-shm-prob", "0.25", "--cdr-shm-fr-prob", "0.9",
		"-o", "jsonl", "--sort", "--pretty", "--mutated-out", "out.jsonl",
		"--print-config", "-c", "cfg.yaml",
	)
	require.NoError(t, err)
	assert.Equal(t, Options{ConfigFile: "cfg.yaml", PrintConfig: true}, opts)
	assert.Equal(t, "light", p.Chain)
	assert.Equal(t, uint64(42), p.Seed)
	assert.Equal(t, 3, p.Threads)
	assert.Equal(t, "v.fa", p.Genes.V)
	assert.Equal(t, 10, p.Repertoire.BaseSize)
	assert.Equal(t, 4, p.NInsertion.MaxLen)
	assert.InDelta(t, 0.25, p.PatternSHM.SubstitutionProb, 1e-12)
	assert.InDelta(t, 0.9, p.CDRSHM.FRProb, 1e-12)
	assert.Equal(t, "jsonl", p.Output.Format)
	assert.True(t, p.Output.Sort)
	assert.True(t, p.Output.Pretty)
	assert.Equal(t, "out.jsonl", p.Output.MutatedFile)
	// untouched flags fall back to defaults
	assert.Equal(t, config.Defaults().CDR, p.CDR)
}

func TestEveryBindingIsDeclared(t *testing.T) {
	cmd, err := NewRootCommand(config.New(), func(context.Context, Options) error { return nil })
	require.NoError(t, err)
	for name := range bindings {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestUsageErrors(t *testing.T) {
	_, _, _, err := execute(t, "--no-such-flag")
	assert.True(t, IsUsage(err), "%v", err)

	_, _, _, err = execute(t, "--seed", "minus-one")
	assert.True(t, IsUsage(err), "%v", err)

	_, _, _, err = execute(t, "stray")
	assert.True(t, IsUsage(err), "%v", err)
}

func TestVersionAndHelp(t *testing.T) {
	_, _, out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "igsim version dev\n", out)

	_, _, out, err = execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--v-genes")
	assert.Contains(t, out, "--print-config")
}
