// Package cli is for command line interactions with igsim.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"igsim/internal/version"
)

// Options are the flags that steer the command itself rather than the
// simulation parameters.
type Options struct {
	ConfigFile  string
	PrintConfig bool
}

// UsageError marks bad command line input (exit code 2).
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// IsUsage reports whether err came from command line parsing.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// NewRootCommand builds the igsim command. Every simulation flag is bound to
// its key in v; run receives the command-only options.
func NewRootCommand(v *viper.Viper, run func(ctx context.Context, opts Options) error) (*cobra.Command, error) {
	var opts Options
	cmd := &cobra.Command{
		Use:   "igsim",
		Short: "Simulate immunoglobulin repertoires: V(D)J recombination, then somatic hypermutation",
		Long: `igsim builds a naive repertoire of heavy (VDJ) or light (VJ) chain
variable regions from germline gene FASTA files, then expands every antibody
and mutates each copy independently.

Parameters come from built-in defaults, an optional YAML file (--config),
IGSIM_* environment variables (e.g. IGSIM_GENES_V) and flags, in that order.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UsageError{fmt.Errorf("unexpected arguments %q", args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate("igsim version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{err}
	})

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	fs.BoolVar(&opts.PrintConfig, "print-config", false, "print the resolved configuration as YAML and exit")
	registerFlags(fs)
	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}
	return cmd, nil
}
