// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"igsim-core/simerr"

	"igsim/internal/cli"
	"igsim/internal/config"
	"igsim/internal/logging"
	"igsim/internal/metrics"
	"igsim/internal/pipeline"
	"igsim/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// RunContext parses argv, runs the simulation and writes the requested
// repertoires. It returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	v := config.New()
	cmd, err := cli.NewRootCommand(v, func(ctx context.Context, opts cli.Options) error {
		if opts.ConfigFile != "" {
			if err := config.ReadFile(v, opts.ConfigFile); err != nil {
				return err
			}
		}
		if opts.PrintConfig {
			p, err := config.Decode(v)
			if err != nil {
				return err
			}
			b, err := p.YAML()
			if err != nil {
				return err
			}
			_, err = outw.Write(b)
			return err
		}
		p, err := config.Load(v)
		if err != nil {
			return err
		}
		return simulate(ctx, p, outw, stderr)
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	cmd.SetArgs(argv)
	cmd.SetOut(outw)
	cmd.SetErr(stderr)

	err = cmd.ExecuteContext(parent)
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) && err == nil {
		err = e
	}

	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case cli.IsUsage(err):
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	case errors.Is(err, simerr.ErrConfiguration):
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitUsage
	default:
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitRuntime
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func simulate(ctx context.Context, p config.Params, stdout io.Writer, stderr io.Writer) error {
	logger, err := logging.New(stderr, p.Log.Level, p.Log.Quiet)
	if err != nil {
		return fmt.Errorf("%v: %w", err, simerr.ErrConfiguration)
	}
	logger = logger.With("run", uuid.NewString())

	db, err := pipeline.LoadDatabase(ctx, p, logger)
	if err != nil {
		return err
	}
	m := metrics.New()
	sim, err := pipeline.New(p, db, pipeline.WithLogger(logger), pipeline.WithMetrics(m))
	if err != nil {
		return err
	}
	res, err := sim.Simulate(ctx)
	if err != nil {
		return err
	}

	targets := []target{
		{phase: pipeline.PhaseBase, path: p.Output.BaseFile, rep: res.Base},
		{phase: pipeline.PhaseMutated, path: p.Output.MutatedFile, rep: res.Mutated},
	}
	for _, t := range targets {
		if err := t.write(ctx, stdout, p.Output); err != nil {
			return err
		}
		if t.path != "" {
			logger.Debug("wrote repertoire", "phase", t.phase, "to", t.path, "format", p.Output.Format)
		}
	}

	if p.MetricsFile != "" {
		if err := m.WriteFile(p.MetricsFile); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		logger.Debug("wrote metrics", "file", p.MetricsFile)
	}
	logger.InfoContext(ctx, "done",
		"base_clusters", res.Base.Size(), "mutated_clusters", res.Mutated.Size(), "antibodies", res.Mutated.TotalCount())
	return nil
}
