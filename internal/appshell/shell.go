// Package appshell runs a RunContext-style entry point as a process.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main wires SIGINT/SIGTERM to context cancellation, runs run with the
// process arguments and exits with its code. A run that was interrupted but
// reported success still exits 130.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(RunWithSignals(context.Background(), os.Args[1:], os.Stdout, os.Stderr, run))
}

// RunWithSignals is Main without the os.Exit.
func RunWithSignals(parent context.Context, argv []string, stdout, stderr io.Writer, run func(context.Context, []string, io.Writer, io.Writer) int) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
