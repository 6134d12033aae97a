// internal/app/write.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"igsim-core/repertoire"

	"igsim/internal/config"
	"igsim/internal/output"
	"igsim/internal/writers"
)

// target is one repertoire to report and where it goes.
type target struct {
	phase string
	path  string // "-" stdout, "" skip
	rep   *repertoire.Repertoire
}

func (t target) write(ctx context.Context, stdout io.Writer, o config.OutputConfig) error {
	switch t.path {
	case "":
		return nil
	case "-":
		return stream(ctx, stdout, t, o)
	}

	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("%s repertoire: %w", t.phase, err)
	}
	bw := bufio.NewWriter(f)
	err = stream(ctx, bw, t, o)
	if e := bw.Flush(); err == nil {
		err = e
	}
	if e := f.Close(); err == nil {
		err = e
	}
	if err != nil {
		return fmt.Errorf("%s repertoire: %w", t.phase, err)
	}
	return nil
}

// stream feeds t.rep to a writer goroutine in insertion order.
func stream(ctx context.Context, w io.Writer, t target, o config.OutputConfig) error {
	in, done := writers.StartClusterWriter(w, o.Format, o.Sort, o.Header, o.Pretty, 64)
	var cerr error
	for i, c := range t.rep.All() {
		if cerr = ctx.Err(); cerr != nil {
			break
		}
		in <- output.ToAPICluster(t.phase, i, c)
	}
	close(in)
	if werr := <-done; werr != nil {
		return werr
	}
	return cerr
}
