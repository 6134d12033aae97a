// internal/writers/cluster.go
package writers

import (
	"encoding/json"
	"io"

	"igsim/internal/jsonlutil"
	"igsim/internal/output"
	"igsim/internal/pretty"
	"igsim/pkg/api"
)

func init() {
	RegisterCluster(output.FormatText, func(w io.Writer, b Batch) error {
		return output.WriteTextWithRenderer(w, b.Clusters, b.Header, renderer(b.Pretty))
	})
	RegisterCluster(output.FormatJSON, func(w io.Writer, b Batch) error {
		return output.WriteJSON(w, b.Clusters)
	})
	RegisterCluster(output.FormatFASTA, func(w io.Writer, b Batch) error {
		return output.WriteFASTA(w, b.Clusters)
	})
	RegisterCluster(output.FormatJSONL, func(w io.Writer, b Batch) error {
		enc := json.NewEncoder(w)
		for _, c := range b.Clusters {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderer(on bool) output.Renderer {
	if !on {
		return nil
	}
	return pretty.Render
}

// StartClusterJSONLWriter streams each cluster as one JSON line (v1).
func StartClusterJSONLWriter(out io.Writer, bufSize int) (chan<- api.ClusterV1, <-chan error) {
	return jsonlutil.Start[api.ClusterV1](out, bufSize,
		func(enc *json.Encoder, c api.ClusterV1) error { return enc.Encode(c) },
		IsBrokenPipe,
	)
}

// StartClusterWriter spins up a writer goroutine for clusters. Text, FASTA
// and JSONL stream unless sort is set; JSON and sorted output are buffered
// and dispatched through the registry. prettyMode adds a junction diagram
// under each text row.
func StartClusterWriter(out io.Writer, format string, sort, header, prettyMode bool, bufSize int) (chan<- api.ClusterV1, <-chan error) {
	if format == output.FormatJSONL && !sort {
		return StartClusterJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.ClusterV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch {
		case !sort && format == output.FormatText:
			err = output.StreamTextWithRenderer(out, in, header, renderer(prettyMode))
		case !sort && format == output.FormatFASTA:
			err = output.StreamFASTA(out, in)
		default:
			var buf []api.ClusterV1
			for c := range in {
				buf = append(buf, c)
			}
			if sort {
				output.SortClusters(buf)
			}
			err = WriteClusters(format, out, Batch{Clusters: buf, Header: header, Pretty: prettyMode})
		}
		// keep senders unblocked if a streaming writer stopped early
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
