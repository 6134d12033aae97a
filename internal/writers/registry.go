// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"igsim/pkg/api"
)

// Batch is the payload of a buffered cluster writer.
type Batch struct {
	Clusters []api.ClusterV1
	Header   bool
	Pretty   bool // text only: diagram under each row
}

// ClusterWriters maps a format name to its buffered writer.
// Formats register themselves in init().
var ClusterWriters = map[string]func(w io.Writer, b Batch) error{}

// RegisterCluster adds or replaces (last wins) the writer for format.
func RegisterCluster(format string, fn func(io.Writer, Batch) error) { ClusterWriters[format] = fn }

// WriteClusters dispatches b to the writer registered for format.
func WriteClusters(format string, w io.Writer, b Batch) error {
	fn, ok := ClusterWriters[format]
	if !ok {
		return fmt.Errorf("unknown cluster format %q (no writer registered)", format)
	}
	return fn(w, b)
}

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(ClusterWriters))
	for f := range ClusterWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
