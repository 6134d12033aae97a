package output

import (
	"io"

	"igsim/internal/jsonutil"
	"igsim/pkg/api"
)

// WriteJSON writes a single JSON array of v1 clusters. An empty list is [].
func WriteJSON(w io.Writer, list []api.ClusterV1) error {
	if list == nil {
		list = []api.ClusterV1{}
	}
	return jsonutil.EncodePretty(w, list)
}
