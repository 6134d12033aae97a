// Package jsonutil holds the indented JSON encoding shared by the array
// writers.
package jsonutil

import (
	"encoding/json"
	"io"
)

const indent = "  "

// EncodePretty writes v as indented JSON to w, followed by a newline.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}
