package output

import (
	"fmt"
	"io"

	"igsim/pkg/api"
)

// Renderer draws an optional block after each TSV row.
type Renderer func(api.ClusterV1) string

func writeRow(w io.Writer, c api.ClusterV1, render Renderer) error {
	if _, err := fmt.Fprintln(w, FormatRowTSV(c)); err != nil {
		return err
	}
	if render != nil {
		if _, err := io.WriteString(w, render(c)); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes clusters as a tab-delimited table.
func WriteText(w io.Writer, list []api.ClusterV1, header bool) error {
	return WriteTextWithRenderer(w, list, header, nil)
}

func WriteTextWithRenderer(w io.Writer, list []api.ClusterV1, header bool, render Renderer) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, c := range list {
		if err := writeRow(w, c, render); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText over a channel.
func StreamText(w io.Writer, in <-chan api.ClusterV1, header bool) error {
	return StreamTextWithRenderer(w, in, header, nil)
}

func StreamTextWithRenderer(w io.Writer, in <-chan api.ClusterV1, header bool, render Renderer) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for c := range in {
		if err := writeRow(w, c, render); err != nil {
			return err
		}
	}
	return nil
}
