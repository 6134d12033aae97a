// Package repertoire holds clusters of identical antibodies.
//
// A repertoire keeps insertion order and never merges clusters, even when two
// of them carry the same sequence.
package repertoire

import (
	"fmt"
	"iter"

	"igsim-core/region"
	"igsim-core/simerr"
)

// Cluster is a variable region together with its copy count.
type Cluster struct {
	Region       *region.VariableRegion
	Multiplicity int
}

type Repertoire struct {
	clusters []Cluster
	total    int
}

// New returns an empty repertoire with room for capacity clusters.
func New(capacity int) *Repertoire {
	return &Repertoire{clusters: make([]Cluster, 0, max(0, capacity))}
}

// Add appends c.
func (r *Repertoire) Add(c Cluster) error {
	if c.Region == nil {
		return fmt.Errorf("cluster without variable region: %w", simerr.ErrConfiguration)
	}
	if c.Multiplicity < 1 {
		return fmt.Errorf("cluster multiplicity %d < 1: %w", c.Multiplicity, simerr.ErrConfiguration)
	}
	r.clusters = append(r.clusters, c)
	r.total += c.Multiplicity
	return nil
}

// All yields (ordinal, cluster) in insertion order.
func (r *Repertoire) All() iter.Seq2[int, Cluster] {
	return func(yield func(int, Cluster) bool) {
		for i, c := range r.clusters {
			if !yield(i, c) {
				return
			}
		}
	}
}

func (r *Repertoire) At(i int) (Cluster, error) {
	if i < 0 || i >= len(r.clusters) {
		return Cluster{}, fmt.Errorf("cluster %d of %d: %w", i, len(r.clusters), simerr.ErrIndex)
	}
	return r.clusters[i], nil
}

// Size is the number of distinct clusters.
func (r *Repertoire) Size() int { return len(r.clusters) }

// TotalCount is the number of antibodies: the sum of multiplicities.
func (r *Repertoire) TotalCount() int { return r.total }

func (r *Repertoire) String() string {
	return fmt.Sprintf("repertoire consists of %d sequences with total multiplicities %d", r.Size(), r.TotalCount())
}
