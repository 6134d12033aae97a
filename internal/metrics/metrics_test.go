package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.IncrementRecombinations()
	m.IncrementRecombinations()
	m.ObserveCluster("base", 3)
	m.ObserveCluster("base", 4)
	m.ObserveCluster("mutated", 1)
	m.AddMutations("rgyw_wrcy", 5)
	m.AddMutations("rgyw_wrcy", 0)
	m.ObservePhase("base", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Recombinations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Clusters.WithLabelValues("base")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Antibodies.WithLabelValues("base")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Mutations.WithLabelValues("rgyw_wrcy")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Multiplicity))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementRecombinations()
		m.ObserveCluster("base", 1)
		m.AddMutations("x", 1)
		m.ObservePhase("base", time.Now())
	})
}

func TestMetrics_WriteFile(t *testing.T) {
	m := New()
	m.ObserveCluster("mutated", 2)
	path := filepath.Join(t.TempDir(), "igsim.prom")
	require.NoError(t, m.WriteFile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `igsim_clusters_total{phase="mutated"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.IncrementRecombinations()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Recombinations))
}
