package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records what a simulation run produced. Collectors live on a
// private registry so several runs in one process do not collide.
// All methods are safe on a nil *Metrics.
type Metrics struct {
	Registry *prometheus.Registry

	Recombinations prometheus.Counter
	Clusters       *prometheus.CounterVec
	Antibodies     *prometheus.CounterVec
	Mutations      *prometheus.CounterVec
	Multiplicity   *prometheus.HistogramVec
	PhaseDuration  *prometheus.HistogramVec
}

// New creates a new Metrics instance with all simulator metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Recombinations: f.NewCounter(prometheus.CounterOpts{
			Name: "igsim_recombinations_total",
			Help: "Total number of V(D)J recombinations generated",
		}),
		Clusters: f.NewCounterVec(prometheus.CounterOpts{
			Name: "igsim_clusters_total",
			Help: "Clusters added to a repertoire, by phase",
		}, []string{"phase"}),
		Antibodies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "igsim_antibodies_total",
			Help: "Sum of cluster multiplicities, by phase",
		}, []string{"phase"}),
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "igsim_shm_mutations_total",
			Help: "Substitutions applied by somatic hypermutation, by strategy",
		}, []string{"strategy"}),
		Multiplicity: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "igsim_cluster_multiplicity",
			Help:    "Distribution of cluster multiplicities, by phase",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		}, []string{"phase"}),
		PhaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "igsim_phase_duration_seconds",
			Help:    "Wall time of each repertoire phase",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"phase"}),
	}
}

// IncrementRecombinations records one generated recombination.
func (m *Metrics) IncrementRecombinations() {
	if m == nil {
		return
	}
	m.Recombinations.Inc()
}

// ObserveCluster records a cluster added to the phase's repertoire.
func (m *Metrics) ObserveCluster(phase string, multiplicity int) {
	if m == nil {
		return
	}
	m.Clusters.WithLabelValues(phase).Inc()
	m.Antibodies.WithLabelValues(phase).Add(float64(multiplicity))
	m.Multiplicity.WithLabelValues(phase).Observe(float64(multiplicity))
}

// AddMutations records n substitutions made by strategy.
func (m *Metrics) AddMutations(strategy string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Mutations.WithLabelValues(strategy).Add(float64(n))
}

// ObservePhase records the duration of a phase.
// Call with time.Now() at the start of the phase.
func (m *Metrics) ObservePhase(phase string, start time.Time) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// WriteFile dumps the registry in the Prometheus text format
// (node_exporter textfile collector compatible).
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
