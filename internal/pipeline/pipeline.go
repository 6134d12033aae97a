// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"igsim-core/genedb"
	"igsim-core/junction"
	"igsim-core/multiplicity"
	"igsim-core/recomb"
	"igsim-core/region"
	"igsim-core/repertoire"
	"igsim-core/rng"
	"igsim-core/shm"

	"igsim/internal/config"
	"igsim/internal/logging"
	"igsim/internal/metrics"
)

// Phase names used in logs, metrics and cluster IDs.
const (
	PhaseBase    = "base"
	PhaseMutated = "mutated"
)

// mutSalt separates the mutated-phase streams from the base-phase streams.
const mutSalt = 0x9e3779b97f4a7c15

// Simulator runs the two-phase repertoire simulation.
//
// Every base member i draws from rng.New(seed, i) and every mutated copy k
// (global copy ordinal) from rng.New(seed^mutSalt, k), so results do not
// depend on the number of worker goroutines.
type Simulator struct {
	chain   recomb.Chain
	seed    uint64
	threads int

	baseSize, mutatedSize, finalSize int

	recombinator junction.Recombinator
	remover      junction.ExonucleaseRemover
	pCreator     junction.PNucleotidesCreator
	nCreator     junction.NNucleotidesCreator
	labeler      region.Labeler
	shm          shm.Strategy

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Simulator.
type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Simulator) { s.metrics = m }
}

// WithThreads overrides p.Threads; n <= 0 means runtime.NumCPU().
func WithThreads(n int) Option {
	return func(s *Simulator) { s.threads = n }
}

// New wires the junction, labeling, SHM and multiplicity strategies from p.
func New(p config.Params, db *genedb.Database, opts ...Option) (*Simulator, error) {
	chain, err := p.ChainKind()
	if err != nil {
		return nil, err
	}
	rc, err := junction.NewUniformRecombinator(db, chain)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		chain:        chain,
		seed:         p.Seed,
		threads:      p.Threads,
		baseSize:     p.Repertoire.BaseSize,
		mutatedSize:  p.Repertoire.MutatedSize,
		finalSize:    p.Repertoire.FinalSize,
		recombinator: rc,
		remover: junction.ExonucleaseRemover{Strategy: junction.UniformRemovingStrategy{
			MaxVEnd:   p.Removing.MaxVEnd,
			MaxDStart: p.Removing.MaxDStart,
			MaxDEnd:   p.Removing.MaxDEnd,
			MaxJStart: p.Removing.MaxJStart,
		}},
		pCreator: junction.PNucleotidesCreator{Strategy: junction.UniformPInsertionStrategy{MaxLen: p.PInsertion.MaxLen}},
		nCreator: junction.NNucleotidesCreator{Strategy: junction.UniformNInsertionStrategy{
			MinLen: p.NInsertion.MinLen,
			MaxLen: p.NInsertion.MaxLen,
		}},
		labeler: region.Labeler{Strategy: region.FixedOffsetStrategy{
			CDR1:      region.Range{Start: p.CDR.CDR1Start, End: p.CDR.CDR1End},
			CDR2:      region.Range{Start: p.CDR.CDR2Start, End: p.CDR.CDR2End},
			CDR3VTail: p.CDR.CDR3VTail,
			CDR3JHead: p.CDR.CDR3JHead,
		}},
		shm: shm.Composite{
			shm.RgywWrcyStrategy{
				Count:            shm.Bounds{Min: p.PatternSHM.Min, Max: p.PatternSHM.Max},
				SubstitutionProb: p.PatternSHM.SubstitutionProb,
			},
			shm.CDRBasedRandomStrategy{
				Count:  shm.Bounds{Min: p.CDRSHM.Min, Max: p.CDRSHM.Max},
				FRProb: p.CDRSHM.FRProb,
			},
		},
		logger: logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.threads <= 0 {
		s.threads = runtime.NumCPU()
	}
	return s, nil
}

// Result holds both repertoires of a run.
type Result struct {
	Base    *repertoire.Repertoire
	Mutated *repertoire.Repertoire
}

// Simulate runs the base phase and then the mutated phase.
func (s *Simulator) Simulate(ctx context.Context) (Result, error) {
	base, err := s.CreateBaseRepertoire(ctx)
	if err != nil {
		return Result{}, err
	}
	mutated, err := s.CreateMutatedRepertoire(ctx, base)
	if err != nil {
		return Result{}, err
	}
	return Result{Base: base, Mutated: mutated}, nil
}

// CreateBaseRepertoire generates baseSize naive clusters: recombine, trim,
// add P and N nucleotides, label CDRs and draw a multiplicity with rate
// base_size/mutated_size.
func (s *Simulator) CreateBaseRepertoire(ctx context.Context) (*repertoire.Repertoire, error) {
	start := time.Now()
	lambda, err := multiplicity.Lambda(s.baseSize, s.mutatedSize)
	if err != nil {
		return nil, err
	}
	mult, err := multiplicity.NewExponential(lambda)
	if err != nil {
		return nil, err
	}
	s.logger.Info("creating base repertoire", "chain", s.chain, "size", s.baseSize, "lambda", lambda, "threads", s.threads)

	clusters, err := generate(ctx, s.threads, s.baseSize, func(i int) (repertoire.Cluster, error) {
		return s.baseMember(rng.New(s.seed, uint64(i)), mult)
	})
	if err != nil {
		return nil, fmt.Errorf("base repertoire: %w", err)
	}
	rep, err := s.collect(PhaseBase, clusters)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePhase(PhaseBase, start)
	s.logger.Info(fmt.Sprintf("Base repertoire consists of %d sequences with total multiplicities %d", rep.Size(), rep.TotalCount()),
		"phase", PhaseBase, "clusters", rep.Size(), "antibodies", rep.TotalCount())
	return rep, nil
}

func (s *Simulator) baseMember(r rng.Rand, mult multiplicity.Creator) (repertoire.Cluster, error) {
	rec, err := s.recombinator.CreateRecombination(r)
	if err != nil {
		return repertoire.Cluster{}, err
	}
	if rec, err = s.remover.CreateRemovingSettings(r, rec); err != nil {
		return repertoire.Cluster{}, err
	}
	if rec, err = s.pCreator.CreatePNucleotides(r, rec); err != nil {
		return repertoire.Cluster{}, err
	}
	if rec, err = s.nCreator.CreateNNucleotides(r, rec); err != nil {
		return repertoire.Cluster{}, err
	}
	s.metrics.IncrementRecombinations()
	vr, err := s.labeler.LabelCDRs(region.New(rec))
	if err != nil {
		return repertoire.Cluster{}, fmt.Errorf("%s: %w", rec.VGene().Name, err)
	}
	return repertoire.Cluster{Region: vr, Multiplicity: mult.AssignMultiplicity(r, vr)}, nil
}

// CreateMutatedRepertoire expands every base cluster into multiplicity
// independent copies. Each copy is cloned, hypermutated and given a fresh
// multiplicity with rate base.TotalCount()/final_size.
func (s *Simulator) CreateMutatedRepertoire(ctx context.Context, base *repertoire.Repertoire) (*repertoire.Repertoire, error) {
	start := time.Now()
	lambda, err := multiplicity.Lambda(base.TotalCount(), s.finalSize)
	if err != nil {
		return nil, err
	}
	mult, err := multiplicity.NewExponential(lambda)
	if err != nil {
		return nil, err
	}

	// copy k belongs to parents[k]
	parents := make([]*region.VariableRegion, 0, base.TotalCount())
	for _, c := range base.All() {
		for range c.Multiplicity {
			parents = append(parents, c.Region)
		}
	}
	s.logger.Info("creating mutated repertoire", "copies", len(parents), "lambda", lambda, "threads", s.threads)

	creator := shm.Creator{Strategy: s.shm, Observe: s.metrics.AddMutations}
	clusters, err := generate(ctx, s.threads, len(parents), func(k int) (repertoire.Cluster, error) {
		r := rng.New(s.seed^mutSalt, uint64(k))
		vr, err := creator.CreateSHM(r, parents[k].Clone())
		if err != nil {
			return repertoire.Cluster{}, err
		}
		return repertoire.Cluster{Region: vr, Multiplicity: mult.AssignMultiplicity(r, vr)}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("mutated repertoire: %w", err)
	}
	rep, err := s.collect(PhaseMutated, clusters)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePhase(PhaseMutated, start)
	s.logger.Info(fmt.Sprintf("Mutated repertoire consists of %d sequences with total multiplicities %d", rep.Size(), rep.TotalCount()),
		"phase", PhaseMutated, "clusters", rep.Size(), "antibodies", rep.TotalCount())
	return rep, nil
}

func (s *Simulator) collect(phase string, clusters []repertoire.Cluster) (*repertoire.Repertoire, error) {
	rep := repertoire.New(len(clusters))
	for _, c := range clusters {
		if err := rep.Add(c); err != nil {
			return nil, fmt.Errorf("%s repertoire: %w", phase, err)
		}
		s.metrics.ObserveCluster(phase, c.Multiplicity)
	}
	return rep, nil
}

// generate fills n slots with member(i) using up to threads workers. Worker w
// owns slots w, w+threads, ...; the first error cancels the others.
func generate(ctx context.Context, threads, n int, member func(i int) (repertoire.Cluster, error)) ([]repertoire.Cluster, error) {
	out := make([]repertoire.Cluster, n)
	if threads < 1 {
		threads = 1
	}
	threads = min(threads, max(n, 1))

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for i := w; i < n; i += threads {
				if err := gctx.Err(); err != nil {
					return err
				}
				c, err := member(i)
				if err != nil {
					return err
				}
				out[i] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
