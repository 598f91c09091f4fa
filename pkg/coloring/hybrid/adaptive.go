package hybrid

import (
	"context"
	"time"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/exact"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	"github.com/matzehuels/chromatic/pkg/coloring/local"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Strategy names a route the adaptive engine can take.
type Strategy string

const (
	StrategyExact                Strategy = coloring.AlgorithmExact
	StrategyDSaturAnnealing      Strategy = coloring.AlgorithmHybridDSSA
	StrategyDSaturTabu           Strategy = coloring.AlgorithmHybridDSTabu
	StrategyWelshPowellAnnealing Strategy = coloring.AlgorithmHybridWPSA
)

// Policy defaults.
const (
	DefaultExactMaxVertices = 18
	DefaultDenseThreshold   = 0.5
	DefaultSparseThreshold  = 0.1
	DefaultExactTimeout     = 5 * time.Second
)

// Policy holds the adaptive routing thresholds. Zero fields take defaults.
type Policy struct {
	// ExactMaxVertices routes graphs with fewer vertices to exact search.
	ExactMaxVertices int `toml:"exact_max_vertices" yaml:"exact_max_vertices" json:"exact_max_vertices"`
	// DenseThreshold is the density at or above which DSatur+annealing runs.
	DenseThreshold float64 `toml:"dense_threshold" yaml:"dense_threshold" json:"dense_threshold"`
	// SparseThreshold is the density below which DSatur+tabu runs.
	SparseThreshold float64 `toml:"sparse_threshold" yaml:"sparse_threshold" json:"sparse_threshold"`
	// MaxReductions caps color-reduction attempts of the pipeline routes.
	MaxReductions int `toml:"max_reductions" yaml:"max_reductions" json:"max_reductions"`
	// ExactTimeout bounds the exact route.
	ExactTimeout time.Duration `toml:"-" yaml:"-" json:"exact_timeout"`
}

// DefaultPolicy returns the default routing policy.
func DefaultPolicy() Policy {
	return Policy{}.WithDefaults()
}

// WithDefaults returns a copy with zero fields replaced by defaults.
func (p Policy) WithDefaults() Policy {
	if p.ExactMaxVertices == 0 {
		p.ExactMaxVertices = DefaultExactMaxVertices
	}
	if p.DenseThreshold == 0 {
		p.DenseThreshold = DefaultDenseThreshold
	}
	if p.SparseThreshold == 0 {
		p.SparseThreshold = DefaultSparseThreshold
	}
	if p.ExactTimeout == 0 {
		p.ExactTimeout = DefaultExactTimeout
	}
	return p
}

// Validate checks the policy after defaults are applied.
func (p Policy) Validate() error {
	p = p.WithDefaults()
	switch {
	case p.ExactMaxVertices < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "exact_max_vertices must not be negative, got %d", p.ExactMaxVertices)
	case p.SparseThreshold < 0 || p.DenseThreshold > 1 || p.SparseThreshold > p.DenseThreshold:
		return cerrors.New(cerrors.ErrCodeConfiguration,
			"thresholds must satisfy 0 <= sparse <= dense <= 1, got sparse=%v dense=%v", p.SparseThreshold, p.DenseThreshold)
	case p.MaxReductions < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "max_reductions must not be negative, got %d", p.MaxReductions)
	case p.ExactTimeout < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "exact timeout must not be negative, got %v", p.ExactTimeout)
	}
	return nil
}

// Choose returns the strategy the policy selects for g.
func (p Policy) Choose(g *graph.Graph) Strategy {
	p = p.WithDefaults()
	d := g.Density()
	switch {
	case g.N() < p.ExactMaxVertices:
		return StrategyExact
	case d >= p.DenseThreshold:
		return StrategyDSaturAnnealing
	case d < p.SparseThreshold:
		return StrategyDSaturTabu
	default:
		return StrategyWelshPowellAnnealing
	}
}

// Adaptive picks an engine from graph features and runs it.
type Adaptive struct {
	Policy Policy
	// Seed seeds the local-search routes when their templates carry none.
	Seed int64
	// Annealing and Tabu are templates for the refinement step.
	Annealing local.Annealing
	Tabu      local.Tabu
}

func (Adaptive) Name() string { return coloring.AlgorithmAdaptive }

// Pipeline returns the pipeline a non-exact strategy runs.
func (a Adaptive) Pipeline(s Strategy) Pipeline {
	sa, ts := a.Annealing, a.Tabu
	if sa.Seed == 0 && sa.Rand == nil {
		sa.Seed = a.Seed
	}
	if ts.Seed == 0 && ts.Rand == nil {
		ts.Seed = a.Seed
	}
	p := Pipeline{MaxReductions: a.Policy.MaxReductions}
	switch s {
	case StrategyDSaturTabu:
		p.Seed, p.Refine = greedy.DSatur{}, ts
	case StrategyWelshPowellAnnealing:
		p.Seed, p.Refine = greedy.WelshPowell{}, sa
	default:
		p.Seed, p.Refine = greedy.DSatur{}, sa
	}
	return p
}

// Color routes g to a strategy and returns its result. The result's
// Algorithm is "adaptive"; Stats["strategy"] names the route taken.
func (a Adaptive) Color(ctx context.Context, g *graph.Graph) (*coloring.Result, error) {
	if err := a.Policy.Validate(); err != nil {
		return nil, err
	}
	policy := a.Policy.WithDefaults()
	strategy := policy.Choose(g)

	var (
		res      *coloring.Result
		err      error
		fallback bool
	)
	if strategy == StrategyExact {
		res, fallback, err = a.exact(ctx, g, policy)
	} else {
		res, err = a.Pipeline(strategy).Color(ctx, g)
	}
	if err != nil {
		return nil, err
	}

	res.Algorithm = coloring.AlgorithmAdaptive
	res.SetStat("strategy", string(strategy))
	res.SetStat("fallback", fallback)
	return res, nil
}

func (a Adaptive) exact(ctx context.Context, g *graph.Graph, policy Policy) (*coloring.Result, bool, error) {
	search := exact.Search{
		MaxVertices: max(policy.ExactMaxVertices, g.N()),
		Timeout:     policy.ExactTimeout,
	}
	res, err := search.Color(ctx, g)
	if err != nil {
		return nil, false, err
	}
	if res.Complete {
		return res, false, nil
	}

	ds, err := greedy.DSatur{}.Color(ctx, g)
	if err != nil {
		return nil, false, err
	}
	if ds.Better(res) {
		ds.Complete = false
		ds.LowerBound = res.LowerBound
		ds.Elapsed += res.Elapsed
		return ds, true, nil
	}
	return res, false, nil
}
