package local

import (
	"context"
	"math/rand"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Defaults applied to zero-valued configuration fields.
const (
	DefaultT0            = 10.0
	DefaultAlpha         = 0.99
	DefaultMaxIterations = 100000
	DefaultCoolEvery     = 1
	DefaultSampling      = 1

	// MinTenure is the smallest adaptive base tenure; larger graphs use n/10.
	MinTenure = 7

	// cancelCheckInterval is how many iterations pass between context checks.
	cancelCheckInterval = 256
)

// budget resolves the color budget and the starting coloring of a run.
func budget(g *graph.Graph, k int, initial coloring.Coloring, rng *rand.Rand) (int, coloring.Coloring, error) {
	n := g.N()
	if k < 0 {
		return 0, nil, cerrors.New(cerrors.ErrCodeConfiguration, "color budget must be positive, got %d", k)
	}
	if initial != nil && len(initial) != n {
		return 0, nil, cerrors.New(cerrors.ErrCodeConfiguration,
			"initial coloring has %d entries, graph has %d vertices", len(initial), n)
	}
	if k == 0 {
		seed := greedy.DSaturColoring(g)
		k = max(coloring.ColorsUsed(seed)-1, 1)
		if initial == nil {
			initial = seed
		}
	}
	if initial != nil {
		return k, initial.Fold(k), nil
	}
	c := make(coloring.Coloring, n)
	for v := range c {
		c[v] = rng.Intn(k)
	}
	return k, c, nil
}

func source(r *rand.Rand, seed int64) *rand.Rand {
	if r != nil {
		return r
	}
	return coloring.NewRand(seed)
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func checkIterations(maxIter int) error {
	if maxIter < 0 {
		return cerrors.New(cerrors.ErrCodeConfiguration, "max iterations must be positive, got %d", maxIter)
	}
	return nil
}

// cancelled polls ctx every cancelCheckInterval iterations.
func cancelled(ctx context.Context, iteration int) bool {
	return iteration%cancelCheckInterval == 0 && ctx.Err() != nil
}

// Refine runs annealing with budget k starting from initial folded into k
// colors. It lets orchestrators retarget one configuration across budgets.
func (a Annealing) Refine(ctx context.Context, g *graph.Graph, k int, initial coloring.Coloring) (*coloring.Result, error) {
	if k <= 0 {
		return nil, cerrors.New(cerrors.ErrCodeConfiguration, "color budget must be positive, got %d", k)
	}
	a.K, a.Initial = k, initial
	return a.Color(ctx, g)
}

// Refine runs tabu search with budget k starting from initial folded into
// k colors.
func (t Tabu) Refine(ctx context.Context, g *graph.Graph, k int, initial coloring.Coloring) (*coloring.Result, error) {
	if k <= 0 {
		return nil, cerrors.New(cerrors.ErrCodeConfiguration, "color budget must be positive, got %d", k)
	}
	t.K, t.Initial = k, initial
	return t.Color(ctx, g)
}
