package hybrid

import (
	"context"
	"time"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/exact"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	"github.com/matzehuels/chromatic/pkg/coloring/local"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Refiner is a local-search engine that can be retargeted at a color budget.
// [local.Annealing] and [local.Tabu] implement it.
type Refiner interface {
	Name() string
	Refine(ctx context.Context, g *graph.Graph, k int, initial coloring.Coloring) (*coloring.Result, error)
}

// Reduction describes one color-reduction attempt of a pipeline run.
type Reduction struct {
	K          int  `json:"k"`
	Success    bool `json:"success"`
	Conflicts  int  `json:"conflicts"`
	Iterations int  `json:"iterations"`
}

// Pipeline is a seed engine followed by iterative color reduction.
type Pipeline struct {
	// Seed produces the starting coloring; nil means DSatur.
	Seed coloring.Colorer
	// Refine attempts each reduced budget; nil means default annealing.
	Refine Refiner
	// MaxReductions caps the number of reduction attempts; 0 means no cap.
	MaxReductions int
}

func (p Pipeline) seed() coloring.Colorer {
	if p.Seed != nil {
		return p.Seed
	}
	return greedy.DSatur{}
}

func (p Pipeline) refiner() Refiner {
	if p.Refine != nil {
		return p.Refine
	}
	return local.Annealing{}
}

// Name joins the seed and refiner names, e.g. "dsatur+annealing".
func (p Pipeline) Name() string {
	return p.seed().Name() + "+" + p.refiner().Name()
}

// Color runs the pipeline on g.
func (p Pipeline) Color(ctx context.Context, g *graph.Graph) (*coloring.Result, error) {
	start := time.Now()
	seed, err := p.seed().Color(ctx, g)
	if err != nil {
		return nil, err
	}

	best := seed.Coloring
	bestK := seed.Colors
	iterations := seed.Iterations
	lb := exact.LowerBound(g)
	var (
		history    *coloring.History
		reductions []Reduction
	)

	refiner := p.refiner()
	for bestK-1 >= max(lb, 1) {
		if p.MaxReductions > 0 && len(reductions) >= p.MaxReductions {
			break
		}
		if ctx.Err() != nil {
			break
		}
		r, err := refiner.Refine(ctx, g, bestK-1, best)
		if err != nil {
			return nil, err
		}
		iterations += r.Iterations
		reductions = append(reductions, Reduction{
			K:          bestK - 1,
			Success:    r.Valid,
			Conflicts:  r.Conflicts,
			Iterations: r.Iterations,
		})
		if !r.Valid {
			break
		}
		best, bestK, history = r.Coloring, r.Colors, r.History
	}

	res := coloring.NewResult(p.Name(), g, best)
	res.Iterations = iterations
	res.Elapsed = time.Since(start)
	res.Complete = ctx.Err() == nil
	res.LowerBound = lb
	res.History = history
	res.SetStat("seed_colors", seed.Colors)
	res.SetStat("reduction", seed.Colors-bestK)
	res.SetStat("reductions", reductions)
	return res, nil
}
