package exact

import (
	"context"
	"time"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

const (
	// DefaultMaxVertices is the vertex ceiling applied when MaxVertices is 0.
	DefaultMaxVertices = 40

	// checkInterval is how many branch events pass between context checks
	// and periodic progress reports.
	checkInterval = 4096
)

// Search is the branch-and-bound coloring engine.
// The zero value is ready to use.
type Search struct {
	// MaxVertices caps the graph size; 0 means DefaultMaxVertices.
	MaxVertices int
	// Timeout bounds the search in addition to any context deadline.
	Timeout time.Duration
	// Progress, if set, is called on every incumbent improvement and
	// periodically while searching.
	Progress func(explored, pruned, best int)
}

func (Search) Name() string { return coloring.AlgorithmExact }

func (s Search) maxVertices() int {
	if s.MaxVertices > 0 {
		return s.MaxVertices
	}
	return DefaultMaxVertices
}

// LowerBound returns the bound the search stops at: the greedy clique size,
// at least 2 when g has an edge and at least 3 when g is not bipartite.
func LowerBound(g *graph.Graph) int {
	lb := coloring.CliqueLowerBound(g)
	if g.EdgeCount() > 0 {
		lb = max(lb, 2)
		if !g.IsBipartite() {
			lb = max(lb, 3)
		}
	}
	return lb
}

// Accepts returns a SEARCH_TOO_LARGE error when g exceeds the vertex ceiling.
func (s Search) Accepts(g *graph.Graph) error {
	if n, limit := g.N(), s.maxVertices(); n > limit {
		return cerrors.New(cerrors.ErrCodeSearchTooLarge,
			"exact search supports at most %d vertices, graph has %d", limit, n)
	}
	return nil
}

// Color returns a minimum coloring of g, or the best coloring found before
// the context or timeout ended the search.
func (s Search) Color(ctx context.Context, g *graph.Graph) (*coloring.Result, error) {
	if err := s.Accepts(g); err != nil {
		return nil, err
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	seed, err := greedy.DSatur{}.Color(ctx, g)
	if err != nil {
		return nil, err
	}

	e := newEngine(g, seed.Coloring, LowerBound(g), s.Progress)
	completed := e.run(ctx)

	res := coloring.NewResult(coloring.AlgorithmExact, g, e.best)
	res.Iterations = e.explored
	res.Elapsed = time.Since(start)
	res.LowerBound = e.lb
	res.Optimal = completed || e.bestK <= e.lb
	res.Complete = completed
	res.SetStat("explored", e.explored)
	res.SetStat("pruned", e.pruned)
	res.SetStat("initial_colors", seed.Colors)
	return res, nil
}

// engine holds the state of one search.
type engine struct {
	n     int
	order []int   // depth -> vertex
	prev  [][]int // prev[d] = neighbors of order[d] placed at a smaller depth

	colors coloring.Coloring // shared partial coloring, valid for depths < current
	next   []int             // next[d] = next color to try at depth d
	opened []int             // opened[d] = colors in use by depths < d

	best  coloring.Coloring
	bestK int
	lb    int

	explored, pruned int
	progress         func(explored, pruned, best int)
}

func newEngine(g *graph.Graph, incumbent coloring.Coloring, lb int, progress func(int, int, int)) *engine {
	n := g.N()
	order := g.DegreeOrder()
	depth := make([]int, n)
	for d, v := range order {
		depth[v] = d
	}
	prev := make([][]int, n)
	for d, v := range order {
		for _, w := range g.Neighbors(v) {
			if depth[w] < d {
				prev[d] = append(prev[d], w)
			}
		}
	}
	return &engine{
		n:        n,
		order:    order,
		prev:     prev,
		colors:   coloring.NewColoring(n),
		next:     make([]int, n+1),
		opened:   make([]int, n+1),
		best:     incumbent.Clone(),
		bestK:    coloring.ColorsUsed(incumbent),
		lb:       lb,
		progress: progress,
	}
}

// run explores the tree and reports whether it finished without being
// interrupted.
func (e *engine) run(ctx context.Context) bool {
	e.report()
	if e.bestK <= e.lb {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	d := 0
	for d >= 0 {
		e.explored++
		if e.explored%checkInterval == 0 {
			if ctx.Err() != nil {
				return false
			}
			e.report()
		}

		if d == e.n {
			if k := e.opened[d]; k < e.bestK {
				e.bestK = k
				copy(e.best, e.colors)
				e.report()
				if e.bestK <= e.lb {
					return true
				}
			}
			d--
			continue
		}

		c := e.nextFeasible(d)
		if c < 0 {
			e.pruned++
			d--
			continue
		}
		e.colors[e.order[d]] = c
		e.next[d] = c + 1
		e.opened[d+1] = max(e.opened[d], c+1)
		d++
		e.next[d] = 0
	}
	return true
}

// nextFeasible returns the smallest color at or after next[d] that no
// earlier neighbor uses, opens at most one new color, and keeps the count
// below the incumbent. It returns -1 when none is left.
func (e *engine) nextFeasible(d int) int {
	limit := min(e.opened[d], e.bestK-2)
	for c := e.next[d]; c <= limit; c++ {
		if e.free(d, c) {
			return c
		}
	}
	return -1
}

func (e *engine) free(d, c int) bool {
	for _, w := range e.prev[d] {
		if e.colors[w] == c {
			return false
		}
	}
	return true
}

func (e *engine) report() {
	if e.progress != nil {
		e.progress(e.explored, e.pruned, e.bestK)
	}
}
