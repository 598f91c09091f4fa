package coloring

import (
	"context"
	"slices"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// Uncolored marks a vertex that has not been assigned a color yet.
const Uncolored = -1

// Coloring maps each vertex id (the slice index) to a color index.
// Colors are non-negative; [Uncolored] marks unassigned vertices.
type Coloring []int

// NewColoring returns a coloring of n vertices with every vertex uncolored.
func NewColoring(n int) Coloring {
	c := make(Coloring, n)
	for i := range c {
		c[i] = Uncolored
	}
	return c
}

// Clone returns an independent copy of c.
func (c Coloring) Clone() Coloring { return slices.Clone(c) }

// Fold maps every color into [0, k) by taking it modulo k. Uncolored vertices
// are assigned color 0. Fold is how a k-coloring seeds a search with fewer
// colors.
func (c Coloring) Fold(k int) Coloring {
	out := make(Coloring, len(c))
	for i, col := range c {
		if col < 0 {
			continue
		}
		out[i] = col % k
	}
	return out
}

// MaxColor returns the largest color index in use, or -1 if nothing is colored.
func (c Coloring) MaxColor() int {
	m := Uncolored
	for _, col := range c {
		m = max(m, col)
	}
	return m
}

// Complete reports whether every vertex has a color.
func (c Coloring) Complete() bool {
	return !slices.Contains(c, Uncolored)
}

// Colorer is implemented by every coloring engine.
//
// Color must not mutate g and must not share state between calls, so one
// Colorer value may be used from several goroutines on independent graphs.
// Engine failures (bad configuration, oversized exact search) are returned
// as coded errors; cancellation and exhausted budgets are reported on the
// Result instead.
type Colorer interface {
	Name() string
	Color(ctx context.Context, g *graph.Graph) (*Result, error)
}

// Algorithm names shared by the engines, the CLI and the service.
const (
	AlgorithmWelshPowell  = "welsh-powell"
	AlgorithmDSatur       = "dsatur"
	AlgorithmExact        = "exact"
	AlgorithmAnnealing    = "annealing"
	AlgorithmTabu         = "tabu"
	AlgorithmHybrid       = "hybrid"
	AlgorithmAdaptive     = "adaptive"
	AlgorithmHybridWPSA   = "welsh-powell+annealing"
	AlgorithmHybridDSSA   = "dsatur+annealing"
	AlgorithmHybridDSTabu = "dsatur+tabu"
)
