// Package generate builds synthetic graphs for tests, benchmarks and demos.
//
// The deterministic families have known chromatic numbers:
//
//	Complete(n)          n
//	Cycle(n)             2 if n is even, 3 if odd (n >= 3)
//	Path(n)              2 (n >= 2)
//	CompleteBipartite    2
//	Crown(n)             2 (n >= 2)
//	Wheel(n)             3 if n-1 is even, 4 if odd (n >= 4)
//	Petersen()           3
//	Mycielski(k)         k (triangle-free for k >= 3)
//
// Random families take an explicit *rand.Rand so runs are reproducible.
// Negative sizes are treated as zero and probabilities are clamped to [0, 1].
package generate

import (
	"fmt"
	"math/rand"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// Complete returns K_n.
func Complete(n int) *graph.Graph {
	n = max(n, 0)
	b := mustBuilder(n)
	for u := range n {
		for v := u + 1; v < n; v++ {
			b.AddEdge(u, v)
		}
	}
	return b.Build()
}

// Cycle returns C_n. For n < 3 it degrades to a path.
func Cycle(n int) *graph.Graph {
	n = max(n, 0)
	b := mustBuilder(n)
	for i := 0; i+1 < n; i++ {
		b.AddEdge(i, i+1)
	}
	if n >= 3 {
		b.AddEdge(n-1, 0)
	}
	return b.Build()
}

// Path returns P_n.
func Path(n int) *graph.Graph {
	n = max(n, 0)
	b := mustBuilder(n)
	for i := 0; i+1 < n; i++ {
		b.AddEdge(i, i+1)
	}
	return b.Build()
}

// CompleteBipartite returns K_{a,b}; vertices 0..a-1 form the left side.
func CompleteBipartite(a, b int) *graph.Graph {
	a, b = max(a, 0), max(b, 0)
	gb := mustBuilder(a + b)
	for u := range a {
		for v := range b {
			gb.AddEdge(u, a+v)
		}
	}
	return gb.Build()
}

// RandomBipartite returns a bipartite graph on a+b vertices where each
// cross pair is joined with probability p.
func RandomBipartite(a, b int, p float64, rng *rand.Rand) *graph.Graph {
	a, b, p = max(a, 0), max(b, 0), clamp(p)
	gb := mustBuilder(a + b)
	for u := range a {
		for v := range b {
			if rng.Float64() < p {
				gb.AddEdge(u, a+v)
			}
		}
	}
	for u := range a {
		gb.SetLabel(u, fmt.Sprintf("A%d", u))
	}
	for v := range b {
		gb.SetLabel(a+v, fmt.Sprintf("B%d", v))
	}
	return gb.Build()
}

// Crown returns the crown graph S_n: K_{n,n} minus a perfect matching.
// Greedy colorings in interleaved order need n colors on it.
func Crown(n int) *graph.Graph {
	n = max(n, 0)
	b := mustBuilder(2 * n)
	for u := range n {
		for v := range n {
			if u != v {
				b.AddEdge(u, n+v)
			}
		}
	}
	return b.Build()
}

// Wheel returns W_n: a hub (vertex 0) joined to a cycle on vertices 1..n-1.
func Wheel(n int) *graph.Graph {
	n = max(n, 0)
	b := mustBuilder(n)
	rim := n - 1
	for i := 1; i < n; i++ {
		b.AddEdge(0, i)
		if rim >= 3 {
			b.AddEdge(i, 1+i%rim)
		} else if i+1 < n {
			b.AddEdge(i, i+1)
		}
	}
	return b.Build()
}

// Petersen returns the Petersen graph: outer 5-cycle 0..4, inner pentagram
// 5..9, spokes i -> i+5.
func Petersen() *graph.Graph {
	b := mustBuilder(10)
	for i := range 5 {
		b.AddEdge(i, (i+1)%5)
		b.AddEdge(5+i, 5+(i+2)%5)
		b.AddEdge(i, i+5)
	}
	return b.Build()
}

// Mycielski returns the k-th Mycielski graph: M1 = K1, M2 = K2, and M(k+1)
// is the Mycielskian of M(k). M3 is C5 and M4 is the Grötzsch graph.
// Its chromatic number is k while its clique number stays 2, which makes it
// a hard case for clique lower bounds. k < 1 yields the empty graph.
func Mycielski(k int) *graph.Graph {
	if k < 1 {
		return mustBuilder(0).Build()
	}
	n := 1
	var edges []graph.Edge
	if k >= 2 {
		n, edges = 2, []graph.Edge{{U: 0, V: 1}}
	}
	for range max(k-2, 0) {
		// v_i keep ids 0..n-1, u_i are n..2n-1, w is 2n.
		next := append([]graph.Edge(nil), edges...)
		for _, e := range edges {
			next = append(next, graph.Edge{U: e.U, V: n + e.V}, graph.Edge{U: e.V, V: n + e.U})
		}
		for i := range n {
			next = append(next, graph.Edge{U: n + i, V: 2 * n})
		}
		n, edges = 2*n+1, next
	}
	return graph.MustNew(n, edges)
}

// ErdosRenyi returns a G(n, p) random graph.
func ErdosRenyi(n int, p float64, rng *rand.Rand) *graph.Graph {
	n, p = max(n, 0), clamp(p)
	b := mustBuilder(n)
	for u := range n {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				b.AddEdge(u, v)
			}
		}
	}
	return b.Build()
}

// Map returns a planar region-adjacency graph laid out as a rows x cols grid
// of regions labelled R1, R2, ... Each region borders its right and lower
// neighbors, and every grid cell gets one random diagonal border, so the
// result is a planar triangulation-like map that is always 4-colorable.
func Map(rows, cols int, rng *rand.Rand) *graph.Graph {
	rows, cols = max(rows, 0), max(cols, 0)
	id := func(r, c int) int { return r*cols + c }
	b := mustBuilder(rows * cols)
	for r := range rows {
		for c := range cols {
			b.SetLabel(id(r, c), fmt.Sprintf("R%d", id(r, c)+1))
			if c+1 < cols {
				b.AddEdge(id(r, c), id(r, c+1))
			}
			if r+1 < rows {
				b.AddEdge(id(r, c), id(r+1, c))
			}
			if r+1 < rows && c+1 < cols {
				if rng.Intn(2) == 0 {
					b.AddEdge(id(r, c), id(r+1, c+1))
				} else {
					b.AddEdge(id(r, c+1), id(r+1, c))
				}
			}
		}
	}
	return b.Build()
}

func clamp(p float64) float64 {
	return min(max(p, 0), 1)
}

// mustBuilder returns a builder for n >= 0 vertices. Generators only add
// in-range edges, so builder errors are programming errors.
func mustBuilder(n int) *builder {
	b, err := graph.NewBuilder(n)
	if err != nil {
		panic(err)
	}
	return &builder{b}
}

type builder struct{ *graph.Builder }

func (b *builder) AddEdge(u, v int) {
	if err := b.Builder.AddEdge(u, v); err != nil {
		panic(err)
	}
}
