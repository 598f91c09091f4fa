package graph

import (
	"errors"
	"slices"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

var (
	// ErrVertexOutOfRange is returned by [New] and [Builder.AddEdge] when an
	// edge endpoint is outside 0..n-1.
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned by [New] and [Builder.AddEdge] when both
	// endpoints of an edge are the same vertex.
	ErrSelfLoop = errors.New("self-loop")

	// ErrNegativeVertexCount is returned by [New] and [NewBuilder] when the
	// vertex count is negative.
	ErrNegativeVertexCount = errors.New("negative vertex count")
)

// Edge is an undirected edge between two vertices.
// Edges stored in a Graph always satisfy U < V.
type Edge struct {
	U, V int
}

// normalized returns the edge with its endpoints ordered.
func (e Edge) normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

func (e Edge) key() uint64 { return uint64(e.U)<<32 | uint64(uint32(e.V)) }

// Graph is an immutable simple undirected graph over vertices 0..n-1.
//
// The zero value is an empty graph with no vertices. Use [New] or a
// [Builder] to construct a populated graph.
type Graph struct {
	n      int
	edges  []Edge
	adj    [][]int
	index  map[uint64]struct{}
	labels []string
}

// New builds a graph with n vertices and the given edges.
//
// Duplicate edges, in either orientation, are silently dropped. An edge that
// references a vertex outside 0..n-1 or joins a vertex to itself fails the
// whole construction with an INVALID_GRAPH error.
func New(n int, edges []Edge) (*Graph, error) {
	b, err := NewBuilder(n)
	if err != nil {
		return nil, err
	}
	for i, e := range edges {
		if err := b.AddEdge(e.U, e.V); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidGraph, err, "edge %d (%d,%d)", i, e.U, e.V)
		}
	}
	return b.Build(), nil
}

// MustNew is like [New] but panics on error. It is intended for fixtures
// and generators whose edges are valid by construction.
func MustNew(n int, edges []Edge) *Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns all edges with U < V, sorted by (U, V).
func (g *Graph) Edges() []Edge { return g.edges }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Neighbors returns the neighbors of v in ascending order.
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// HasEdge reports whether u and v are adjacent. Out-of-range vertices are
// never adjacent to anything.
func (g *Graph) HasEdge(u, v int) bool {
	if u == v || u < 0 || v < 0 || u >= g.n || v >= g.n {
		return false
	}
	_, ok := g.index[Edge{U: u, V: v}.normalized().key()]
	return ok
}

// Label returns the display label of v. Vertices without an explicit label
// (set through [Builder.SetLabel]) have an empty label.
func (g *Graph) Label(v int) string {
	if v < len(g.labels) {
		return g.labels[v]
	}
	return ""
}

// HasLabels reports whether any vertex carries an explicit label.
func (g *Graph) HasLabels() bool { return len(g.labels) > 0 }

// Density returns m / (n(n-1)/2), the fraction of possible edges present.
// Graphs with fewer than two vertices have density 0.
func (g *Graph) Density() float64 {
	if g.n < 2 {
		return 0
	}
	return float64(len(g.edges)) / (float64(g.n) * float64(g.n-1) / 2)
}

// MaxDegree returns the largest vertex degree, or 0 for an empty graph.
func (g *Graph) MaxDegree() int {
	best := 0
	for _, nb := range g.adj {
		best = max(best, len(nb))
	}
	return best
}

// DegreeOrder returns all vertices sorted by degree descending, ties broken by
// ascending vertex id. The order is the same on every call.
func (g *Graph) DegreeOrder() []int {
	order := make([]int, g.n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return len(g.adj[b]) - len(g.adj[a])
	})
	return order
}

// Builder accumulates edges for a graph with a fixed vertex count.
// It is not safe for concurrent use.
type Builder struct {
	n      int
	edges  []Edge
	seen   map[uint64]struct{}
	labels []string
}

// NewBuilder returns a builder for a graph with n vertices.
func NewBuilder(n int) (*Builder, error) {
	if n < 0 {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidGraph, ErrNegativeVertexCount, "n=%d", n)
	}
	return &Builder{n: n, seen: make(map[uint64]struct{})}, nil
}

// AddEdge records the undirected edge {u, v}. Repeated edges are ignored.
func (b *Builder) AddEdge(u, v int) error {
	if u < 0 || v < 0 || u >= b.n || v >= b.n {
		return cerrors.Wrap(cerrors.ErrCodeInvalidGraph, ErrVertexOutOfRange,
			"edge (%d,%d) with %d vertices", u, v, b.n)
	}
	if u == v {
		return cerrors.Wrap(cerrors.ErrCodeInvalidGraph, ErrSelfLoop, "vertex %d", u)
	}
	e := Edge{U: u, V: v}.normalized()
	if _, dup := b.seen[e.key()]; dup {
		return nil
	}
	b.seen[e.key()] = struct{}{}
	b.edges = append(b.edges, e)
	return nil
}

// SetLabel attaches a display label to v. Out-of-range vertices are ignored.
func (b *Builder) SetLabel(v int, label string) {
	if v < 0 || v >= b.n {
		return
	}
	if b.labels == nil {
		b.labels = make([]string, b.n)
	}
	b.labels[v] = label
}

// Build freezes the accumulated edges into a Graph. The builder must not be
// used afterwards.
func (b *Builder) Build() *Graph {
	edges := slices.Clone(b.edges)
	slices.SortFunc(edges, func(a, c Edge) int {
		if a.U != c.U {
			return a.U - c.U
		}
		return a.V - c.V
	})

	adj := make([][]int, b.n)
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	for _, nb := range adj {
		slices.Sort(nb)
	}

	return &Graph{
		n:      b.n,
		edges:  edges,
		adj:    adj,
		index:  b.seen,
		labels: b.labels,
	}
}
