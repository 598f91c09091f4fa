package coloring

import (
	"math"
	"slices"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// IsValid reports whether c is a proper coloring of g: it covers every
// vertex, assigns no [Uncolored] vertex, and leaves no conflicting edge.
func IsValid(g *graph.Graph, c Coloring) bool {
	if len(c) != g.N() || !c.Complete() {
		return false
	}
	return ConflictCount(g, c) == 0
}

// ConflictCount returns the number of edges whose endpoints share a color.
// Uncolored endpoints never conflict.
func ConflictCount(g *graph.Graph, c Coloring) int {
	count := 0
	for _, e := range g.Edges() {
		if conflicting(c, e) {
			count++
		}
	}
	return count
}

// Conflicts returns the conflicting edges of c in edge order.
func Conflicts(g *graph.Graph, c Coloring) []graph.Edge {
	var out []graph.Edge
	for _, e := range g.Edges() {
		if conflicting(c, e) {
			out = append(out, e)
		}
	}
	return out
}

// ConflictVertices returns the sorted ids of vertices on a conflicting edge.
func ConflictVertices(g *graph.Graph, c Coloring) []int {
	seen := make(map[int]struct{})
	for _, e := range Conflicts(g, c) {
		seen[e.U] = struct{}{}
		seen[e.V] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func conflicting(c Coloring, e graph.Edge) bool {
	cu := c[e.U]
	return cu != Uncolored && cu == c[e.V]
}

// ColorsUsed returns the number of distinct colors assigned in c.
func ColorsUsed(c Coloring) int {
	seen := make(map[int]struct{})
	for _, col := range c {
		if col != Uncolored {
			seen[col] = struct{}{}
		}
	}
	return len(seen)
}

// UpperBound returns maxDegree+1, the color count every greedy coloring
// stays within. It is 0 for the empty graph.
func UpperBound(g *graph.Graph) int {
	if g.N() == 0 {
		return 0
	}
	return g.MaxDegree() + 1
}

// GreedyClique returns a clique of g found greedily: every vertex is tried
// as a seed and extended with its neighbors in degree order whenever they
// are adjacent to all members so far. The largest clique found is returned
// with its members sorted. It is a heuristic; the maximum clique may be
// larger.
func GreedyClique(g *graph.Graph) []int {
	order := g.DegreeOrder()
	rank := make([]int, g.N())
	for i, v := range order {
		rank[v] = i
	}

	var best []int
	for _, seed := range order {
		if g.Degree(seed)+1 <= len(best) {
			break
		}
		cands := slices.Clone(g.Neighbors(seed))
		slices.SortFunc(cands, func(a, b int) int { return rank[a] - rank[b] })

		clique := []int{seed}
		for _, w := range cands {
			if adjacentToAll(g, w, clique) {
				clique = append(clique, w)
			}
		}
		if len(clique) > len(best) {
			best = clique
		}
	}
	slices.Sort(best)
	return best
}

func adjacentToAll(g *graph.Graph, v int, set []int) bool {
	for _, u := range set {
		if !g.HasEdge(u, v) {
			return false
		}
	}
	return true
}

// CliqueLowerBound returns the size of [GreedyClique], a lower bound on the
// chromatic number.
func CliqueLowerBound(g *graph.Graph) int {
	return len(GreedyClique(g))
}

// ClassSizes returns the number of vertices per color, indexed by color.
// Unused colors below the maximum report 0; uncolored vertices and negative
// colors are ignored.
func ClassSizes(c Coloring) []int {
	sizes := make([]int, c.MaxColor()+1)
	for _, col := range c {
		if col >= 0 {
			sizes[col]++
		}
	}
	return sizes
}

// Imbalance returns the coefficient of variation (stddev / mean) of the
// non-empty color class sizes. A perfectly balanced coloring scores 0.
func Imbalance(c Coloring) float64 {
	var sizes []float64
	for _, s := range ClassSizes(c) {
		if s > 0 {
			sizes = append(sizes, float64(s))
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sizes {
		sum += s
	}
	mean := sum / float64(len(sizes))
	var sq float64
	for _, s := range sizes {
		sq += (s - mean) * (s - mean)
	}
	return math.Sqrt(sq/float64(len(sizes))) / mean
}

// Degeneracy returns the degeneracy of g: the largest minimum degree seen
// while repeatedly removing a minimum-degree vertex. Degeneracy+1 bounds the
// chromatic number from above.
func Degeneracy(g *graph.Graph) int {
	n := g.N()
	if n == 0 {
		return 0
	}
	deg := make([]int, n)
	maxDeg := 0
	for v := range n {
		deg[v] = g.Degree(v)
		maxDeg = max(maxDeg, deg[v])
	}
	buckets := make([][]int, maxDeg+1)
	for v := range n {
		buckets[deg[v]] = append(buckets[deg[v]], v)
	}
	removed := make([]bool, n)
	result, d := 0, 0
	for range n {
		// Buckets hold stale entries; skip vertices whose degree moved on.
		var v int
		for {
			for len(buckets[d]) == 0 {
				d++
			}
			last := len(buckets[d]) - 1
			v = buckets[d][last]
			buckets[d] = buckets[d][:last]
			if !removed[v] && deg[v] == d {
				break
			}
		}
		removed[v] = true
		result = max(result, d)
		for _, w := range g.Neighbors(v) {
			if removed[w] {
				continue
			}
			deg[w]--
			buckets[deg[w]] = append(buckets[deg[w]], w)
		}
		d = max(d-1, 0)
	}
	return result
}

// Normalize relabels colors in order of first appearance by vertex id, so
// colorings that differ only by a permutation of colors compare equal.
func Normalize(c Coloring) Coloring {
	out := make(Coloring, len(c))
	relabel := make(map[int]int)
	for v, col := range c {
		if col == Uncolored {
			out[v] = Uncolored
			continue
		}
		nc, ok := relabel[col]
		if !ok {
			nc = len(relabel)
			relabel[col] = nc
		}
		out[v] = nc
	}
	return out
}

// Metrics is a summary of a coloring of a graph.
type Metrics struct {
	Colors           int     `json:"colors"`
	Valid            bool    `json:"valid"`
	Conflicts        int     `json:"conflicts"`
	ConflictVertices int     `json:"conflict_vertices"`
	ClassSizes       []int   `json:"class_sizes"`
	Imbalance        float64 `json:"imbalance"`
	LowerBound       int     `json:"lower_bound"`
	UpperBound       int     `json:"upper_bound"`
	Degeneracy       int     `json:"degeneracy"`
}

// Summarize computes [Metrics] for c on g.
func Summarize(g *graph.Graph, c Coloring) Metrics {
	return Metrics{
		Colors:           ColorsUsed(c),
		Valid:            IsValid(g, c),
		Conflicts:        ConflictCount(g, c),
		ConflictVertices: len(ConflictVertices(g, c)),
		ClassSizes:       ClassSizes(c),
		Imbalance:        Imbalance(c),
		LowerBound:       CliqueLowerBound(g),
		UpperBound:       min(UpperBound(g), Degeneracy(g)+1),
		Degeneracy:       Degeneracy(g),
	}
}
