package graph

// SizeCategory buckets graphs by vertex count.
type SizeCategory string

// DensityCategory buckets graphs by edge density.
type DensityCategory string

const (
	SizeEmpty     SizeCategory = "empty"
	SizeTiny      SizeCategory = "tiny"
	SizeSmall     SizeCategory = "small"
	SizeMedium    SizeCategory = "medium"
	SizeLarge     SizeCategory = "large"
	SizeVeryLarge SizeCategory = "very_large"

	DensitySparse DensityCategory = "sparse"
	DensityMedium DensityCategory = "medium"
	DensityDense  DensityCategory = "dense"
)

// Characteristics summarizes the structural features used to pick a coloring
// strategy and to report on a graph.
type Characteristics struct {
	Vertices        int             `json:"vertices"`
	Edges           int             `json:"edges"`
	Density         float64         `json:"density"`
	MinDegree       int             `json:"min_degree"`
	MaxDegree       int             `json:"max_degree"`
	AvgDegree       float64         `json:"avg_degree"`
	Components      int             `json:"components"`
	Bipartite       bool            `json:"bipartite"`
	SizeCategory    SizeCategory    `json:"size_category"`
	DensityCategory DensityCategory `json:"density_category"`
}

// Characteristics computes the structural summary of g in O(n + m).
func (g *Graph) Characteristics() Characteristics {
	c := Characteristics{
		Vertices:   g.n,
		Edges:      len(g.edges),
		Density:    g.Density(),
		MaxDegree:  g.MaxDegree(),
		Components: g.Components(),
		Bipartite:  g.IsBipartite(),
	}
	if g.n > 0 {
		c.MinDegree = len(g.adj[0])
		for _, nb := range g.adj {
			c.MinDegree = min(c.MinDegree, len(nb))
		}
		c.AvgDegree = 2 * float64(len(g.edges)) / float64(g.n)
	}

	switch {
	case g.n == 0:
		c.SizeCategory = SizeEmpty
	case g.n <= 20:
		c.SizeCategory = SizeTiny
	case g.n <= 50:
		c.SizeCategory = SizeSmall
	case g.n <= 200:
		c.SizeCategory = SizeMedium
	case g.n <= 1000:
		c.SizeCategory = SizeLarge
	default:
		c.SizeCategory = SizeVeryLarge
	}

	switch {
	case c.Density < 0.1:
		c.DensityCategory = DensitySparse
	case c.Density < 0.3:
		c.DensityCategory = DensityMedium
	default:
		c.DensityCategory = DensityDense
	}
	return c
}

// IsBipartite reports whether g can be properly colored with two colors.
// Edgeless graphs are bipartite.
func (g *Graph) IsBipartite() bool {
	side := make([]int8, g.n)
	queue := make([]int, 0, g.n)
	for s := 0; s < g.n; s++ {
		if side[s] != 0 {
			continue
		}
		side[s] = 1
		queue = append(queue[:0], s)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.adj[v] {
				switch side[w] {
				case 0:
					side[w] = -side[v]
					queue = append(queue, w)
				case side[v]:
					return false
				}
			}
		}
	}
	return true
}

// Components returns the number of connected components. Isolated vertices
// count as their own component.
func (g *Graph) Components() int {
	seen := make([]bool, g.n)
	stack := make([]int, 0, g.n)
	count := 0
	for s := 0; s < g.n; s++ {
		if seen[s] {
			continue
		}
		count++
		seen[s] = true
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range g.adj[v] {
				if !seen[w] {
					seen[w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	return count
}
