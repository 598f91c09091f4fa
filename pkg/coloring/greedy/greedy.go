package greedy

import (
	"context"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// WelshPowell colors vertices in descending degree order.
type WelshPowell struct{}

func (WelshPowell) Name() string { return coloring.AlgorithmWelshPowell }

func (WelshPowell) Color(_ context.Context, g *graph.Graph) (*coloring.Result, error) {
	start := time.Now()
	c := WelshPowellColoring(g)
	res := coloring.NewResult(coloring.AlgorithmWelshPowell, g, c)
	res.Iterations = g.N()
	res.Elapsed = time.Since(start)
	return res, nil
}

// WelshPowellColoring returns the Welsh-Powell coloring of g.
func WelshPowellColoring(g *graph.Graph) coloring.Coloring {
	c := coloring.NewColoring(g.N())
	used := newColorMarks(g.MaxDegree() + 2)
	for _, v := range g.DegreeOrder() {
		c[v] = used.smallestFree(g.Neighbors(v), c)
	}
	return c
}

// DSatur colors the most constrained vertex first.
type DSatur struct {
	// NoFallback returns the raw DSatur coloring even when Welsh-Powell
	// finds a smaller one.
	NoFallback bool
}

func (DSatur) Name() string { return coloring.AlgorithmDSatur }

func (d DSatur) Color(_ context.Context, g *graph.Graph) (*coloring.Result, error) {
	start := time.Now()
	c := DSaturColoring(g)
	fallback := false
	if !d.NoFallback {
		if wp := WelshPowellColoring(g); coloring.ColorsUsed(wp) < coloring.ColorsUsed(c) {
			c, fallback = wp, true
		}
	}
	res := coloring.NewResult(coloring.AlgorithmDSatur, g, c)
	res.Iterations = g.N()
	res.Elapsed = time.Since(start)
	res.SetStat("fallback", fallback)
	return res, nil
}

// satKey orders the DSatur queue: the tree's leftmost key is the next vertex.
type satKey struct {
	sat, deg, id int
}

func compareSatKeys(a, b interface{}) int {
	x, y := a.(satKey), b.(satKey)
	switch {
	case x.sat != y.sat:
		return y.sat - x.sat
	case x.deg != y.deg:
		return y.deg - x.deg
	default:
		return x.id - y.id
	}
}

// DSaturColoring returns the pure DSatur coloring of g.
func DSaturColoring(g *graph.Graph) coloring.Coloring {
	n := g.N()
	c := coloring.NewColoring(n)
	neighborColors := make([]map[int]struct{}, n)
	keys := make([]satKey, n)

	queue := redblacktree.NewWith(compareSatKeys)
	for v := range n {
		keys[v] = satKey{deg: g.Degree(v), id: v}
		queue.Put(keys[v], nil)
	}

	used := newColorMarks(g.MaxDegree() + 2)
	for !queue.Empty() {
		node := queue.Left()
		queue.Remove(node.Key)
		v := node.Key.(satKey).id

		col := used.smallestFree(g.Neighbors(v), c)
		c[v] = col

		for _, w := range g.Neighbors(v) {
			if c[w] != coloring.Uncolored {
				continue
			}
			if neighborColors[w] == nil {
				neighborColors[w] = make(map[int]struct{})
			}
			if _, ok := neighborColors[w][col]; ok {
				continue
			}
			neighborColors[w][col] = struct{}{}
			queue.Remove(keys[w])
			keys[w].sat++
			queue.Put(keys[w], nil)
		}
	}
	return c
}

// colorMarks finds the smallest color absent from a neighborhood without
// clearing a boolean slice per vertex: marks[c] == stamp means c is taken.
type colorMarks struct {
	marks []int
	stamp int
}

func newColorMarks(size int) *colorMarks {
	return &colorMarks{marks: make([]int, size)}
}

func (m *colorMarks) smallestFree(neighbors []int, c coloring.Coloring) int {
	m.stamp++
	for _, w := range neighbors {
		if col := c[w]; col >= 0 && col < len(m.marks) {
			m.marks[col] = m.stamp
		}
	}
	for col, s := range m.marks {
		if s != m.stamp {
			return col
		}
	}
	return len(m.marks)
}
