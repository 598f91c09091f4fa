package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

func triangle(t *testing.T) *Graph {
	t.Helper()
	g, err := New(3, []Edge{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)
	return g
}

func TestNewBasicQueries(t *testing.T) {
	g := triangle(t)

	assert.Equal(t, 3, g.N())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []Edge{{0, 1}, {0, 2}, {1, 2}}, g.Edges())
	for v := 0; v < 3; v++ {
		assert.Equal(t, 2, g.Degree(v))
	}
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
	assert.InDelta(t, 1.0, g.Density(), 1e-12)
	assert.Equal(t, 2, g.MaxDegree())
}

func TestNewDeduplicatesEdges(t *testing.T) {
	g, err := New(3, []Edge{{0, 1}, {1, 0}, {0, 1}, {1, 2}})
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
	assert.Equal(t, 1, g.Degree(0))
}

func TestNewRejectsInvalidEdges(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		edges    []Edge
		sentinel error
	}{
		{"self-loop", 3, []Edge{{0, 1}, {2, 2}}, ErrSelfLoop},
		{"out of range high", 3, []Edge{{0, 3}}, ErrVertexOutOfRange},
		{"out of range negative", 3, []Edge{{-1, 0}}, ErrVertexOutOfRange},
		{"negative n", -1, nil, ErrNegativeVertexCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.edges)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, tt.sentinel), "want sentinel %v, got %v", tt.sentinel, err)
			assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidGraph), "want INVALID_GRAPH code, got %v", err)
		})
	}
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	g, err := New(6, []Edge{{0, 5}, {4, 1}, {2, 3}, {3, 0}, {5, 2}})
	require.NoError(t, err)

	for v := 0; v < g.N(); v++ {
		for _, w := range g.Neighbors(v) {
			assert.Contains(t, g.Neighbors(w), v)
			assert.True(t, g.HasEdge(v, w))
			assert.True(t, g.HasEdge(w, v))
		}
	}
	assert.False(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(0, 0))
	assert.False(t, g.HasEdge(0, 99))
}

func TestDensityEdgeCases(t *testing.T) {
	empty, err := New(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.Density())
	assert.Equal(t, 0, empty.MaxDegree())

	single, err := New(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, single.Density())

	half, err := New(4, []Edge{{0, 1}, {1, 2}, {2, 3}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, half.Density(), 1e-12)
}

func TestDegreeOrder(t *testing.T) {
	// Star centered at 3 plus an extra edge 0-1.
	g, err := New(5, []Edge{{3, 0}, {3, 1}, {3, 2}, {3, 4}, {0, 1}})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 0, 1, 2, 4}, g.DegreeOrder())
	assert.Equal(t, g.DegreeOrder(), g.DegreeOrder())
}

func TestBuilderLabels(t *testing.T) {
	b, err := NewBuilder(2)
	require.NoError(t, err)
	b.SetLabel(0, "math")
	b.SetLabel(1, "physics")
	b.SetLabel(7, "ignored")
	require.NoError(t, b.AddEdge(0, 1))
	g := b.Build()

	assert.True(t, g.HasLabels())
	assert.Equal(t, "math", g.Label(0))
	assert.Equal(t, "physics", g.Label(1))
	assert.Equal(t, "", g.Label(5))
}

func TestCharacteristics(t *testing.T) {
	// Even cycle of length 6 plus an isolated vertex.
	g, err := New(7, []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}})
	require.NoError(t, err)

	c := g.Characteristics()
	assert.Equal(t, 7, c.Vertices)
	assert.Equal(t, 6, c.Edges)
	assert.Equal(t, 0, c.MinDegree)
	assert.Equal(t, 2, c.MaxDegree)
	assert.Equal(t, 2, c.Components)
	assert.True(t, c.Bipartite)
	assert.Equal(t, SizeTiny, c.SizeCategory)
	assert.Equal(t, DensityMedium, c.DensityCategory)
}

func TestIsBipartite(t *testing.T) {
	oddCycle, err := New(5, []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}})
	require.NoError(t, err)
	assert.False(t, oddCycle.IsBipartite())

	evenCycle, err := New(4, []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	require.NoError(t, err)
	assert.True(t, evenCycle.IsBipartite())

	edgeless, err := New(3, nil)
	require.NoError(t, err)
	assert.True(t, edgeless.IsBipartite())
	assert.Equal(t, 3, edgeless.Components())
}
