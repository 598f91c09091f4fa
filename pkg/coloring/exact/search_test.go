package exact

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/generate"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func TestChromaticNumbers(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
		want int
	}{
		{"empty", graph.MustNew(0, nil), 0},
		{"single", graph.MustNew(1, nil), 1},
		{"isolated", graph.MustNew(5, nil), 1},
		{"edge", generate.Path(2), 2},
		{"triangle", generate.Complete(3), 3},
		{"K5", generate.Complete(5), 5},
		{"K3,3", generate.CompleteBipartite(3, 3), 2},
		{"C5", generate.Cycle(5), 3},
		{"C6", generate.Cycle(6), 2},
		{"C7", generate.Cycle(7), 3},
		{"petersen", generate.Petersen(), 3},
		{"W6 odd rim", generate.Wheel(6), 4},
		{"W7 even rim", generate.Wheel(7), 3},
		{"crown", generate.Crown(5), 2},
		{"grotzsch", generate.Mycielski(4), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search{}.Color(context.Background(), tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Colors)
			assert.True(t, res.Valid)
			assert.True(t, res.Optimal)
			assert.True(t, res.Complete)
			assert.GreaterOrEqual(t, res.Colors, res.LowerBound)
			assert.Equal(t, coloring.AlgorithmExact, res.Algorithm)
		})
	}
}

func TestNeverWorseThanGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for i := range 15 {
		g := generate.ErdosRenyi(12+i, 0.35, rng)
		res, err := Search{}.Color(context.Background(), g)
		require.NoError(t, err)
		ds, err := greedy.DSatur{}.Color(context.Background(), g)
		require.NoError(t, err)

		assert.True(t, res.Valid)
		assert.True(t, res.Optimal)
		assert.LessOrEqual(t, res.Colors, ds.Colors)
		assert.GreaterOrEqual(t, res.Colors, LowerBound(g))
	}
}

func TestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 10 {
		g := generate.ErdosRenyi(8, 0.5, rng)
		res, err := Search{}.Color(context.Background(), g)
		require.NoError(t, err)
		assert.Equal(t, bruteForceChromatic(g), res.Colors)
	}
}

// bruteForceChromatic tries every k-coloring for increasing k.
func bruteForceChromatic(g *graph.Graph) int {
	n := g.N()
	for k := 1; k <= n; k++ {
		c := make(coloring.Coloring, n)
		for {
			if coloring.IsValid(g, c) {
				return k
			}
			i := 0
			for i < n {
				c[i]++
				if c[i] < k {
					break
				}
				c[i] = 0
				i++
			}
			if i == n {
				break
			}
		}
	}
	return n
}

func TestSearchTooLarge(t *testing.T) {
	g := generate.Cycle(50)
	_, err := Search{}.Color(context.Background(), g)
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeSearchTooLarge))

	_, err = Search{MaxVertices: 10}.Color(context.Background(), generate.Cycle(11))
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeSearchTooLarge))

	res, err := Search{MaxVertices: 60}.Color(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Colors)

	assert.True(t, cerrors.Is(Search{}.Accepts(g), cerrors.ErrCodeSearchTooLarge))
	assert.NoError(t, Search{}.Accepts(generate.Cycle(DefaultMaxVertices)))
}

func TestCancelledReturnsIncumbent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := generate.Mycielski(4)
	res, err := Search{}.Color(ctx, g)
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.False(t, res.Optimal)
	assert.True(t, res.Valid)
}

func TestTimeoutStillValid(t *testing.T) {
	g := generate.ErdosRenyi(40, 0.5, rand.New(rand.NewSource(1)))
	res, err := Search{Timeout: 20 * time.Millisecond}.Color(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.GreaterOrEqual(t, res.Colors, res.LowerBound)
	if !res.Complete && res.Colors > res.LowerBound {
		assert.False(t, res.Optimal)
	}
}

func TestDeterministic(t *testing.T) {
	g := generate.ErdosRenyi(18, 0.4, rand.New(rand.NewSource(13)))
	a, err := Search{}.Color(context.Background(), g)
	require.NoError(t, err)
	b, err := Search{}.Color(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, a.Coloring, b.Coloring)
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestProgressReportsBest(t *testing.T) {
	var calls, last int
	s := Search{Progress: func(explored, pruned, best int) {
		calls++
		last = best
	}}
	res, err := s.Color(context.Background(), generate.Mycielski(4))
	require.NoError(t, err)
	assert.Positive(t, calls)
	assert.Equal(t, res.Colors, last)
}

func TestLowerBound(t *testing.T) {
	assert.Equal(t, 0, LowerBound(graph.MustNew(0, nil)))
	assert.Equal(t, 1, LowerBound(graph.MustNew(3, nil)))
	assert.Equal(t, 2, LowerBound(generate.Cycle(6)))
	assert.Equal(t, 3, LowerBound(generate.Cycle(7)))
	assert.Equal(t, 4, LowerBound(generate.Complete(4)))
}
