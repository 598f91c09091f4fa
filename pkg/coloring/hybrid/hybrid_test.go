package hybrid

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	"github.com/matzehuels/chromatic/pkg/coloring/local"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/generate"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func quickPipelines() []Pipeline {
	return []Pipeline{
		{Seed: greedy.WelshPowell{}, Refine: local.Annealing{Seed: 1, MaxIterations: 20000}},
		{Seed: greedy.DSatur{}, Refine: local.Annealing{Seed: 1, MaxIterations: 20000}},
		{Seed: greedy.DSatur{}, Refine: local.Tabu{Seed: 1, MaxIterations: 3000}},
	}
}

func TestPipelineNeverWorseThanSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	graphs := map[string]*graph.Graph{
		"crown":    generate.Crown(8),
		"petersen": generate.Petersen(),
		"er":       generate.ErdosRenyi(70, 0.15, rng),
		"map":      generate.Map(5, 5, rng),
		"empty":    graph.MustNew(0, nil),
	}
	for name, g := range graphs {
		for _, p := range quickPipelines() {
			t.Run(name+"/"+p.Name(), func(t *testing.T) {
				seed, err := p.Seed.Color(context.Background(), g)
				require.NoError(t, err)
				res, err := p.Color(context.Background(), g)
				require.NoError(t, err)

				assert.True(t, res.Valid)
				assert.True(t, coloring.IsValid(g, res.Coloring))
				assert.LessOrEqual(t, res.Colors, seed.Colors)
				assert.GreaterOrEqual(t, res.Colors, res.LowerBound)
				assert.Equal(t, p.Name(), res.Algorithm)
			})
		}
	}
}

func TestPipelineReachesLowerBound(t *testing.T) {
	// Crown graphs are bipartite; any k-1 reduction should get down to 2.
	g := generate.Crown(6)
	p := Pipeline{Seed: greedy.WelshPowell{}, Refine: local.Tabu{Seed: 3, MaxIterations: 2000}}
	res, err := p.Color(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Colors)
	assert.Equal(t, 2, res.LowerBound)
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	g := generate.Complete(5)
	p := Pipeline{Seed: greedy.DSatur{}, Refine: local.Annealing{Seed: 1, MaxIterations: 500}}
	res, err := p.Color(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Colors)
	// K5 has clique lower bound 5, so no reduction is attempted.
	assert.Empty(t, res.Stats["reductions"])
}

func TestPipelineMaxReductions(t *testing.T) {
	g := generate.Wheel(9)
	p := Pipeline{
		Seed:          greedy.DSatur{},
		Refine:        refinerFunc(func(k int) bool { return true }),
		MaxReductions: 1,
	}
	res, err := p.Color(context.Background(), g)
	require.NoError(t, err)
	reductions := res.Stats["reductions"].([]Reduction)
	assert.LessOrEqual(t, len(reductions), 1)
}

// refinerFunc fakes a refiner that returns the input coloring unchanged,
// reporting it valid only if ok(k).
type refinerFunc func(k int) bool

func (refinerFunc) Name() string { return "fake" }

func (f refinerFunc) Refine(_ context.Context, g *graph.Graph, k int, initial coloring.Coloring) (*coloring.Result, error) {
	res := coloring.NewResult("fake", g, initial.Clone())
	res.Valid = f(k) && res.Valid
	return res, nil
}

func TestPolicyChoose(t *testing.T) {
	p := DefaultPolicy()
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name string
		g    *graph.Graph
		want Strategy
	}{
		{"small", generate.Cycle(10), StrategyExact},
		{"dense", generate.Complete(30), StrategyDSaturAnnealing},
		{"sparse", generate.Cycle(100), StrategyDSaturTabu},
		{"medium", generate.ErdosRenyi(60, 0.3, rng), StrategyWelshPowellAnnealing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Choose(tt.g))
		})
	}
}

func TestPolicyDefaultsAndValidate(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, DefaultExactMaxVertices, p.ExactMaxVertices)
	assert.Equal(t, DefaultDenseThreshold, p.DenseThreshold)
	assert.Equal(t, DefaultSparseThreshold, p.SparseThreshold)
	assert.NoError(t, p.Validate())

	bad := []Policy{
		{SparseThreshold: 0.6, DenseThreshold: 0.4},
		{DenseThreshold: 1.5},
		{ExactMaxVertices: -1},
		{MaxReductions: -1},
	}
	for _, b := range bad {
		err := b.Validate()
		require.Error(t, err)
		assert.True(t, cerrors.Is(err, cerrors.ErrCodeConfiguration))
	}
}

func TestAdaptiveRoutes(t *testing.T) {
	a := Adaptive{
		Seed:      5,
		Annealing: local.Annealing{MaxIterations: 10000},
		Tabu:      local.Tabu{MaxIterations: 2000},
	}
	rng := rand.New(rand.NewSource(2))
	tests := []struct {
		name     string
		g        *graph.Graph
		strategy Strategy
		colors   int
	}{
		{"petersen exact", generate.Petersen(), StrategyExact, 3},
		{"C7 exact", generate.Cycle(7), StrategyExact, 3},
		{"K25 dense", generate.Complete(25), StrategyDSaturAnnealing, 25},
		{"C40 sparse", generate.Cycle(40), StrategyDSaturTabu, 2},
		{"er medium", generate.ErdosRenyi(50, 0.25, rng), StrategyWelshPowellAnnealing, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Color(context.Background(), tt.g)
			require.NoError(t, err)
			assert.Equal(t, coloring.AlgorithmAdaptive, res.Algorithm)
			assert.Equal(t, string(tt.strategy), res.Stats["strategy"])
			assert.True(t, res.Valid)
			if tt.colors > 0 {
				assert.Equal(t, tt.colors, res.Colors)
			}
		})
	}
}

func TestAdaptiveExactTimeoutFallsBack(t *testing.T) {
	g := generate.ErdosRenyi(40, 0.5, rand.New(rand.NewSource(8)))
	a := Adaptive{Policy: Policy{ExactMaxVertices: 50, ExactTimeout: time.Millisecond}}
	res, err := a.Color(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, string(StrategyExact), res.Stats["strategy"])

	ds, err := greedy.DSatur{}.Color(context.Background(), g)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Colors, ds.Colors)
}

func TestAdaptiveInvalidPolicy(t *testing.T) {
	_, err := Adaptive{Policy: Policy{MaxReductions: -1}}.Color(context.Background(), generate.Cycle(4))
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeConfiguration))
}

func TestAdaptiveReproducible(t *testing.T) {
	g := generate.ErdosRenyi(60, 0.2, rand.New(rand.NewSource(30)))
	a := Adaptive{Seed: 9, Annealing: local.Annealing{MaxIterations: 5000}}
	r1, err := a.Color(context.Background(), g)
	require.NoError(t, err)
	r2, err := a.Color(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, r1.Coloring, r2.Coloring)
}
