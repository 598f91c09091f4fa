package bench

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/config"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/generate"
	"github.com/matzehuels/chromatic/pkg/results"
)

func instances() []Instance {
	return []Instance{
		{Name: "c5", Graph: generate.Cycle(5)},
		{Name: "petersen", Graph: generate.Petersen()},
		{Name: "k4", Graph: generate.Complete(4)},
	}
}

func smallConfig() config.Config {
	return config.Config{
		Annealing: config.Annealing{MaxIterations: 2000},
		Tabu:      config.Tabu{MaxIterations: 2000},
	}
}

func TestRunMatrix(t *testing.T) {
	var calls atomic.Int32
	report, err := Run(context.Background(), instances(), Options{
		Algorithms:  []string{coloring.AlgorithmDSatur, coloring.AlgorithmHybridDSTabu},
		Seeds:       []int64{1, 2},
		Config:      smallConfig(),
		Concurrency: 2,
		Progress: func(done, total int, _ results.Record) {
			calls.Add(1)
			assert.LessOrEqual(t, done, total)
		},
	})
	require.NoError(t, err)

	// dsatur once per graph, the hybrid once per graph and seed
	require.Len(t, report.Records, 3+3*2)
	assert.Equal(t, int32(9), calls.Load())
	for _, r := range report.Records {
		assert.NotEmpty(t, r.RunID)
		assert.Contains(t, []string{coloring.AlgorithmDSatur, coloring.AlgorithmHybridDSTabu}, r.Algorithm)
	}

	require.Len(t, report.Summaries, 2)
	for _, s := range report.Summaries {
		assert.Equal(t, 1.0, s.ValidRate, s.Algorithm)
		assert.GreaterOrEqual(t, s.BestColors, 3)
	}
}

func TestRunIsReproducible(t *testing.T) {
	opts := Options{
		Algorithms: []string{coloring.AlgorithmAnnealing},
		Seeds:      []int64{3, 4},
		Config:     smallConfig(),
	}
	a, err := Run(context.Background(), instances(), opts)
	require.NoError(t, err)
	opts.Concurrency = 1
	b, err := Run(context.Background(), instances(), opts)
	require.NoError(t, err)

	require.Len(t, b.Records, len(a.Records))
	for i := range a.Records {
		assert.Equal(t, a.Records[i].Graph, b.Records[i].Graph)
		assert.Equal(t, a.Records[i].Seed, b.Records[i].Seed)
		assert.Equal(t, a.Records[i].Colors, b.Records[i].Colors)
		assert.Equal(t, a.Records[i].Conflicts, b.Records[i].Conflicts)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := Run(context.Background(), instances(), Options{Algorithms: []string{"magic"}})
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidAlgorithm), "got %v", err)
}

func TestRunSkipsOversizedExact(t *testing.T) {
	insts := append(instances(), Instance{Name: "k50", Graph: generate.Complete(50)})
	var mu sync.Mutex
	var lastDone, lastTotal int
	report, err := Run(context.Background(), insts, Options{
		Algorithms: []string{coloring.AlgorithmExact},
		Progress: func(done, total int, _ results.Record) {
			mu.Lock()
			defer mu.Unlock()
			lastDone, lastTotal = max(lastDone, done), total
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Records, 3)
	assert.Equal(t, 3, lastTotal, "skipped runs are not scheduled")
	assert.Equal(t, lastTotal, lastDone, "progress reaches the total")
	for _, r := range report.Records {
		assert.NotEqual(t, "k50", r.Graph)
		assert.True(t, r.Optimal, r.Graph)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, instances(), Options{Algorithms: []string{coloring.AlgorithmDSatur}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	records := []results.Record{
		{Algorithm: "a", Colors: 4, Valid: true, ElapsedMS: 2},
		{Algorithm: "a", Colors: 3, Valid: true, ElapsedMS: 4, Optimal: true},
		{Algorithm: "b", Colors: 2, Valid: false, ElapsedMS: 1},
		{Algorithm: "b", Colors: 5, Valid: true, ElapsedMS: 1},
	}
	got := Summarize(records)
	require.Len(t, got, 2)

	// equal means fall back to name order
	assert.Equal(t, Summary{
		Algorithm: "a", Runs: 2, MeanColors: 3.5, BestColors: 3, MeanElapsedMS: 3, ValidRate: 1, OptimalRuns: 1,
	}, got[0])
	assert.Equal(t, Summary{
		Algorithm: "b", Runs: 2, MeanColors: 3.5, BestColors: 5, MeanElapsedMS: 1, ValidRate: 0.5,
	}, got[1])

	records = append(records, results.Record{Algorithm: "c", Colors: 1, Valid: true})
	assert.Equal(t, "c", Summarize(records)[0].Algorithm)
}

func TestSuite(t *testing.T) {
	a, b := Suite(1), Suite(1)
	require.Len(t, a, len(b))
	names := make(map[string]bool)
	for i := range a {
		assert.False(t, names[a[i].Name], "duplicate %s", a[i].Name)
		names[a[i].Name] = true
		assert.Equal(t, a[i].Graph.Edges(), b[i].Graph.Edges(), a[i].Name)
	}
	assert.True(t, names["gnp100_20"])
}
