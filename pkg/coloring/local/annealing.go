package local

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/matzehuels/chromatic/pkg/coloring"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Annealing is the simulated annealing engine. Zero-valued fields take the
// package defaults.
type Annealing struct {
	// K is the color budget; 0 derives it from DSatur (DSatur colors - 1,
	// at least 1). Negative values are a CONFIGURATION error.
	K int
	// T0 is the starting temperature; 0 selects DefaultT0.
	T0 float64
	// Alpha is the cooling factor, strictly between 0 and 1; 0 selects
	// DefaultAlpha.
	Alpha float64
	// MaxIterations bounds the number of proposed moves. 0 is the unset
	// zero value and selects DefaultMaxIterations; only negative values
	// are a CONFIGURATION error.
	MaxIterations int
	// StallLimit stops the run after this many iterations without a new
	// best conflict count; 0 disables it.
	StallLimit int
	// CoolEvery applies Alpha once per this many iterations.
	CoolEvery int
	// Sampling records every Sampling-th iteration in the history.
	Sampling int

	Seed    int64
	Rand    *rand.Rand
	Initial coloring.Coloring
}

func (Annealing) Name() string { return coloring.AlgorithmAnnealing }

// WithDefaults returns a copy with zero-valued fields replaced by defaults.
func (a Annealing) WithDefaults() Annealing {
	if a.T0 == 0 {
		a.T0 = DefaultT0
	}
	if a.Alpha == 0 {
		a.Alpha = DefaultAlpha
	}
	a.MaxIterations = defaultInt(a.MaxIterations, DefaultMaxIterations)
	a.CoolEvery = defaultInt(a.CoolEvery, DefaultCoolEvery)
	a.Sampling = defaultInt(a.Sampling, DefaultSampling)
	return a
}

// Validate checks the configuration after defaults are applied.
func (a Annealing) Validate() error {
	a = a.WithDefaults()
	switch {
	case a.K < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "color budget must be positive, got %d", a.K)
	case a.T0 <= 0 || math.IsNaN(a.T0):
		return cerrors.New(cerrors.ErrCodeConfiguration, "initial temperature must be positive, got %v", a.T0)
	case !(a.Alpha > 0 && a.Alpha < 1):
		return cerrors.New(cerrors.ErrCodeConfiguration, "alpha must be in (0,1), got %v", a.Alpha)
	case a.CoolEvery < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "cool-every must be positive, got %d", a.CoolEvery)
	case a.StallLimit < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "stall limit must not be negative, got %d", a.StallLimit)
	}
	return checkIterations(a.MaxIterations)
}

// Color runs simulated annealing on g and returns the best coloring seen.
func (a Annealing) Color(ctx context.Context, g *graph.Graph) (*coloring.Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a = a.WithDefaults()
	start := time.Now()
	rng := source(a.Rand, a.Seed)

	k, initial, err := budget(g, a.K, a.Initial, rng)
	if err != nil {
		return nil, err
	}

	n := g.N()
	s := coloring.NewState(g, k, initial)
	best := s.Snapshot()
	bestConflicts := s.Conflicts()
	history := coloring.NewHistory(a.Sampling)
	history.Record(0, bestConflicts)

	temp := a.T0
	it, stall, accepted := 0, 0, 0
	interrupted := false
	for it < a.MaxIterations && bestConflicts > 0 && k > 1 {
		if cancelled(ctx, it) {
			interrupted = true
			break
		}
		it++

		v := rng.Intn(n)
		c := rng.Intn(k - 1)
		if c >= s.Color(v) {
			c++
		}
		if d := s.Delta(v, c); d <= 0 || rng.Float64() < math.Exp(-float64(d)/temp) {
			s.Move(v, c)
			accepted++
		}

		if s.Conflicts() < bestConflicts {
			bestConflicts = s.Conflicts()
			s.CopyTo(best)
			stall = 0
		} else {
			stall++
		}
		if it%a.CoolEvery == 0 {
			temp *= a.Alpha
		}
		history.Record(it, s.Conflicts())

		if a.StallLimit > 0 && stall >= a.StallLimit {
			break
		}
	}

	res := coloring.NewResult(coloring.AlgorithmAnnealing, g, best)
	res.Iterations = it
	res.Elapsed = time.Since(start)
	res.Complete = !interrupted
	res.History = history
	res.SetStat("k", k)
	res.SetStat("accepted", accepted)
	res.SetStat("final_temperature", temp)
	return res, nil
}
