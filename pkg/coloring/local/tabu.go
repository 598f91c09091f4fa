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

// Tabu is the tabu search engine. Zero-valued fields take the package
// defaults.
type Tabu struct {
	// K is the color budget; 0 derives it from DSatur (DSatur colors - 1,
	// at least 1). Negative values are a CONFIGURATION error.
	K int
	// MaxIterations bounds the number of moves. 0 selects
	// DefaultMaxIterations; negative values are a CONFIGURATION error.
	MaxIterations int
	// Tenure is the base tabu tenure. The effective tenure after a move is
	// Tenure + floor(0.6 * conflicts). 0 picks max(7, n/10).
	Tenure int
	// StallLimit stops the run after this many moves without a new best
	// conflict count; 0 disables it.
	StallLimit int
	// Candidates caps how many conflicting vertices are examined per move;
	// 0 examines all of them.
	Candidates int
	// Sampling records every Sampling-th iteration in the history.
	Sampling int

	Seed    int64
	Rand    *rand.Rand
	Initial coloring.Coloring
}

func (Tabu) Name() string { return coloring.AlgorithmTabu }

// WithDefaults returns a copy with zero-valued fields replaced by defaults.
// The adaptive tenure depends on the graph and is resolved in Color.
func (t Tabu) WithDefaults() Tabu {
	t.MaxIterations = defaultInt(t.MaxIterations, DefaultMaxIterations)
	t.Sampling = defaultInt(t.Sampling, DefaultSampling)
	return t
}

// Validate checks the configuration after defaults are applied.
func (t Tabu) Validate() error {
	t = t.WithDefaults()
	switch {
	case t.K < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "color budget must be positive, got %d", t.K)
	case t.Tenure < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "tenure must not be negative, got %d", t.Tenure)
	case t.StallLimit < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "stall limit must not be negative, got %d", t.StallLimit)
	case t.Candidates < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "candidates must not be negative, got %d", t.Candidates)
	}
	return checkIterations(t.MaxIterations)
}

// BaseTenure returns the tenure used for g: Tenure if set, else max(7, n/10).
func (t Tabu) BaseTenure(g *graph.Graph) int {
	if t.Tenure > 0 {
		return t.Tenure
	}
	return max(MinTenure, g.N()/10)
}

type move struct{ v, c int }

// moveKind says why selectMove chose a move.
type moveKind int

const (
	moveFree      moveKind = iota // not tabu
	moveAspirated                 // tabu, but beats the best conflict count
	moveForced                    // every move was tabu; best one taken anyway
)

// selectMove returns the lowest-delta recoloring of a candidate vertex.
// Tabu moves are admissible only when they bring the conflict count below
// bestConflicts. Ties are broken uniformly at random.
func selectMove(s *coloring.State, candidates []int, k, it int, tabuUntil []int, bestConflicts int, rng *rand.Rand) (move, moveKind) {
	var (
		pick, fallback     move
		pickDelta          = math.MaxInt
		fallbackDelta      = math.MaxInt
		pickTies, fallTies int
		aspirated          bool
	)
	for _, v := range candidates {
		cur := s.Color(v)
		for c := range k {
			if c == cur {
				continue
			}
			d := s.Delta(v, c)
			if d < fallbackDelta {
				fallback, fallbackDelta, fallTies = move{v, c}, d, 1
			} else if d == fallbackDelta {
				fallTies++
				if rng.Intn(fallTies) == 0 {
					fallback = move{v, c}
				}
			}

			isTabu := tabuUntil[v*k+c] > it
			if isTabu && s.Conflicts()+d >= bestConflicts {
				continue
			}
			if d < pickDelta {
				pick, pickDelta, pickTies, aspirated = move{v, c}, d, 1, isTabu
			} else if d == pickDelta {
				pickTies++
				if rng.Intn(pickTies) == 0 {
					pick, aspirated = move{v, c}, isTabu
				}
			}
		}
	}

	switch {
	case pickTies == 0:
		return fallback, moveForced
	case aspirated:
		return pick, moveAspirated
	}
	return pick, moveFree
}

// Color runs tabu search on g and returns the best coloring seen.
func (t Tabu) Color(ctx context.Context, g *graph.Graph) (*coloring.Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t = t.WithDefaults()
	start := time.Now()
	rng := source(t.Rand, t.Seed)

	k, initial, err := budget(g, t.K, t.Initial, rng)
	if err != nil {
		return nil, err
	}

	s := coloring.NewState(g, k, initial)
	best := s.Snapshot()
	bestConflicts := s.Conflicts()
	history := coloring.NewHistory(t.Sampling)
	history.Record(0, bestConflicts)

	tenure := t.BaseTenure(g)
	tabuUntil := make([]int, g.N()*k)
	var scratch []int

	it, stall, overrides, resets := 0, 0, 0, 0
	interrupted := false
	for it < t.MaxIterations && bestConflicts > 0 && k > 1 {
		if cancelled(ctx, it) {
			interrupted = true
			break
		}
		it++

		candidates := s.ConflictingVertices()
		if t.Candidates > 0 && len(candidates) > t.Candidates {
			scratch = sample(append(scratch[:0], candidates...), t.Candidates, rng)
			candidates = scratch
		}

		pick, kind := selectMove(s, candidates, k, it, tabuUntil, bestConflicts, rng)
		switch kind {
		case moveForced:
			resets++
		case moveAspirated:
			overrides++
		}

		old := s.Color(pick.v)
		s.Move(pick.v, pick.c)
		tabuUntil[pick.v*k+old] = it + tenure + int(0.6*float64(s.Conflicts()))

		if s.Conflicts() < bestConflicts {
			bestConflicts = s.Conflicts()
			s.CopyTo(best)
			stall = 0
		} else {
			stall++
		}
		history.Record(it, s.Conflicts())

		if t.StallLimit > 0 && stall >= t.StallLimit {
			break
		}
	}

	res := coloring.NewResult(coloring.AlgorithmTabu, g, best)
	res.Iterations = it
	res.Elapsed = time.Since(start)
	res.Complete = !interrupted
	res.History = history
	res.SetStat("k", k)
	res.SetStat("tenure", tenure)
	res.SetStat("tabu_overrides", overrides)
	res.SetStat("tabu_resets", resets)
	return res, nil
}

// sample moves m randomly chosen elements of xs to its front and returns them.
func sample(xs []int, m int, rng *rand.Rand) []int {
	for i := range m {
		j := i + rng.Intn(len(xs)-i)
		xs[i], xs[j] = xs[j], xs[i]
	}
	return xs[:m]
}
