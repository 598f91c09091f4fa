// Package bench runs coloring engines over a matrix of graphs and seeds and
// summarizes the outcomes per algorithm.
//
// Runs are independent and execute concurrently, bounded by
// [Options.Concurrency]. Each run gets its own engine value and its own
// seed, so results are reproducible regardless of scheduling.
package bench

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/config"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/results"
)

// Instance is a named graph in the benchmark matrix.
type Instance struct {
	Name  string
	Graph *graph.Graph
}

// Options configures a benchmark.
type Options struct {
	// Algorithms to run; empty runs every registered algorithm.
	Algorithms []string
	// Seeds to run each randomized algorithm with; empty means {0}.
	// Deterministic algorithms run once per graph regardless.
	Seeds []int64
	// Config supplies engine parameters; its Algorithm and Seed are
	// overridden per run.
	Config config.Config
	// Timeout bounds each run; 0 means none.
	Timeout time.Duration
	// Concurrency caps parallel runs; 0 means GOMAXPROCS.
	Concurrency int
	// Progress is called after every finished run.
	Progress func(done, total int, rec results.Record)

	Logger *log.Logger
}

// Report is the outcome of a benchmark.
type Report struct {
	Records   []results.Record
	Summaries []Summary
	Elapsed   time.Duration
}

// Summary aggregates the runs of one algorithm. BestColors is the fewest
// colors of any valid run, or 0 if no run was valid.
type Summary struct {
	Algorithm     string  `json:"algorithm"`
	Runs          int     `json:"runs"`
	MeanColors    float64 `json:"mean_colors"`
	BestColors    int     `json:"best_colors"`
	MeanElapsedMS float64 `json:"mean_elapsed_ms"`
	ValidRate     float64 `json:"valid_rate"`
	OptimalRuns   int     `json:"optimal_runs"`
}

type job struct {
	instance  Instance
	algorithm string
	seed      int64
}

var deterministic = map[string]bool{
	coloring.AlgorithmWelshPowell: true,
	coloring.AlgorithmDSatur:      true,
	coloring.AlgorithmExact:       true,
}

// Run executes the benchmark. Exact runs on graphs above the search ceiling
// are dropped before scheduling, so Progress counts up to the number of
// runs actually made; any engine error aborts the remaining runs. Cancellation
// of ctx stops scheduling and is returned.
func Run(ctx context.Context, instances []Instance, opts Options) (*Report, error) {
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = config.Algorithms()
	}
	seeds := opts.Seeds
	if len(seeds) == 0 {
		seeds = []int64{0}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	var jobs []job
	for _, inst := range instances {
		for _, alg := range algorithms {
			cfg := opts.Config
			cfg.Algorithm = alg
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			if alg == coloring.AlgorithmExact {
				if err := cfg.ExactEngine().Accepts(inst.Graph); err != nil {
					logger.Warn("skipping run", "graph", inst.Name, "algorithm", alg, "reason", cerrors.UserMessage(err))
					continue
				}
			}
			if deterministic[alg] {
				jobs = append(jobs, job{inst, alg, 0})
				continue
			}
			for _, seed := range seeds {
				jobs = append(jobs, job{inst, alg, seed})
			}
		}
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	records := make([]results.Record, len(jobs))
	var (
		mu   sync.Mutex
		done int
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			rec, err := runJob(gctx, j, opts)
			if err != nil {
				return fmt.Errorf("%s on %s (seed %d): %w", j.algorithm, j.instance.Name, j.seed, err)
			}
			records[i] = rec
			logger.Debug("run finished", "graph", j.instance.Name, "algorithm", j.algorithm,
				"seed", j.seed, "colors", rec.Colors, "valid", rec.Valid)

			mu.Lock()
			done++
			n := done
			mu.Unlock()
			if opts.Progress != nil {
				opts.Progress(n, len(jobs), rec)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Records:   records,
		Summaries: Summarize(records),
		Elapsed:   time.Since(start),
	}
	logger.Info("benchmark finished", "runs", len(records), "duration", report.Elapsed)
	return report, nil
}

func runJob(ctx context.Context, j job, opts Options) (results.Record, error) {
	cfg := opts.Config
	cfg.Algorithm = j.algorithm
	cfg.Seed = j.seed
	engine, err := cfg.Engine()
	if err != nil {
		return results.Record{}, err
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	g := j.instance.Graph
	observability.Engine().OnRunStart(ctx, engine.Name(), g.N(), g.EdgeCount())
	start := time.Now()
	res, err := engine.Color(ctx, g)
	colors := 0
	if err == nil {
		colors = res.Colors
	}
	observability.Engine().OnRunComplete(ctx, engine.Name(), colors, time.Since(start), err)
	if err != nil {
		return results.Record{}, err
	}
	// Report under the requested name; pipelines name themselves after
	// their stages.
	res.Algorithm = j.algorithm
	return results.NewRecord(j.instance.Name, g.N(), g.EdgeCount(), j.seed, res), nil
}

// Summarize aggregates records per algorithm, ordered by mean colors and
// then by name.
func Summarize(records []results.Record) []Summary {
	byAlg := make(map[string]*Summary)
	var order []string
	for _, r := range records {
		s, ok := byAlg[r.Algorithm]
		if !ok {
			s = &Summary{Algorithm: r.Algorithm}
			byAlg[r.Algorithm] = s
			order = append(order, r.Algorithm)
		}
		s.Runs++
		s.MeanColors += float64(r.Colors)
		s.MeanElapsedMS += r.ElapsedMS
		if r.Valid {
			s.ValidRate++
			if s.BestColors == 0 || r.Colors < s.BestColors {
				s.BestColors = r.Colors
			}
		}
		if r.Optimal {
			s.OptimalRuns++
		}
	}

	out := make([]Summary, 0, len(order))
	for _, alg := range order {
		s := byAlg[alg]
		n := float64(s.Runs)
		s.MeanColors /= n
		s.MeanElapsedMS /= n
		s.ValidRate /= n
		out = append(out, *s)
	}
	slices.SortStableFunc(out, func(a, b Summary) int {
		if c := cmp.Compare(a.MeanColors, b.MeanColors); c != 0 {
			return c
		}
		return cmp.Compare(a.Algorithm, b.Algorithm)
	})
	return out
}
