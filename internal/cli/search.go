package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/exact"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// heartbeatInterval is how often a long search logs that it is still running.
const heartbeatInterval = 10 * time.Second

// exactSearch wraps exact.Search with progress logging. It logs the initial
// incumbent, every improvement and a periodic heartbeat.
//
// It is not safe for concurrent use; it maintains internal state for logging.
type exactSearch struct {
	exact.Search
	prog                     *progress
	logger                   *log.Logger
	lastExplored, lastPruned int
	lastBest                 int
	start, lastLog           time.Time
}

// newExactSearch creates a logging exact search with the logger from ctx.
func newExactSearch(ctx context.Context, s exact.Search) *exactSearch {
	logger := loggerFromContext(ctx)
	e := &exactSearch{
		logger:   logger,
		lastBest: -1,
	}
	e.Search = s
	e.Search.Progress = e.onProgress
	return e
}

// onProgress is called by the underlying search on every incumbent
// improvement and periodically while searching.
func (e *exactSearch) onProgress(explored, pruned, best int) {
	e.lastExplored, e.lastPruned = explored, pruned
	if best <= 0 {
		return
	}

	switch {
	case e.lastBest < 0:
		e.logger.Infof("Initial: %d colors (explored: %d, pruned: %d)", best, explored, pruned)
		e.lastLog = time.Now()
	case best < e.lastBest:
		e.logger.Infof("Improved: %d colors (↓%d)", best, e.lastBest-best)
		e.lastLog = time.Now()
	default:
		if time.Since(e.lastLog) >= heartbeatInterval {
			elapsed := time.Since(e.start).Truncate(time.Second)
			e.logger.Infof("Searching... %v elapsed, %d colors (explored: %d, pruned: %d)", elapsed, best, explored, pruned)
			e.lastLog = time.Now()
		}
	}
	e.lastBest = best
}

// Color implements coloring.Colorer and logs the final outcome.
func (e *exactSearch) Color(ctx context.Context, g *graph.Graph) (*coloring.Result, error) {
	e.start, e.lastBest = time.Now(), -1
	e.prog = newProgress(e.logger)

	res, err := e.Search.Color(ctx, g)
	if err != nil {
		return nil, err
	}
	e.prog.done(fmt.Sprintf("Search complete: %d colors", res.Colors), "optimal", res.Optimal)
	e.logger.Infof("Best: %d colors, lower bound %d (explored: %d, pruned: %d)",
		res.Colors, res.LowerBound, e.lastExplored, e.lastPruned)
	if !res.Optimal {
		e.logger.Warn("Search stopped before proving optimality; try increasing the timeout (--timeout)")
	}
	return res, nil
}
