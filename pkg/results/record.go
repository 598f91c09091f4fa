package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chromatic/pkg/coloring"
)

// Record summarizes one engine run.
type Record struct {
	RunID      string    `json:"run_id" bson:"_id"`
	Graph      string    `json:"graph" bson:"graph"`
	Vertices   int       `json:"vertices" bson:"vertices"`
	Edges      int       `json:"edges" bson:"edges"`
	Algorithm  string    `json:"algorithm" bson:"algorithm"`
	Colors     int       `json:"colors" bson:"colors"`
	Valid      bool      `json:"valid" bson:"valid"`
	Conflicts  int       `json:"conflicts" bson:"conflicts"`
	Iterations int       `json:"iterations" bson:"iterations"`
	ElapsedMS  float64   `json:"elapsed_ms" bson:"elapsed_ms"`
	LowerBound int       `json:"lower_bound" bson:"lower_bound"`
	Optimal    bool      `json:"optimal" bson:"optimal"`
	Complete   bool      `json:"complete" bson:"complete"`
	Seed       int64     `json:"seed" bson:"seed"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`

	// History is the sampled conflict trace, if the engine kept one.
	History *coloring.History `json:"history,omitempty" bson:"-"`
}

// NewRecord builds a record for res with a fresh run ID.
func NewRecord(name string, vertices, edges int, seed int64, res *coloring.Result) Record {
	return Record{
		RunID:      uuid.NewString(),
		Graph:      name,
		Vertices:   vertices,
		Edges:      edges,
		Algorithm:  res.Algorithm,
		Colors:     res.Colors,
		Valid:      res.Valid,
		Conflicts:  res.Conflicts,
		Iterations: res.Iterations,
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		LowerBound: res.LowerBound,
		Optimal:    res.Optimal,
		Complete:   res.Complete,
		Seed:       seed,
		Timestamp:  time.Now().UTC(),
		History:    res.History,
	}
}
