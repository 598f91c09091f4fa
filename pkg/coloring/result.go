package coloring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"time"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// Result is what every engine returns.
type Result struct {
	Algorithm string   `json:"algorithm"`
	Coloring  Coloring `json:"coloring"`

	// Colors is the number of distinct colors in Coloring.
	Colors int `json:"colors"`
	// Valid is true when Coloring is a proper coloring of the input graph.
	Valid     bool `json:"valid"`
	Conflicts int  `json:"conflicts"`

	// Iterations counts the main-loop steps of the engine: vertices colored
	// for greedy engines, branch nodes for exact search, moves evaluated for
	// local search.
	Iterations int           `json:"iterations"`
	Elapsed    time.Duration `json:"elapsed_ns"`

	// Complete is false when the engine stopped on cancellation or deadline.
	Complete bool `json:"complete"`
	// Optimal is true only when exact search proved the color count minimal.
	Optimal    bool `json:"optimal"`
	LowerBound int  `json:"lower_bound,omitempty"`

	History *History `json:"history,omitempty"`
	// Stats holds engine-specific statistics. Decoding from JSON restores
	// top-level integer values as int and other numbers as float64, so a
	// cached result carries the same types as a fresh one. Nested values
	// (such as hybrid reductions) come back as generic JSON values.
	Stats map[string]any `json:"stats,omitempty"`
}

// NewResult fills the derived fields (Colors, Valid, Conflicts) of a result
// for c on g. Complete defaults to true.
func NewResult(algorithm string, g *graph.Graph, c Coloring) *Result {
	conflicts := ConflictCount(g, c)
	return &Result{
		Algorithm: algorithm,
		Coloring:  c,
		Colors:    ColorsUsed(c),
		Valid:     conflicts == 0 && len(c) == g.N() && c.Complete(),
		Conflicts: conflicts,
		Complete:  true,
	}
}

// SetStat records an engine-specific statistic.
func (r *Result) SetStat(key string, value any) {
	if r.Stats == nil {
		r.Stats = make(map[string]any)
	}
	r.Stats[key] = value
}

// UnmarshalJSON decodes a result, restoring integer statistics as int.
func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	var raw struct {
		plain
		Stats map[string]json.RawMessage `json:"stats,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result(raw.plain)
	r.Stats = nil
	for key, msg := range raw.Stats {
		v, err := decodeStat(msg)
		if err != nil {
			return fmt.Errorf("stat %q: %w", key, err)
		}
		r.SetStat(key, v)
	}
	return nil
}

func decodeStat(msg json.RawMessage) (any, error) {
	if i, err := strconv.Atoi(string(bytes.TrimSpace(msg))); err == nil {
		return i, nil
	}
	var v any
	err := json.Unmarshal(msg, &v)
	return v, err
}

// Better reports whether r is preferable to other: valid beats invalid,
// then fewer conflicts, then fewer colors. A nil other is always worse.
func (r *Result) Better(other *Result) bool {
	if other == nil {
		return true
	}
	if r.Valid != other.Valid {
		return r.Valid
	}
	if r.Conflicts != other.Conflicts {
		return r.Conflicts < other.Conflicts
	}
	return r.Colors < other.Colors
}

// History is the conflict-count trajectory of one local-search run.
// It records every Interval-th iteration (and always iteration 0).
type History struct {
	interval   int
	iterations []int
	conflicts  []int
}

// NewHistory returns an empty history sampling every interval iterations.
// An interval below 1 is treated as 1.
func NewHistory(interval int) *History {
	return &History{interval: max(interval, 1)}
}

// Record stores the conflict count observed at iteration if it falls on the
// sampling interval.
func (h *History) Record(iteration, conflicts int) {
	if h == nil || iteration%h.interval != 0 {
		return
	}
	h.iterations = append(h.iterations, iteration)
	h.conflicts = append(h.conflicts, conflicts)
}

// Interval returns the sampling interval.
func (h *History) Interval() int { return h.interval }

// Len returns the number of samples.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.conflicts)
}

// Last returns the most recently recorded conflict count.
func (h *History) Last() (int, bool) {
	if h.Len() == 0 {
		return 0, false
	}
	return h.conflicts[len(h.conflicts)-1], true
}

// All yields (iteration, conflicts) pairs in recording order.
func (h *History) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := range h.Len() {
			if !yield(h.iterations[i], h.conflicts[i]) {
				return
			}
		}
	}
}

// Conflicts returns a copy of the recorded conflict counts.
func (h *History) Conflicts() []int {
	if h == nil {
		return nil
	}
	return append([]int(nil), h.conflicts...)
}

type historyJSON struct {
	Interval   int   `json:"interval"`
	Iterations []int `json:"iterations"`
	Conflicts  []int `json:"conflicts"`
}

func (h *History) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyJSON{h.interval, h.iterations, h.conflicts})
}

func (h *History) UnmarshalJSON(data []byte) error {
	var raw historyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.interval = max(raw.Interval, 1)
	h.iterations = raw.Iterations
	h.conflicts = raw.Conflicts
	return nil
}
