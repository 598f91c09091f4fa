package results

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/coloring"
)

func sampleResult() *coloring.Result {
	h := coloring.NewHistory(2)
	for it := 0; it <= 4; it++ {
		h.Record(it, 4-it)
	}
	return &coloring.Result{
		Algorithm:  coloring.AlgorithmAnnealing,
		Colors:     3,
		Valid:      true,
		Iterations: 4,
		Elapsed:    1500 * time.Microsecond,
		LowerBound: 3,
		Complete:   true,
		History:    h,
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord("petersen", 10, 15, 7, sampleResult())
	assert.Len(t, r.RunID, 36)
	assert.Equal(t, "petersen", r.Graph)
	assert.Equal(t, coloring.AlgorithmAnnealing, r.Algorithm)
	assert.Equal(t, 3, r.Colors)
	assert.InDelta(t, 1.5, r.ElapsedMS, 1e-9)
	assert.Equal(t, int64(7), r.Seed)
	assert.False(t, r.Timestamp.IsZero())

	other := NewRecord("petersen", 10, 15, 7, sampleResult())
	assert.NotEqual(t, r.RunID, other.RunID)
}

func TestWriteCSV(t *testing.T) {
	records := []Record{
		NewRecord("a", 3, 3, 1, sampleResult()),
		NewRecord("b", 4, 6, 2, sampleResult()),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, "a", rows[1][1])
	assert.Equal(t, "true", rows[1][6])
	assert.Equal(t, "1.500", rows[1][9])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	rec := NewRecord("a", 3, 3, 1, sampleResult())
	require.NoError(t, WriteJSON(&buf, []Record{rec}))
	var back []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 1)
	assert.Equal(t, rec.RunID, back[0].RunID)
	assert.Equal(t, []int{4, 2, 0}, back[0].History.Conflicts())
}

func TestWriteHistoryCSV(t *testing.T) {
	withHistory := NewRecord("a", 3, 3, 1, sampleResult())
	without := NewRecord("b", 3, 3, 1, &coloring.Result{Algorithm: coloring.AlgorithmDSatur})

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, []Record{withHistory, without}))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{withHistory.RunID, coloring.AlgorithmAnnealing, "2", "2"}, rows[2])
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r1 := Record{RunID: "1", Graph: "g", Algorithm: "dsatur", Timestamp: base}
	r2 := Record{RunID: "2", Graph: "g", Algorithm: "tabu", Timestamp: base.Add(time.Minute)}
	r3 := Record{RunID: "3", Graph: "h", Algorithm: "dsatur", Timestamp: base.Add(2 * time.Minute)}
	require.NoError(t, s.Save(ctx, r1, r2, r3))

	got, err := s.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "tabu", got.Algorithm)

	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "3", all[0].RunID)

	byGraph, _ := s.List(ctx, Filter{Graph: "g"})
	assert.Len(t, byGraph, 2)
	byAlg, _ := s.List(ctx, Filter{Algorithm: "dsatur", Limit: 1})
	require.Len(t, byAlg, 1)
	assert.Equal(t, "3", byAlg[0].RunID)

	// Replacing by run ID
	r1.Colors = 9
	require.NoError(t, s.Save(ctx, r1))
	got, _ = s.Get(ctx, "1")
	assert.Equal(t, 9, got.Colors)

	assert.Error(t, s.Save(ctx, Record{}))
}
