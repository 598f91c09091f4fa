package results

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the column order of [WriteCSV].
var CSVHeader = []string{
	"run_id", "graph", "vertices", "edges", "algorithm", "colors", "valid",
	"conflicts", "iterations", "elapsed_ms", "lower_bound", "optimal",
	"complete", "seed", "timestamp",
}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.RunID,
			r.Graph,
			strconv.Itoa(r.Vertices),
			strconv.Itoa(r.Edges),
			r.Algorithm,
			strconv.Itoa(r.Colors),
			strconv.FormatBool(r.Valid),
			strconv.Itoa(r.Conflicts),
			strconv.Itoa(r.Iterations),
			strconv.FormatFloat(r.ElapsedMS, 'f', 3, 64),
			strconv.Itoa(r.LowerBound),
			strconv.FormatBool(r.Optimal),
			strconv.FormatBool(r.Complete),
			strconv.FormatInt(r.Seed, 10),
			r.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteHistoryCSV writes the conflict trace of every record that has one,
// one row per sample: run_id, algorithm, iteration, conflicts.
func WriteHistoryCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "algorithm", "iteration", "conflicts"}); err != nil {
		return err
	}
	for _, r := range records {
		for it, conflicts := range r.History.All() {
			row := []string{r.RunID, r.Algorithm, strconv.Itoa(it), strconv.Itoa(conflicts)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
