package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// ReadDIMACS decodes a DIMACS graph from r. Both "p edge" and "p col"
// headers are accepted. Without a header the vertex count is the largest
// vertex id seen. Edge lines may use either "e U V" or a bare "U V".
func ReadDIMACS(r io.Reader) (*graph.Graph, error) {
	var (
		n      = -1
		maxID  int
		edges  []graph.Edge
		lineNo int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "c") {
			continue
		}
		switch fields[0] {
		case "p":
			if len(fields) < 3 {
				return nil, formatError(lineNo, "malformed problem line %q", sc.Text())
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil || v < 0 {
				return nil, formatError(lineNo, "invalid vertex count %q", fields[2])
			}
			n = v
		case "e":
			e, err := parsePair(fields[1:], 1)
			if err != nil {
				return nil, formatError(lineNo, "%v", err)
			}
			edges = append(edges, e)
			maxID = max(maxID, e.U+1, e.V+1)
		case "n", "x", "d", "v":
			// Node weights and solver hints are not used.
		default:
			e, err := parsePair(fields, 1)
			if err != nil {
				return nil, formatError(lineNo, "unexpected line %q", sc.Text())
			}
			edges = append(edges, e)
			maxID = max(maxID, e.U+1, e.V+1)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dimacs: %w", err)
	}
	if n < 0 {
		n = maxID
	}
	return graph.New(n, edges)
}

// ImportDIMACS reads a DIMACS graph file.
func ImportDIMACS(path string) (*graph.Graph, error) {
	return Import(path, FormatDIMACS)
}

// parsePair parses two vertex ids and shifts them by -base.
func parsePair(fields []string, base int) (graph.Edge, error) {
	if len(fields) < 2 {
		return graph.Edge{}, fmt.Errorf("edge needs two vertices, got %d fields", len(fields))
	}
	u, err := strconv.Atoi(fields[0])
	if err != nil {
		return graph.Edge{}, fmt.Errorf("invalid vertex %q", fields[0])
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return graph.Edge{}, fmt.Errorf("invalid vertex %q", fields[1])
	}
	return graph.Edge{U: u - base, V: v - base}, nil
}

func formatError(line int, format string, args ...any) error {
	return cerrors.New(cerrors.ErrCodeInvalidFormat, "line %d: %s", line, fmt.Sprintf(format, args...))
}
