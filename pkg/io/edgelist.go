package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// ReadEdgeList decodes whitespace-separated 0-indexed vertex pairs, one per
// line. Text after "#" is ignored. The vertex count is the largest id + 1.
func ReadEdgeList(r io.Reader) (*graph.Graph, error) {
	var (
		edges  []graph.Edge
		n      int
		lineNo int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		e, err := parsePair(fields, 0)
		if err != nil || len(fields) > 3 {
			return nil, formatError(lineNo, "expected \"u v\", got %q", sc.Text())
		}
		edges = append(edges, e)
		n = max(n, e.U+1, e.V+1)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	return graph.New(n, edges)
}
