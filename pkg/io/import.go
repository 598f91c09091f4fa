package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Format identifies a graph file format.
type Format string

const (
	FormatAuto      Format = ""
	FormatDIMACS    Format = "dimacs"
	FormatEdgeList  Format = "edgelist"
	FormatJSON      Format = "json"
	FormatTimetable Format = "timetable"
)

// Formats lists the explicit formats accepted by [Import].
var Formats = []Format{FormatDIMACS, FormatEdgeList, FormatJSON, FormatTimetable}

// DetectFormat maps a file extension to a format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".col", ".dimacs":
		return FormatDIMACS, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatTimetable, nil
	case ".txt", ".edges", ".el":
		return FormatEdgeList, nil
	}
	return "", cerrors.New(cerrors.ErrCodeInvalidFormat,
		"cannot detect graph format of %s; pass one of %v", path, Formats)
}

// ParseFormat validates a user-supplied format name. An empty name is
// [FormatAuto].
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == FormatAuto {
		return f, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", cerrors.New(cerrors.ErrCodeInvalidFormat, "unknown graph format %q", name)
}

// Read decodes a graph in format f from r. f must not be [FormatAuto].
func Read(r io.Reader, f Format) (*graph.Graph, error) {
	switch f {
	case FormatDIMACS:
		return ReadDIMACS(r)
	case FormatEdgeList:
		return ReadEdgeList(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatTimetable:
		return ReadTimetable(r)
	}
	return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "unknown graph format %q", f)
}

// Import reads the graph file at path. With [FormatAuto] the format is
// detected from the extension.
func Import(path string, f Format) (*graph.Graph, error) {
	if f == FormatAuto {
		var err error
		if f, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	g, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

type jsonGraph struct {
	Vertices int      `json:"vertices"`
	Edges    [][2]int `json:"edges"`
	Labels   []string `json:"labels,omitempty"`
}

// ReadJSON decodes a graph from r:
//
//	{"vertices": 4, "edges": [[0, 1], [1, 2], [2, 3]], "labels": ["a", "b", "c", "d"]}
//
// "labels" is optional; when present it must have one entry per vertex.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "decode json graph")
	}
	if data.Labels != nil && len(data.Labels) != data.Vertices {
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat,
			"json graph has %d labels for %d vertices", len(data.Labels), data.Vertices)
	}

	b, err := graph.NewBuilder(data.Vertices)
	if err != nil {
		return nil, err
	}
	for i, e := range data.Edges {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	for v, l := range data.Labels {
		b.SetLabel(v, l)
	}
	return b.Build(), nil
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string) (*graph.Graph, error) {
	return Import(path, FormatJSON)
}
