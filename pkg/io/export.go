package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// WriteJSON encodes g in the format read by [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{
		Vertices: g.N(),
		Edges:    make([][2]int, g.EdgeCount()),
	}
	for i, e := range g.Edges() {
		out.Edges[i] = [2]int{e.U, e.V}
	}
	if g.HasLabels() {
		out.Labels = make([]string, g.N())
		for v := range out.Labels {
			out.Labels[v] = g.Label(v)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDIMACS encodes g in DIMACS edge format with 1-indexed vertices.
func WriteDIMACS(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p edge %d %d\n", g.N(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "e %d %d\n", e.U+1, e.V+1)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dimacs: %w", err)
	}
	return nil
}

// Export writes g to path in format f, detecting the format from the
// extension when f is [FormatAuto]. Only the JSON and DIMACS formats can
// be written.
func Export(g *graph.Graph, path string, f Format) error {
	if f == FormatAuto {
		var err error
		if f, err = DetectFormat(path); err != nil {
			return err
		}
	}
	var write func(*graph.Graph, io.Writer) error
	switch f {
	case FormatJSON:
		write = WriteJSON
	case FormatDIMACS:
		write = WriteDIMACS
	default:
		return fmt.Errorf("export %s: format %q is read-only", path, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(g, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
