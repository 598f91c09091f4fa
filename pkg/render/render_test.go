package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func path3(t *testing.T) *graph.Graph {
	t.Helper()
	b, err := graph.NewBuilder(3)
	if err != nil {
		t.Fatal(err)
	}
	_ = b.AddEdge(0, 1)
	_ = b.AddEdge(1, 2)
	b.SetLabel(0, "math")
	return b.Build()
}

func TestToDOT(t *testing.T) {
	g := path3(t)
	dot := ToDOT(g, coloring.Coloring{0, 1, 0}, Options{Labels: true})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`0 [label="math", fillcolor="#e6194b"];`,
		`1 [label="1", fillcolor="#3cb44b"];`,
		"0 -- 1;",
		"1 -- 2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT should be undirected")
	}
}

func TestToDOTConflictsAndUncolored(t *testing.T) {
	g := path3(t)
	dot := ToDOT(g, coloring.Coloring{0, 0, coloring.Uncolored}, Options{ShowColor: true})

	if !strings.Contains(dot, "0 -- 1 [color=red, penwidth=3];") {
		t.Errorf("conflict edge not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `2 [label="2", fillcolor=white, style="filled,dashed"];`) {
		t.Errorf("uncolored vertex not dashed:\n%s", dot)
	}
	if !strings.Contains(dot, `label="0\n#0"`) {
		t.Errorf("color class not shown:\n%s", dot)
	}
}

func TestToDOTNilColoring(t *testing.T) {
	dot := ToDOT(path3(t), nil, Options{})
	if strings.Count(dot, "fillcolor=white") != 3 {
		t.Errorf("all vertices should be uncolored:\n%s", dot)
	}
}

func TestPalette(t *testing.T) {
	p := Palette{"a", "b"}
	tests := []struct {
		c    int
		want string
	}{
		{0, "a"},
		{1, "b"},
		{2, "a"},
		{-1, "white"},
	}
	for _, tt := range tests {
		if got := p.Color(tt.c); got != tt.want {
			t.Errorf("Color(%d) = %q, want %q", tt.c, got, tt.want)
		}
	}

	if _, err := LookupPalette(""); err != nil {
		t.Errorf("empty name should select default: %v", err)
	}
	if _, err := LookupPalette("nope"); err == nil {
		t.Error("unknown palette should fail")
	}
	if names := PaletteNames(); len(names) != 3 || names[0] != PaletteDefault {
		t.Errorf("PaletteNames() = %v", names)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("unexpected svg tag: %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	g := path3(t)
	svg, err := RenderSVG(context.Background(), ToDOT(g, coloring.Coloring{0, 1, 0}, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
