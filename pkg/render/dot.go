package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Palette fills color classes. Nil selects the default palette.
	Palette Palette
	// Labels shows vertex labels (when the graph has them) instead of ids.
	Labels bool
	// ShowColor appends the color class to each node label.
	ShowColor bool
	// Layout is the Graphviz engine hint ("neato", "circo", "dot", ...).
	// Empty selects neato.
	Layout string
}

// ToDOT converts a colored graph to Graphviz DOT. c may be nil or partial;
// it must otherwise have one entry per vertex.
func ToDOT(g *graph.Graph, c coloring.Coloring, opts Options) string {
	palette := opts.Palette
	if palette == nil {
		palette = Palettes[PaletteDefault]
	}
	layout := opts.Layout
	if layout == "" {
		layout = "neato"
	}
	colorOf := func(v int) int {
		if v < len(c) {
			return c[v]
		}
		return coloring.Uncolored
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", layout)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=14, penwidth=1.5];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for v := range g.N() {
		label := fmtLabel(g, v, colorOf(v), opts)
		attrs := fmtAttrs(colorOf(v), palette, label)
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		cu, cv := colorOf(e.U), colorOf(e.V)
		if cu != coloring.Uncolored && cu == cv {
			fmt.Fprintf(&buf, "  %d -- %d [color=red, penwidth=3];\n", e.U, e.V)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, v, color int, opts Options) string {
	label := strconv.Itoa(v)
	if opts.Labels {
		if l := g.Label(v); l != "" {
			label = l
		}
	}
	if opts.ShowColor && color != coloring.Uncolored {
		label += fmt.Sprintf("\n#%d", color)
	}
	return label
}

func fmtAttrs(color int, palette Palette, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if color == coloring.Uncolored {
		return append(attrs, "fillcolor=white", "style=\"filled,dashed\"")
	}
	return append(attrs, fmt.Sprintf("fillcolor=%q", palette.Color(color)))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
