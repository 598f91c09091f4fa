// Package render draws colored graphs.
//
// # DOT
//
// [ToDOT] emits an undirected Graphviz graph in which every vertex is filled
// with the palette entry of its color class. Uncolored vertices are drawn
// white with a dashed outline, and edges whose endpoints share a color are
// drawn thick and red so conflicts stand out in partial colorings.
//
//	dot := render.ToDOT(g, res.Coloring, render.Options{Labels: true})
//	svg, err := render.RenderSVG(dot)
//
// # Palettes
//
// [Palettes] lists the built-in palettes by name. Colors beyond the end of
// a palette wrap around, so large colorings reuse hues.
//
// # Other formats
//
// [ToPDF] and [ToPNG] convert SVG output with the external rsvg-convert
// tool (librsvg).
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
