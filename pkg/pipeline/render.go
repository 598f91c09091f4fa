package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/render"
	"github.com/matzehuels/chromatic/pkg/results"
)

// Output is the JSON artifact of a run: the record summary, the full
// engine result and the graph metrics.
type Output struct {
	Record  results.Record   `json:"record"`
	Result  *coloring.Result `json:"result"`
	Metrics coloring.Metrics `json:"metrics"`
}

// Render produces every format in opts.Formats.
func Render(ctx context.Context, g *graph.Graph, rec results.Record, res *coloring.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := renderFormats(ctx, g, rec, res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, g *graph.Graph, rec results.Record, res *coloring.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	if slices.Contains(opts.Formats, FormatJSON) {
		data, err := json.MarshalIndent(Output{
			Record:  rec,
			Result:  res,
			Metrics: coloring.Summarize(g, res.Coloring),
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		artifacts[FormatJSON] = data
	}

	if slices.Contains(opts.Formats, FormatCSV) {
		var buf bytes.Buffer
		if err := results.WriteCSV(&buf, []results.Record{rec}); err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		artifacts[FormatCSV] = buf.Bytes()
	}

	needsDOT := slices.ContainsFunc(opts.Formats, func(f string) bool {
		return f == FormatDOT || f == FormatSVG || f == FormatPNG || f == FormatPDF
	})
	if !needsDOT {
		return artifacts, nil
	}

	palette, err := render.LookupPalette(opts.Palette)
	if err != nil {
		return nil, err
	}
	dot := render.ToDOT(g, res.Coloring, render.Options{Palette: palette, Labels: opts.Labels})
	if slices.Contains(opts.Formats, FormatDOT) {
		artifacts[FormatDOT] = []byte(dot)
	}

	needsSVG := slices.ContainsFunc(opts.Formats, func(f string) bool {
		return f == FormatSVG || f == FormatPNG || f == FormatPDF
	})
	if !needsSVG {
		return artifacts, nil
	}

	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	if slices.Contains(opts.Formats, FormatSVG) {
		artifacts[FormatSVG] = svg
	}
	if slices.Contains(opts.Formats, FormatPNG) {
		png, err := render.ToPNG(ctx, svg, opts.PNGScale)
		if err != nil {
			return nil, fmt.Errorf("png: %w", err)
		}
		artifacts[FormatPNG] = png
	}
	if slices.Contains(opts.Formats, FormatPDF) {
		pdf, err := render.ToPDF(ctx, svg)
		if err != nil {
			return nil, fmt.Errorf("pdf: %w", err)
		}
		artifacts[FormatPDF] = pdf
	}
	return artifacts, nil
}

// cacheableFormat reports whether an artifact depends only on the graph and
// the coloring. JSON and CSV embed the run record and are rebuilt per run.
func cacheableFormat(format string) bool {
	return format != FormatJSON && format != FormatCSV
}
