package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/coloring"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/render"
	"github.com/matzehuels/chromatic/pkg/results"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output base path
	formats  string  // comma-separated output formats
	format   string  // input graph format
	palette  string  // render palette
	labels   bool    // show vertex labels
	pngScale float64 // PNG resolution multiplier
	noCache  bool
}

// renderCommand creates the render command for drawing an existing coloring.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		formats:  pipeline.FormatSVG,
		palette:  pipeline.DefaultPalette,
		pngScale: pipeline.DefaultPNGScale,
	}

	cmd := &cobra.Command{
		Use:   "render [graph] [coloring.json]",
		Short: "Render a coloring of a graph",
		Long: `Render a coloring of a graph to DOT, SVG, PNG or PDF.

The coloring file is either the JSON output of 'chromatic color' or a bare
JSON array with one color per vertex (-1 for uncolored). Conflicting edges
are drawn in red; uncolored vertices are dashed.

PNG and PDF output require rsvg-convert on the PATH.`,
		Example: `  chromatic render queen8_8.col queen8_8.json
  chromatic render exams.csv slots.json -f svg,pdf --labels --palette pastel`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: coloring file without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.format, "input-format", "", "graph format (default: from extension)")
	cmd.Flags().StringVar(&opts.palette, "palette", opts.palette, "render palette: "+strings.Join(render.PaletteNames(), ", "))
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "show vertex labels")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the graph and the coloring and writes the drawings.
func (c *CLI) runRender(cmd *cobra.Command, graphPath, coloringPath string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	g, err := pipeline.Load(ctx, graphPath, opts.format)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d vertices, %d edges", g.N(), g.EdgeCount())

	data, err := os.ReadFile(coloringPath)
	if os.IsNotExist(err) {
		return cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "coloring %s", coloringPath)
	}
	if err != nil {
		return err
	}
	res, err := readColoring(g, data)
	if err != nil {
		return fmt.Errorf("%s: %w", coloringPath, err)
	}
	if !res.Valid {
		logger.Warnf("Coloring has %d conflicts; conflicting edges are drawn in red", res.Conflicts)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats:  splitList(opts.formats),
		Palette:  opts.palette,
		Labels:   opts.labels,
		PNGScale: opts.pngScale,
		Logger:   c.Logger,
	}
	rec := results.NewRecord(graphName(graphPath), g.N(), g.EdgeCount(), 0, res)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, g, rec, res, popts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(basePath(opts.output, coloringPath), popts.Formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d colors", res.Colors)
	for _, p := range paths {
		printFile(p)
	}
	printStats(g.N(), g.EdgeCount(), cacheHit)
	return nil
}

// readColoring decodes either a color command JSON output or a bare color
// array, and checks it against g.
func readColoring(g *graph.Graph, data []byte) (*coloring.Result, error) {
	var c coloring.Coloring
	algorithm := "input"

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "decode coloring")
		}
	} else {
		var out pipeline.Output
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "decode coloring")
		}
		if out.Result == nil {
			return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "no result in coloring file")
		}
		c, algorithm = out.Result.Coloring, out.Result.Algorithm
	}

	if len(c) != g.N() {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput,
			"coloring has %d entries, graph has %d vertices", len(c), g.N())
	}
	return coloring.NewResult(algorithm, g, c), nil
}
