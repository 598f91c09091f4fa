// Package pipeline provides the load → color → render pipeline shared by
// the CLI and the HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a graph file (DIMACS, edge list, JSON, timetable CSV) or
//     accept an in-memory graph
//  2. Color: Run the configured engine, memoized by graph hash and engine
//     options
//  3. Render: Produce artifacts (JSON, CSV, DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "queen8_8.col",
//	    Config:  config.Config{Algorithm: "dsatur+tabu", Seed: 7},
//	    Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/config"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/render"
	"github.com/matzehuels/chromatic/pkg/results"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

const (
	// DefaultAlgorithm is the engine used when none is configured.
	DefaultAlgorithm = coloring.AlgorithmAdaptive

	// DefaultPalette is the render palette.
	DefaultPalette = render.PaletteDefault

	// DefaultPNGScale is the PNG resolution multiplier.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatCSV:  true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the coloring pipeline.
type Options struct {
	// Load options
	Input       string `json:"input,omitempty"`        // Graph file path
	InputFormat string `json:"input_format,omitempty"` // Empty detects from extension
	Name        string `json:"name,omitempty"`         // Graph name on result records

	// Color options
	Config  config.Config `json:"-"`
	Refresh bool          `json:"refresh,omitempty"` // Recolor even when a cached result exists

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Palette  string   `json:"palette,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Graph  *graph.Graph     `json:"-"` // Used instead of Input when set
	Engine coloring.Colorer `json:"-"` // Overrides Config.Algorithm when set
	Logger *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the colored graph.
	Graph *graph.Graph

	// GraphHash is the structural hash of the graph.
	GraphHash string

	// Coloring is the engine result.
	Coloring *coloring.Result

	// Record is the persisted summary of the run.
	Record results.Record

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Edges      int
	LoadTime   time.Duration
	ColorTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ColorHit  bool // Whether the coloring came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return cerrors.New(cerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, csv, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForColor(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a graph source is present.
func (o *Options) ValidateForLoad() error {
	if o.Graph == nil && o.Input == "" {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "input or graph is required")
	}
	if o.Name == "" {
		o.Name = defaultName(o.Input)
	}
	o.setLogger()
	return nil
}

// ValidateForColor validates the engine configuration.
func (o *Options) ValidateForColor() error {
	if o.Config.Algorithm == "" {
		o.Config.Algorithm = DefaultAlgorithm
	}
	o.setLogger()
	if o.Engine != nil {
		return nil
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := render.LookupPalette(o.Palette); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "palette")
	}
	return nil
}

// ResultKeyOpts returns cache key options for the coloring stage.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	c := o.Config
	algorithm := c.Algorithm
	if o.Engine != nil {
		algorithm = o.Engine.Name()
	}
	opts := cache.ResultKeyOpts{
		Algorithm:   strings.ToLower(algorithm),
		K:           c.K,
		Seed:        c.Seed,
		MaxVertices: c.Exact.MaxVertices,
	}
	if c.Exact.Timeout > 0 {
		opts.Timeout = c.Exact.Timeout.D().String()
	}
	switch opts.Algorithm {
	case coloring.AlgorithmAnnealing, coloring.AlgorithmHybrid, coloring.AlgorithmHybridDSSA, coloring.AlgorithmHybridWPSA:
		a := c.Annealing
		opts.MaxIterations, opts.T0, opts.Alpha = a.MaxIterations, a.T0, a.Alpha
		opts.StallLimit, opts.CoolEvery, opts.Sampling = a.StallLimit, a.CoolEvery, a.Sampling
	case coloring.AlgorithmTabu, coloring.AlgorithmHybridDSTabu:
		tb := c.Tabu
		opts.MaxIterations, opts.Tenure, opts.StallLimit = tb.MaxIterations, tb.Tenure, tb.StallLimit
		opts.Candidates, opts.Sampling = tb.Candidates, tb.Sampling
	case coloring.AlgorithmAdaptive:
		opts.Policy = fmt.Sprintf("%+v|%+v|%+v|%+v", c.Adaptive, c.Hybrid, c.Annealing, c.Tabu)
	}
	switch opts.Algorithm {
	case coloring.AlgorithmHybrid, coloring.AlgorithmHybridDSSA, coloring.AlgorithmHybridWPSA, coloring.AlgorithmHybridDSTabu:
		opts.MaxReductions = c.Hybrid.MaxReductions
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Palette: o.Palette,
		Labels:  o.Labels,
	}
}

// Cacheable reports whether the coloring stage may be memoized. Runs with
// a wall-clock deadline are not, since their outcome depends on timing.
func (o *Options) Cacheable() bool {
	return o.Engine == nil && o.Config.Timeout == 0
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func defaultName(path string) string {
	if path == "" {
		return "graph"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
