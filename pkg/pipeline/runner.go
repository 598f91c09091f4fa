package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/results"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → color → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.GraphHash = cache.GraphHash(g)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Vertices = g.N()
	result.Stats.Edges = g.EdgeCount()

	r.Logger.Info("loaded graph",
		"name", opts.Name,
		"vertices", g.N(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Color
	colorStart := time.Now()
	res, colorHit, err := r.ColorWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	result.Coloring = res
	result.Record = results.NewRecord(opts.Name, g.N(), g.EdgeCount(), opts.Config.Seed, res)
	result.Stats.ColorTime = time.Since(colorStart)
	result.CacheInfo.ColorHit = colorHit

	r.Logger.Info("colored graph",
		"algorithm", res.Algorithm,
		"colors", res.Colors,
		"valid", res.Valid,
		"cached", colorHit,
		"duration", result.Stats.ColorTime)

	// Stage 3: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.Record, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ColorWithCacheInfo colors g with caching and returns cache hit info.
// Results of runs with a deadline are never cached.
func (r *Runner) ColorWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*coloring.Result, bool, error) {
	if err := opts.ValidateForColor(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ResultKey(cache.GraphHash(g), opts.ResultKeyOpts())
	cacheable := opts.Cacheable()

	// Try cache first (unless refresh requested)
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached coloring.Result
			if err := json.Unmarshal(data, &cached); err == nil && len(cached.Coloring) == g.N() {
				observability.Cache().OnCacheHit(ctx, "result")
				return &cached, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	res, err := r.Color(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cancelled runs are partial; only finished runs are worth reusing.
	if cacheable && res.Complete {
		if data, err := json.Marshal(res); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.ResultTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "result", len(data))
			}
		}
	}

	return res, false, nil // Cache miss
}

// Color runs the configured engine without touching the cache.
func (r *Runner) Color(ctx context.Context, g *graph.Graph, opts Options) (*coloring.Result, error) {
	if err := opts.ValidateForColor(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	engine := opts.Engine
	if engine == nil {
		var err error
		if engine, err = opts.Config.Engine(); err != nil {
			return nil, err
		}
	}
	if d := opts.Config.Timeout.D(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	opts.Logger.Debug("running engine", "engine", engine.Name(), "vertices", g.N())
	observability.Engine().OnRunStart(ctx, engine.Name(), g.N(), g.EdgeCount())
	start := time.Now()
	res, err := engine.Color(ctx, g)
	colors := 0
	if err == nil {
		colors = res.Colors
	}
	observability.Engine().OnRunComplete(ctx, engine.Name(), colors, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if !res.Complete {
		opts.Logger.Warn("engine stopped early; result is the best found so far",
			"engine", engine.Name(), "colors", res.Colors, "valid", res.Valid)
	}
	return res, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, rec results.Record, res *coloring.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Graph-only formats are keyed by graph and coloring, not by run id.
	resultHash := cache.Hash(append([]byte(cache.GraphHash(g)), fmt.Sprint(res.Coloring)...))

	artifacts := make(map[string][]byte)
	var missing []string
	for _, format := range opts.Formats {
		if !cacheableFormat(format) {
			missing = append(missing, format)
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			missing = append(missing, format)
		}
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, g, rec, res, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !cacheableFormat(format) {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
