package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	"github.com/matzehuels/chromatic/pkg/config"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/generate"
	"github.com/matzehuels/chromatic/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"csv", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "data/queen5_5.col"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Name != "queen5_5" {
		t.Errorf("Name = %q, want queen5_5", opts.Name)
	}
	if opts.Config.Algorithm != DefaultAlgorithm {
		t.Errorf("Algorithm = %q, want %q", opts.Config.Algorithm, DefaultAlgorithm)
	}
	if opts.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", opts.Palette, DefaultPalette)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no input", Options{}},
		{"bad algorithm", Options{Input: "g.col", Config: config.Config{Algorithm: "magic"}}},
		{"bad format", Options{Input: "g.col", Formats: []string{"gif"}}},
		{"bad palette", Options{Input: "g.col", Palette: "neon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "g.col"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if first.Name != opts.Name || first.Config.Algorithm != opts.Config.Algorithm || first.Palette != opts.Palette {
		t.Error("second call changed options")
	}
}

func TestResultKeyOpts(t *testing.T) {
	keyer := cache.NewDefaultKeyer()
	key := func(o Options) string { return keyer.ResultKey("h", o.ResultKeyOpts()) }

	base := Options{Config: config.Config{Algorithm: "annealing", Seed: 1}}
	seed := Options{Config: config.Config{Algorithm: "annealing", Seed: 2}}
	alpha := Options{Config: config.Config{Algorithm: "annealing", Seed: 1, Annealing: config.Annealing{Alpha: 0.9}}}
	tabuOnly := Options{Config: config.Config{Algorithm: "annealing", Seed: 1, Tabu: config.Tabu{Tenure: 9}}}

	if key(base) == key(seed) {
		t.Error("seed should change the key")
	}
	if key(base) == key(alpha) {
		t.Error("annealing alpha should change the key")
	}
	if key(base) != key(tabuOnly) {
		t.Error("tabu settings should not change an annealing key")
	}

	adaptive := Options{Config: config.Config{Algorithm: "adaptive"}}
	tuned := Options{Config: config.Config{Algorithm: "adaptive", Adaptive: config.Adaptive{ExactMaxVertices: 5}}}
	if key(adaptive) == key(tuned) {
		t.Error("policy should change an adaptive key")
	}
}

func TestResultKeyOptsCoversEngineSettings(t *testing.T) {
	keyer := cache.NewDefaultKeyer()
	key := func(c config.Config) string {
		o := Options{Config: c}
		return keyer.ResultKey("h", o.ResultKeyOpts())
	}

	tests := []struct {
		name string
		a, b config.Config
	}{
		{"annealing sampling",
			config.Config{Algorithm: "annealing", Annealing: config.Annealing{Sampling: 1}},
			config.Config{Algorithm: "annealing", Annealing: config.Annealing{Sampling: 50}}},
		{"annealing cool every",
			config.Config{Algorithm: "annealing", Annealing: config.Annealing{CoolEvery: 1}},
			config.Config{Algorithm: "annealing", Annealing: config.Annealing{CoolEvery: 10}}},
		{"tabu candidates",
			config.Config{Algorithm: "tabu", Tabu: config.Tabu{Candidates: 0}},
			config.Config{Algorithm: "tabu", Tabu: config.Tabu{Candidates: 5}}},
		{"tabu sampling",
			config.Config{Algorithm: "tabu", Tabu: config.Tabu{Sampling: 1}},
			config.Config{Algorithm: "tabu", Tabu: config.Tabu{Sampling: 20}}},
		{"hybrid reductions",
			config.Config{Algorithm: "dsatur+annealing", Hybrid: config.Hybrid{MaxReductions: 1}},
			config.Config{Algorithm: "dsatur+annealing"}},
		{"tabu hybrid reductions",
			config.Config{Algorithm: "dsatur+tabu", Hybrid: config.Hybrid{MaxReductions: 2}},
			config.Config{Algorithm: "dsatur+tabu", Hybrid: config.Hybrid{MaxReductions: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if key(tt.a) == key(tt.b) {
				t.Error("different engine settings share a cache key")
			}
		})
	}

	plain := config.Config{Algorithm: "annealing"}
	reduced := config.Config{Algorithm: "annealing", Hybrid: config.Hybrid{MaxReductions: 4}}
	if key(plain) != key(reduced) {
		t.Error("hybrid settings should not change a plain annealing key")
	}
}

func TestExecuteSamplingMissesCache(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	opts := Options{
		Graph:  generate.Mycielski(4),
		Name:   "myciel4",
		Config: config.Config{Algorithm: coloring.AlgorithmAnnealing, Seed: 3, Annealing: config.Annealing{Sampling: 1, MaxIterations: 2000}},
	}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	opts.Config.Annealing.Sampling = 50
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.CacheInfo.ColorHit {
		t.Error("run with a different sampling interval was served from the cache")
	}
}

func TestCacheable(t *testing.T) {
	if !(&Options{}).Cacheable() {
		t.Error("plain options should be cacheable")
	}
	if (&Options{Config: config.Config{Timeout: config.Duration(time.Second)}}).Cacheable() {
		t.Error("runs with a deadline should not be cacheable")
	}
	if (&Options{Engine: greedy.DSatur{}}).Cacheable() {
		t.Error("custom engines should not be cacheable")
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecuteCachesColoring(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	opts := Options{
		Graph:  generate.Petersen(),
		Name:   "petersen",
		Config: config.Config{Algorithm: coloring.AlgorithmExact},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.ColorHit {
		t.Error("first run should miss the cache")
	}
	if !first.Coloring.Valid || first.Coloring.Colors != 3 {
		t.Errorf("got %d colors, valid=%v", first.Coloring.Colors, first.Coloring.Valid)
	}
	if first.Record.Graph != "petersen" || first.Record.RunID == "" {
		t.Errorf("unexpected record: %+v", first.Record)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.ColorHit {
		t.Error("second run should hit the cache")
	}
	for _, key := range []string{"explored", "initial_colors"} {
		if _, ok := second.Coloring.Stats[key].(int); !ok {
			t.Errorf("cached stat %s = %T, want int", key, second.Coloring.Stats[key])
		}
	}
	if second.Record.RunID == first.Record.RunID {
		t.Error("every run gets its own run id")
	}
	for v := range first.Coloring.Coloring {
		if first.Coloring.Coloring[v] != second.Coloring.Coloring[v] {
			t.Fatal("cached coloring differs")
		}
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.ColorHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.col")
	data := "c triangle\np edge 3 3\ne 1 2\ne 2 3\ne 1 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:   path,
		Config:  config.Config{Algorithm: coloring.AlgorithmExact},
		Formats: []string{FormatJSON, FormatCSV, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Record.Graph != "triangle" {
		t.Errorf("Graph = %q, want triangle", res.Record.Graph)
	}
	if res.Coloring.Colors != 3 || !res.Coloring.Optimal {
		t.Errorf("colors=%d optimal=%v", res.Coloring.Colors, res.Coloring.Optimal)
	}

	var out Output
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &out); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if out.Metrics.Colors != 3 || !out.Metrics.Valid {
		t.Errorf("metrics = %+v", out.Metrics)
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatCSV]), "run_id,") {
		t.Error("csv artifact missing header")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "graph G {") {
		t.Error("dot artifact is not a DOT graph")
	}
}

func TestExecuteMissingFile(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "nope.col")})
	if !cerrors.Is(err, cerrors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestRenderCachesArtifacts(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{
		Graph:   generate.Cycle(5),
		Config:  config.Config{Algorithm: coloring.AlgorithmDSatur},
		Formats: []string{FormatDOT},
	}
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first render should miss")
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second render should hit")
	}
	if string(first.Artifacts[FormatDOT]) != string(second.Artifacts[FormatDOT]) {
		t.Error("cached DOT differs")
	}
}

type countingHooks struct {
	observability.NoopEngineHooks
	mu     sync.Mutex
	starts int
	ends   int
}

func (h *countingHooks) OnRunStart(context.Context, string, int, int) {
	h.mu.Lock()
	h.starts++
	h.mu.Unlock()
}

func (h *countingHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	h.ends++
	h.mu.Unlock()
}

func TestColorEmitsEngineHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetEngineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	_, err := r.Color(context.Background(), generate.Complete(4), Options{Engine: greedy.WelshPowell{}})
	if err != nil {
		t.Fatal(err)
	}
	if hooks.starts != 1 || hooks.ends != 1 {
		t.Errorf("starts=%d ends=%d, want 1/1", hooks.starts, hooks.ends)
	}
}
