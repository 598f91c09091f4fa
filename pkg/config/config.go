package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/exact"
	"github.com/matzehuels/chromatic/pkg/coloring/hybrid"
	"github.com/matzehuels/chromatic/pkg/coloring/local"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

// Config is the on-disk engine configuration.
type Config struct {
	// Algorithm selects the engine; empty means adaptive.
	Algorithm string `toml:"algorithm" yaml:"algorithm"`
	// K is the color budget of the local-search engines; 0 derives it.
	K int `toml:"k" yaml:"k"`
	// Seed seeds every randomized engine; 0 selects the default seed.
	Seed int64 `toml:"seed" yaml:"seed"`
	// Timeout bounds the whole run; 0 means no deadline.
	Timeout Duration `toml:"timeout" yaml:"timeout"`

	Exact     Exact     `toml:"exact" yaml:"exact"`
	Annealing Annealing `toml:"annealing" yaml:"annealing"`
	Tabu      Tabu      `toml:"tabu" yaml:"tabu"`
	Hybrid    Hybrid    `toml:"hybrid" yaml:"hybrid"`
	Adaptive  Adaptive  `toml:"adaptive" yaml:"adaptive"`
}

// Exact configures the exhaustive search.
type Exact struct {
	MaxVertices int      `toml:"max_vertices" yaml:"max_vertices"`
	Timeout     Duration `toml:"timeout" yaml:"timeout"`
}

// Annealing configures simulated annealing.
type Annealing struct {
	T0            float64 `toml:"t0" yaml:"t0"`
	Alpha         float64 `toml:"alpha" yaml:"alpha"`
	MaxIterations int     `toml:"max_iterations" yaml:"max_iterations"`
	StallLimit    int     `toml:"stall_limit" yaml:"stall_limit"`
	CoolEvery     int     `toml:"cool_every" yaml:"cool_every"`
	Sampling      int     `toml:"sampling" yaml:"sampling"`
}

// Tabu configures tabu search.
type Tabu struct {
	MaxIterations int `toml:"max_iterations" yaml:"max_iterations"`
	Tenure        int `toml:"tenure" yaml:"tenure"`
	StallLimit    int `toml:"stall_limit" yaml:"stall_limit"`
	Candidates    int `toml:"candidates" yaml:"candidates"`
	Sampling      int `toml:"sampling" yaml:"sampling"`
}

// Hybrid configures the seed-then-refine pipelines.
type Hybrid struct {
	MaxReductions int `toml:"max_reductions" yaml:"max_reductions"`
}

// Adaptive configures the adaptive router. Its reduction cap comes from
// [Hybrid].
type Adaptive struct {
	ExactMaxVertices int      `toml:"exact_max_vertices" yaml:"exact_max_vertices"`
	DenseThreshold   float64  `toml:"dense_threshold" yaml:"dense_threshold"`
	SparseThreshold  float64  `toml:"sparse_threshold" yaml:"sparse_threshold"`
	ExactTimeout     Duration `toml:"exact_timeout" yaml:"exact_timeout"`
}

// Default returns a configuration selecting the adaptive engine with
// every engine default.
func Default() Config {
	return Config{Algorithm: coloring.AlgorithmAdaptive}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) configuration file.
// Fields absent from the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, cerrors.Wrap(cerrors.ErrCodeConfiguration, err, "read config %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cfg, err = ParseTOML(data)
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		return Config{}, cerrors.New(cerrors.ErrCodeInvalidFormat, "config %s: unsupported extension %q (want .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ParseTOML decodes a TOML configuration.
func ParseTOML(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, cerrors.Wrap(cerrors.ErrCodeConfiguration, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, cerrors.New(cerrors.ErrCodeConfiguration, "unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// ParseYAML decodes a YAML configuration.
func ParseYAML(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, cerrors.Wrap(cerrors.ErrCodeConfiguration, err, "parse yaml")
	}
	return cfg, nil
}

// Validate checks the algorithm name and every engine section.
func (c Config) Validate() error {
	if _, ok := registry[c.algorithm()]; !ok {
		return cerrors.New(cerrors.ErrCodeInvalidAlgorithm, "unknown algorithm %q (available: %s)",
			c.Algorithm, strings.Join(Algorithms(), ", "))
	}
	switch {
	case c.Timeout < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "timeout must not be negative, got %v", c.Timeout.D())
	case c.Exact.MaxVertices < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "exact.max_vertices must not be negative, got %d", c.Exact.MaxVertices)
	case c.Exact.Timeout < 0:
		return cerrors.New(cerrors.ErrCodeConfiguration, "exact.timeout must not be negative, got %v", c.Exact.Timeout.D())
	}
	if err := c.AnnealingEngine().Validate(); err != nil {
		return err
	}
	if err := c.TabuEngine().Validate(); err != nil {
		return err
	}
	return c.Policy().Validate()
}

func (c Config) algorithm() string {
	if c.Algorithm == "" {
		return coloring.AlgorithmAdaptive
	}
	return strings.ToLower(c.Algorithm)
}

// ExactEngine returns the configured exact search.
func (c Config) ExactEngine() exact.Search {
	return exact.Search{
		MaxVertices: c.Exact.MaxVertices,
		Timeout:     c.Exact.Timeout.D(),
	}
}

// AnnealingEngine returns the configured annealing engine.
func (c Config) AnnealingEngine() local.Annealing {
	return local.Annealing{
		K:             c.K,
		T0:            c.Annealing.T0,
		Alpha:         c.Annealing.Alpha,
		MaxIterations: c.Annealing.MaxIterations,
		StallLimit:    c.Annealing.StallLimit,
		CoolEvery:     c.Annealing.CoolEvery,
		Sampling:      c.Annealing.Sampling,
		Seed:          c.Seed,
	}
}

// TabuEngine returns the configured tabu engine.
func (c Config) TabuEngine() local.Tabu {
	return local.Tabu{
		K:             c.K,
		MaxIterations: c.Tabu.MaxIterations,
		Tenure:        c.Tabu.Tenure,
		StallLimit:    c.Tabu.StallLimit,
		Candidates:    c.Tabu.Candidates,
		Sampling:      c.Tabu.Sampling,
		Seed:          c.Seed,
	}
}

// Policy returns the adaptive routing policy.
func (c Config) Policy() hybrid.Policy {
	return hybrid.Policy{
		ExactMaxVertices: c.Adaptive.ExactMaxVertices,
		DenseThreshold:   c.Adaptive.DenseThreshold,
		SparseThreshold:  c.Adaptive.SparseThreshold,
		MaxReductions:    c.Hybrid.MaxReductions,
		ExactTimeout:     c.Adaptive.ExactTimeout.D(),
	}
}
