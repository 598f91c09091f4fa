package config

import (
	"slices"
	"strings"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/coloring/greedy"
	"github.com/matzehuels/chromatic/pkg/coloring/hybrid"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

// Descriptions are one-line summaries of the registered algorithms.
var Descriptions = map[string]string{
	coloring.AlgorithmWelshPowell:  "Greedy coloring in descending degree order",
	coloring.AlgorithmDSatur:       "Greedy coloring by saturation degree",
	coloring.AlgorithmExact:        "Branch-and-bound search for the chromatic number",
	coloring.AlgorithmAnnealing:    "Simulated annealing at a fixed color budget",
	coloring.AlgorithmTabu:         "Tabu search at a fixed color budget",
	coloring.AlgorithmHybrid:       "DSatur seed refined by annealing, reducing colors",
	coloring.AlgorithmHybridDSSA:   "DSatur seed refined by annealing, reducing colors",
	coloring.AlgorithmHybridWPSA:   "Welsh-Powell seed refined by annealing, reducing colors",
	coloring.AlgorithmHybridDSTabu: "DSatur seed refined by tabu search, reducing colors",
	coloring.AlgorithmAdaptive:     "Picks an engine from graph size and density",
}

var registry = map[string]func(Config) coloring.Colorer{
	coloring.AlgorithmWelshPowell:  func(Config) coloring.Colorer { return greedy.WelshPowell{} },
	coloring.AlgorithmDSatur:       func(Config) coloring.Colorer { return greedy.DSatur{} },
	coloring.AlgorithmExact:        func(c Config) coloring.Colorer { return c.ExactEngine() },
	coloring.AlgorithmAnnealing:    func(c Config) coloring.Colorer { return c.AnnealingEngine() },
	coloring.AlgorithmTabu:         func(c Config) coloring.Colorer { return c.TabuEngine() },
	coloring.AlgorithmHybrid:       func(c Config) coloring.Colorer { return c.pipeline(hybrid.StrategyDSaturAnnealing) },
	coloring.AlgorithmHybridDSSA:   func(c Config) coloring.Colorer { return c.pipeline(hybrid.StrategyDSaturAnnealing) },
	coloring.AlgorithmHybridWPSA:   func(c Config) coloring.Colorer { return c.pipeline(hybrid.StrategyWelshPowellAnnealing) },
	coloring.AlgorithmHybridDSTabu: func(c Config) coloring.Colorer { return c.pipeline(hybrid.StrategyDSaturTabu) },
	coloring.AlgorithmAdaptive:     func(c Config) coloring.Colorer { return c.adaptive() },
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Engine returns the configured engine for the selected algorithm.
func (c Config) Engine() (coloring.Colorer, error) {
	build, ok := registry[c.algorithm()]
	if !ok {
		return nil, cerrors.New(cerrors.ErrCodeInvalidAlgorithm, "unknown algorithm %q (available: %s)",
			c.Algorithm, strings.Join(Algorithms(), ", "))
	}
	return build(c), nil
}

// Lookup returns the default-configured engine for name.
func Lookup(name string) (coloring.Colorer, error) {
	return Config{Algorithm: name}.Engine()
}

func (c Config) adaptive() hybrid.Adaptive {
	return hybrid.Adaptive{
		Policy:    c.Policy(),
		Seed:      c.Seed,
		Annealing: c.AnnealingEngine(),
		Tabu:      c.TabuEngine(),
	}
}

func (c Config) pipeline(s hybrid.Strategy) hybrid.Pipeline {
	return c.adaptive().Pipeline(s)
}
