// Package config loads engine configuration files and turns them into
// ready-to-run engines.
//
// Files are TOML or YAML, chosen by extension:
//
//	algorithm = "adaptive"
//	seed      = 7
//	timeout   = "30s"
//
//	[annealing]
//	t0             = 10.0
//	alpha          = 0.995
//	max_iterations = 200000
//
//	[adaptive]
//	exact_max_vertices = 20
//	exact_timeout      = "2s"
//
// Every field is optional; zero values select the engine defaults. Unknown
// keys are rejected so typos do not silently fall back to defaults.
//
// [Config.Engine] resolves the algorithm name against the registry
// ([Algorithms]) and returns a [coloring.Colorer] configured from the file.
package config
