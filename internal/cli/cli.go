// Package cli implements the chromatic command-line interface.
package cli

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/buildinfo"
	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/config"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chromatic"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Chromatic colors graphs with few colors",
		Long: `Chromatic is a CLI tool for graph coloring. It runs greedy, exact,
local-search and hybrid engines over DIMACS, edge-list, JSON and timetable
graphs, benchmarks them against each other, and renders colored graphs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.algorithmsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// engineFlags are the engine overrides shared by color and bench.
type engineFlags struct {
	configPath string
	k          int
	seed       int64
	timeout    time.Duration
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "engine configuration file (.toml, .yaml)")
	cmd.Flags().IntVarP(&f.k, "k", "k", 0, "color budget for local search (0 derives it from DSatur)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 selects the default)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "deadline per run, e.g. 30s (disables result caching)")
}

// load reads the configuration file, if any, and applies the flags the
// user set on top of it.
func (f *engineFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.K = f.k
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration(f.timeout)
	}
	return cfg, nil
}

// splitList parses a comma-separated list into lowercase items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the output base path: output without a known format
// extension, or input without its extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// graphName is the record name of a graph file: its base name without
// extension.
func graphName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
