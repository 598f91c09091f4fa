package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/render"
	"github.com/matzehuels/chromatic/pkg/results"
)

// colorOpts holds the command-line flags for the color command.
type colorOpts struct {
	engine    engineFlags
	algorithm string // engine name, overrides the config file
	format    string // input format; empty detects from the extension
	name      string // graph name on the result record
	output    string // output base path
	formats   string // comma-separated artifact formats
	palette   string // render palette
	labels    bool   // show vertex labels in drawings
	history   string // conflict-history CSV path
	noCache   bool
	refresh   bool
	progress  bool // log exact search progress
}

// colorCommand creates the color command.
func (c *CLI) colorCommand() *cobra.Command {
	var opts colorOpts

	cmd := &cobra.Command{
		Use:   "color [graph]",
		Short: "Color a graph file",
		Long: `Color a graph file with one of the registered engines.

The input format is detected from the extension (.col/.dimacs, .json, .csv,
.txt/.edges/.el) unless --input-format is given. Artifacts are written next
to the input (or to --output) as <base>.<format>.

Completed results are cached locally, keyed by the graph structure and the
engine options, so repeated runs return instantly.`,
		Example: `  chromatic color queen8_8.col
  chromatic color myciel5.col -a exact -f json,svg
  chromatic color exams.csv -a dsatur+tabu --seed 7 -f json,csv --history trace.csv
  chromatic color le450_15a.col -c engines.toml --timeout 30s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runColor(cmd, args[0], &opts)
		},
	}

	opts.engine.register(cmd)
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "engine: "+strings.Join(algorithmNames(), ", "))
	cmd.Flags().StringVar(&opts.format, "input-format", "", "input format: dimacs, edgelist, json, timetable (default: from extension)")
	cmd.Flags().StringVar(&opts.name, "name", "", "graph name on the result record (default: input file name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatJSON, "output format(s): json, csv, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.palette, "palette", pipeline.DefaultPalette, "render palette: "+strings.Join(render.PaletteNames(), ", "))
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "show vertex labels in drawings")
	cmd.Flags().StringVar(&opts.history, "history", "", "write the conflict history of local search to this CSV file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recolor even when a cached result exists")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "log exact search progress (disables result caching)")

	return cmd
}

// runColor loads the configuration, runs the pipeline and writes artifacts.
func (c *CLI) runColor(cmd *cobra.Command, input string, opts *colorOpts) error {
	ctx := cmd.Context()

	cfg, err := opts.engine.load(cmd)
	if err != nil {
		return err
	}
	if opts.algorithm != "" {
		cfg.Algorithm = opts.algorithm
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Input:       input,
		InputFormat: opts.format,
		Name:        opts.name,
		Config:      cfg,
		Refresh:     opts.refresh,
		Formats:     splitList(opts.formats),
		Palette:     opts.palette,
		Labels:      opts.labels,
		Logger:      c.Logger,
	}
	if opts.progress && strings.EqualFold(cfg.Algorithm, coloring.AlgorithmExact) {
		popts.Engine = newExactSearch(ctx, cfg.ExactEngine())
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Coloring %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Coloring failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(opts.output, input)
	paths, err := writeArtifacts(base, popts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	if opts.history != "" {
		if err := writeHistory(opts.history, result.Record); err != nil {
			return err
		}
		paths = append(paths, opts.history)
	}

	printColorResult(result.Coloring)
	if palette, err := render.LookupPalette(popts.Palette); err == nil {
		printClasses(palette, coloring.ClassSizes(result.Coloring.Coloring))
	}
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Vertices, result.Stats.Edges, result.CacheInfo.ColorHit)
	if slices.Contains(popts.Formats, pipeline.FormatJSON) && !slices.Contains(popts.Formats, pipeline.FormatSVG) {
		printNewline()
		printNextStep("Render", fmt.Sprintf("%s render %s %s.json", appName, input, base))
	}
	return nil
}

// printColorResult prints the headline of a coloring result.
func printColorResult(res *coloring.Result) {
	switch {
	case res.Valid && res.Optimal:
		printSuccess("%s colors (optimal, %s)", StyleNumber.Render(fmt.Sprint(res.Colors)), res.Algorithm)
	case res.Valid:
		printSuccess("%s colors (%s)", StyleNumber.Render(fmt.Sprint(res.Colors)), res.Algorithm)
	default:
		printWarning("%d colors with %d conflicts (%s)", res.Colors, res.Conflicts, res.Algorithm)
	}
	if res.LowerBound > 0 {
		printKeyValue("Lower bound", fmt.Sprint(res.LowerBound))
	}
	printKeyValue("Iterations", fmt.Sprint(res.Iterations))
	printKeyValue("Elapsed", res.Elapsed.Round(time.Millisecond).String())
	if !res.Complete {
		printDetail("Stopped early; this is the best coloring found")
	}
}

// writeArtifacts writes every rendered format to base.<format> in the
// order requested and returns the written paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + f
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeHistory writes the conflict trace of rec to path.
func writeHistory(path string, rec results.Record) error {
	return writeFile(path, func(f *os.File) error {
		return results.WriteHistoryCSV(f, []results.Record{rec})
	})
}

// writeFile creates path and streams write into it.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
