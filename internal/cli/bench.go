package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/bench"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/results"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	engine      engineFlags
	algorithms  string // comma-separated engine names; empty runs all
	runs        int    // seeds per randomized algorithm
	concurrency int
	format      string // input format for graph files
	csvPath     string
	jsonPath    string
	history     string
	interactive bool
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	opts := benchOpts{runs: 3}

	cmd := &cobra.Command{
		Use:   "bench [graphs...]",
		Short: "Benchmark coloring engines",
		Long: `Benchmark coloring engines against each other.

Every algorithm runs on every graph; randomized algorithms run once per seed
(--seed, --seed+1, ...), deterministic ones once. Without graph arguments the
built-in suite is used: reference graphs with known chromatic numbers and
random G(n,p) graphs of increasing density.

Runs on graphs too large for exact search are skipped.`,
		Example: `  chromatic bench
  chromatic bench -a dsatur,tabu,dsatur+tabu --runs 10 --csv runs.csv
  chromatic bench graphs/*.col --timeout 10s -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd, args, &opts)
		},
	}

	opts.engine.register(cmd)
	cmd.Flags().StringVarP(&opts.algorithms, "algorithms", "a", "", "comma-separated engines (default: all)")
	cmd.Flags().IntVarP(&opts.runs, "runs", "n", opts.runs, "seeds per randomized algorithm")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 0, "parallel runs (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.format, "input-format", "", "input format of graph files (default: from extension)")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write run records as CSV")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write run records as JSON")
	cmd.Flags().StringVar(&opts.history, "history", "", "write local-search conflict histories as CSV")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the results interactively")

	return cmd
}

// runBench loads the instances, runs the matrix and reports.
func (c *CLI) runBench(cmd *cobra.Command, args []string, opts *benchOpts) error {
	ctx := cmd.Context()

	cfg, err := opts.engine.load(cmd)
	if err != nil {
		return err
	}
	if opts.runs < 1 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "--runs must be at least 1, got %d", opts.runs)
	}

	instances, err := loadInstances(ctx, args, opts.format, cfg.Seed)
	if err != nil {
		return err
	}
	c.Logger.Infof("Benchmarking %d graphs", len(instances))

	seeds := make([]int64, opts.runs)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Benchmarking...")
	spinner.Start()
	report, err := bench.Run(ctx, instances, bench.Options{
		Algorithms:  splitList(opts.algorithms),
		Seeds:       seeds,
		Config:      cfg,
		Timeout:     cfg.Timeout.D(),
		Concurrency: opts.concurrency,
		Logger:      c.Logger,
		Progress: func(done, total int, rec results.Record) {
			spinner.SetMessage(fmt.Sprintf("Benchmarking... %d/%d runs", done, total))
			c.Logger.Debugf("[%d/%d] %s on %s: %d colors", done, total, rec.Algorithm, rec.Graph, rec.Colors)
		},
	})
	if err != nil {
		spinner.StopWithError("Benchmark failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Finished %d runs", len(report.Records)), "graphs", len(instances))

	var paths []string
	for _, out := range []struct {
		path  string
		write func(*os.File) error
	}{
		{opts.csvPath, func(f *os.File) error { return results.WriteCSV(f, report.Records) }},
		{opts.jsonPath, func(f *os.File) error { return results.WriteJSON(f, report.Records) }},
		{opts.history, func(f *os.File) error { return results.WriteHistoryCSV(f, report.Records) }},
	} {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.write); err != nil {
			return fmt.Errorf("write %s: %w", out.path, err)
		}
		paths = append(paths, out.path)
	}

	if opts.interactive {
		_, err := tea.NewProgram(NewBenchModel(report), tea.WithContext(ctx)).Run()
		return err
	}

	fmt.Println(summaryTable(report.Summaries, -1).Render())
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// loadInstances reads the graph files, or returns the built-in suite when
// there are none.
func loadInstances(ctx context.Context, paths []string, format string, seed int64) ([]bench.Instance, error) {
	if len(paths) == 0 {
		return bench.Suite(seed), nil
	}
	instances := make([]bench.Instance, 0, len(paths))
	for _, p := range paths {
		g, err := pipeline.Load(ctx, p, format)
		if err != nil {
			return nil, err
		}
		instances = append(instances, bench.Instance{Name: graphName(p), Graph: g})
	}
	return instances, nil
}
