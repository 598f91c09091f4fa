package cli

import (
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/coloring"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/generate"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/io"
)

// family describes a generator: its parameter names and how to build it.
type family struct {
	params []string
	build  func(p params, rng *rand.Rand) *graph.Graph
}

// params holds the parsed positional arguments of a generator.
type params []string

func (p params) intAt(i int) int {
	v, _ := strconv.Atoi(p[i])
	return v
}

func (p params) floatAt(i int) float64 {
	v, _ := strconv.ParseFloat(p[i], 64)
	return v
}

var families = map[string]family{
	"complete":         {[]string{"n"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.Complete(p.intAt(0)) }},
	"cycle":            {[]string{"n"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.Cycle(p.intAt(0)) }},
	"path":             {[]string{"n"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.Path(p.intAt(0)) }},
	"bipartite":        {[]string{"a", "b"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.CompleteBipartite(p.intAt(0), p.intAt(1)) }},
	"random-bipartite": {[]string{"a", "b", "p"}, func(p params, rng *rand.Rand) *graph.Graph { return generate.RandomBipartite(p.intAt(0), p.intAt(1), p.floatAt(2), rng) }},
	"crown":            {[]string{"n"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.Crown(p.intAt(0)) }},
	"wheel":            {[]string{"n"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.Wheel(p.intAt(0)) }},
	"petersen":         {nil, func(params, *rand.Rand) *graph.Graph { return generate.Petersen() }},
	"mycielski":        {[]string{"k"}, func(p params, _ *rand.Rand) *graph.Graph { return generate.Mycielski(p.intAt(0)) }},
	"gnp":              {[]string{"n", "p"}, func(p params, rng *rand.Rand) *graph.Graph { return generate.ErdosRenyi(p.intAt(0), p.floatAt(1), rng) }},
	"map":              {[]string{"rows", "cols"}, func(p params, rng *rand.Rand) *graph.Graph { return generate.Map(p.intAt(0), p.intAt(1), rng) }},
}

// familyNames returns the generator names in sorted order.
func familyNames() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// usage returns the argument synopsis of a family, e.g. "gnp <n> <p>".
func (f family) usage(name string) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range f.params {
		fmt.Fprintf(&b, " <%s>", p)
	}
	return b.String()
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output string
		format string
		seed   int64
	)

	var synopsis []string
	for _, name := range familyNames() {
		synopsis = append(synopsis, "  "+families[name].usage(name))
	}

	cmd := &cobra.Command{
		Use:   "generate <family> [params...]",
		Short: "Generate a synthetic graph",
		Long: `Generate a synthetic graph and write it as DIMACS or JSON.

Families:
` + strings.Join(synopsis, "\n") + `

Random families (random-bipartite, gnp, map) are reproducible from --seed.`,
		Example: `  chromatic generate mycielski 5 -o myciel5.col
  chromatic generate gnp 200 0.1 --seed 7 -o gnp200.json
  chromatic generate map 10 10 | chromatic color /dev/stdin --input-format dimacs`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: familyNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := buildFamily(args[0], args[1:], seed)
			if err != nil {
				return err
			}
			return c.writeGraph(g, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: DIMACS on stdout)")
	cmd.Flags().StringVar(&format, "output-format", "", "output format: dimacs, json (default: from extension)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 selects the default)")

	return cmd
}

// buildFamily validates the arguments of the named family and builds it.
func buildFamily(name string, args []string, seed int64) (*graph.Graph, error) {
	f, ok := families[strings.ToLower(name)]
	if !ok {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput,
			"unknown graph family %q (available: %s)", name, strings.Join(familyNames(), ", "))
	}
	if len(args) != len(f.params) {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput,
			"usage: generate %s", f.usage(name))
	}
	for i, a := range args {
		// "p" is a probability; every other parameter is a count.
		if f.params[i] == "p" {
			if _, err := strconv.ParseFloat(a, 64); err != nil {
				return nil, cerrors.New(cerrors.ErrCodeInvalidInput,
					"parameter <p> must be a number, got %q", a)
			}
		} else if _, err := strconv.Atoi(a); err != nil {
			return nil, cerrors.New(cerrors.ErrCodeInvalidInput,
				"parameter <%s> must be an integer, got %q", f.params[i], a)
		}
	}
	return f.build(args, coloring.NewRand(seed)), nil
}

// writeGraph writes g to path, or DIMACS to stdout when path is empty.
func (c *CLI) writeGraph(g *graph.Graph, path, format string) error {
	f, err := io.ParseFormat(format)
	if err != nil {
		return err
	}
	if path == "" {
		if f == io.FormatJSON {
			return io.WriteJSON(g, os.Stdout)
		}
		return io.WriteDIMACS(g, os.Stdout)
	}
	if err := io.Export(g, path, f); err != nil {
		return err
	}
	printSuccess("Generated graph")
	printFile(path)
	printStats(g.N(), g.EdgeCount(), false)
	return nil
}
