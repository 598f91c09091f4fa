package bench

import (
	"fmt"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/generate"
)

// Suite returns the built-in instance set: reference graphs with known
// chromatic numbers plus random graphs of increasing density, generated
// from seed.
func Suite(seed int64) []Instance {
	rng := coloring.NewRand(seed)
	out := []Instance{
		{Name: "petersen", Graph: generate.Petersen()},
		{Name: "k8", Graph: generate.Complete(8)},
		{Name: "c51", Graph: generate.Cycle(51)},
		{Name: "wheel10", Graph: generate.Wheel(10)},
		{Name: "crown12", Graph: generate.Crown(12)},
		{Name: "mycielski5", Graph: generate.Mycielski(5)},
		{Name: "map8x8", Graph: generate.Map(8, 8, rng)},
	}
	for _, p := range []float64{0.05, 0.2, 0.5} {
		out = append(out, Instance{
			Name:  fmt.Sprintf("gnp100_%02.0f", p*100),
			Graph: generate.ErdosRenyi(100, p, rng),
		})
	}
	return out
}
