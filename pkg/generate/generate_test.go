package generate

import (
	"math/rand"
	"testing"

	"github.com/matzehuels/chromatic/pkg/graph"
)

func TestDeterministicFamilies(t *testing.T) {
	tests := []struct {
		name      string
		g         *graph.Graph
		vertices  int
		edges     int
		maxDegree int
		bipartite bool
	}{
		{"K5", Complete(5), 5, 10, 4, false},
		{"K1", Complete(1), 1, 0, 0, true},
		{"C6", Cycle(6), 6, 6, 2, true},
		{"C5", Cycle(5), 5, 5, 2, false},
		{"C2 is a path", Cycle(2), 2, 1, 1, true},
		{"P4", Path(4), 4, 3, 2, true},
		{"K3,3", CompleteBipartite(3, 3), 6, 9, 3, true},
		{"crown 4", Crown(4), 8, 12, 3, true},
		{"W6", Wheel(6), 6, 10, 5, false},
		{"W4", Wheel(4), 4, 6, 3, false},
		{"petersen", Petersen(), 10, 15, 3, false},
		{"M1", Mycielski(1), 1, 0, 0, true},
		{"M3", Mycielski(3), 5, 5, 2, false},
		{"grotzsch", Mycielski(4), 11, 20, 5, false},
		{"negative", Complete(-3), 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.N(); got != tt.vertices {
				t.Errorf("N() = %d, want %d", got, tt.vertices)
			}
			if got := tt.g.EdgeCount(); got != tt.edges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.edges)
			}
			if got := tt.g.MaxDegree(); got != tt.maxDegree {
				t.Errorf("MaxDegree() = %d, want %d", got, tt.maxDegree)
			}
			if got := tt.g.IsBipartite(); got != tt.bipartite {
				t.Errorf("IsBipartite() = %v, want %v", got, tt.bipartite)
			}
		})
	}
}

func TestPetersenIsCubic(t *testing.T) {
	g := Petersen()
	for v := range g.N() {
		if g.Degree(v) != 3 {
			t.Errorf("Degree(%d) = %d, want 3", v, g.Degree(v))
		}
	}
}

func TestMycielskiTriangleFree(t *testing.T) {
	g := Mycielski(4)
	for _, e := range g.Edges() {
		for _, w := range g.Neighbors(e.U) {
			if g.HasEdge(e.V, w) {
				t.Fatalf("triangle %d-%d-%d", e.U, e.V, w)
			}
		}
	}
}

func TestRandomFamiliesReproducible(t *testing.T) {
	a := ErdosRenyi(40, 0.3, rand.New(rand.NewSource(5)))
	b := ErdosRenyi(40, 0.3, rand.New(rand.NewSource(5)))
	if a.EdgeCount() != b.EdgeCount() {
		t.Fatalf("edge counts differ: %d vs %d", a.EdgeCount(), b.EdgeCount())
	}
	for i, e := range a.Edges() {
		if b.Edges()[i] != e {
			t.Fatalf("edge %d differs: %v vs %v", i, e, b.Edges()[i])
		}
	}

	if got := ErdosRenyi(10, 1.5, rand.New(rand.NewSource(1))).EdgeCount(); got != 45 {
		t.Errorf("p clamped to 1: EdgeCount() = %d, want 45", got)
	}
	if got := ErdosRenyi(10, -1, rand.New(rand.NewSource(1))).EdgeCount(); got != 0 {
		t.Errorf("p clamped to 0: EdgeCount() = %d, want 0", got)
	}
}

func TestRandomBipartite(t *testing.T) {
	g := RandomBipartite(6, 4, 0.5, rand.New(rand.NewSource(3)))
	if g.N() != 10 {
		t.Fatalf("N() = %d, want 10", g.N())
	}
	if !g.IsBipartite() {
		t.Error("RandomBipartite produced an odd cycle")
	}
	if g.Label(0) != "A0" || g.Label(6) != "B0" {
		t.Errorf("labels = %q, %q", g.Label(0), g.Label(6))
	}
}

func TestMap(t *testing.T) {
	g := Map(3, 4, rand.New(rand.NewSource(9)))
	if g.N() != 12 {
		t.Fatalf("N() = %d, want 12", g.N())
	}
	// 3*3 horizontal + 2*4 vertical + 2*3 diagonals.
	if g.EdgeCount() != 23 {
		t.Errorf("EdgeCount() = %d, want 23", g.EdgeCount())
	}
	if g.Label(0) != "R1" {
		t.Errorf("Label(0) = %q, want R1", g.Label(0))
	}
}
