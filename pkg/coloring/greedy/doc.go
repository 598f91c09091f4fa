// Package greedy provides one-pass constructive coloring engines.
//
// Both engines visit every vertex once and give it the smallest color not
// used by an already-colored neighbor, so the result is always a valid
// coloring with at most maxDegree+1 colors. They differ in visiting order:
//
//   - [WelshPowell]: static order by degree, highest first (ties by id)
//   - [DSatur]: dynamic order by saturation, the number of distinct colors
//     already present among a vertex's neighbors (ties by degree, then id)
//
// DSatur usually needs fewer colors, and this package guarantees it never
// needs more than Welsh-Powell on the same graph: it computes both and keeps
// the smaller coloring, recording the switch in Stats["fallback"].
//
// Both engines are deterministic and run in well under a second on graphs
// with tens of thousands of vertices, which is why the exact and hybrid
// engines use them for initial incumbents and seeds.
package greedy
