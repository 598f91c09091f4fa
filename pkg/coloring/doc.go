// Package coloring defines the shared vocabulary of every coloring engine:
// the [Coloring] assignment, the incremental conflict [State] used by local
// search, the [Result] record engines return, and the validator and metric
// functions callers use to check and report on a coloring.
//
// # Engines
//
// Engines live in subpackages and all implement [Colorer]:
//
//   - greedy: Welsh-Powell and DSatur, one pass, always valid
//   - exact: branch-and-bound search, optimal within a vertex ceiling
//   - local: simulated annealing and tabu search over a fixed color budget
//   - hybrid: greedy seed + local refinement with color reduction, and an
//     adaptive selector that routes by graph features
//
// # Validity
//
// A coloring is valid when every vertex has a color and no edge joins two
// vertices of the same color. Greedy and exact engines only ever return
// valid colorings. Local search may stop with conflicts left; the result is
// then flagged with Valid=false and a non-zero Conflicts count. Running out
// of budget is not an error.
//
// # Cancellation
//
// Every engine takes a context. When it is cancelled or its deadline passes
// the engine stops at the next check, returns the best coloring found so far
// with Complete=false, and reports no error.
//
// # Randomness
//
// Randomized engines never touch the global math/rand source. They draw from
// a *rand.Rand passed in explicitly or built by [NewRand] from a seed, so two
// runs with the same seed, graph and configuration are identical.
package coloring
