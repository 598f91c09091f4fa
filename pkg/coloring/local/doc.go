// Package local implements conflict-minimizing local search over a fixed
// color budget k.
//
// Both engines start from a complete k-coloring that may contain conflicts
// and move single vertices between colors until no edge is conflicting or
// the iteration budget runs out:
//
//   - [Annealing] proposes a random recoloring and accepts worsening moves
//     with probability exp(-delta/T) under a geometric cooling schedule.
//   - [Tabu] always takes the best recoloring of a conflicting vertex, but
//     forbids moving a vertex back to a color it just left for a tenure
//     window, unless doing so beats the best conflict count seen so far.
//
// The best coloring seen during the run is returned, not the last one.
// Exhausting the budget with conflicts left is a normal outcome: the result
// then has Valid=false and a positive Conflicts count. Callers that need a
// proper coloring must check it, or use the hybrid engines, which only keep
// conflict-free refinements.
//
// # Budget and starting point
//
// K is the color budget. With K = 0 the budget is derived from a DSatur
// coloring: the engine tries to use one color fewer than DSatur needed,
// starting from the DSatur coloring folded into that range. An explicit
// Initial coloring is folded modulo K; otherwise colors are drawn uniformly.
//
// # Reproducibility
//
// All random choices come from Rand, or from a source seeded with Seed when
// Rand is nil. Two runs with the same seed, graph and settings produce the
// same coloring and the same History.
package local
