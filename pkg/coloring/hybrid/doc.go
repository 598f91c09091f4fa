// Package hybrid combines the greedy, exact and local-search engines.
//
// # Pipeline
//
// [Pipeline] seeds with a greedy engine, then repeatedly asks a local-search
// [Refiner] to recolor the graph with one color fewer, starting from the
// previous best coloring folded into the smaller range. It stops at the first
// budget the refiner cannot make conflict-free, when MaxReductions attempts
// are used up, when k reaches the lower bound, or on cancellation. The result
// is the conflict-free coloring with the fewest colors, so a pipeline is never
// worse than its seed engine alone.
//
// # Adaptive
//
// [Adaptive] inspects graph features and routes to one strategy:
//
//	n < ExactMaxVertices        exact search
//	density >= DenseThreshold   DSatur + simulated annealing
//	density <  SparseThreshold  DSatur + tabu search
//	otherwise                   Welsh-Powell + simulated annealing
//
// The thresholds live in [Policy] and are tuning knobs, not correctness
// requirements: every route returns a valid coloring. When exact search
// times out the adaptive engine returns the better of its incumbent and the
// DSatur coloring. The chosen route is reported in Stats["strategy"].
package hybrid
