// Package graph provides the immutable undirected graph consumed by every
// coloring engine.
//
// # Overview
//
// Vertices are dense integers 0..n-1. Edges are undirected, never self-loops,
// and never duplicated: [New] normalizes every edge so that U < V, drops
// repeats in either orientation, and sorts the result. Adjacency lists are
// symmetric and sorted ascending, so iteration order is deterministic and
// engines that depend on it stay reproducible.
//
// # Basic Usage
//
//	g, err := graph.New(3, []graph.Edge{{0, 1}, {1, 2}, {2, 0}})
//	if err != nil {
//	    // err carries the INVALID_GRAPH code
//	}
//	g.Degree(0)    // 2
//	g.Neighbors(1) // [0 2]
//	g.Density()    // 1
//
// Loaders that discover edges one at a time use a [Builder].
//
// # Errors
//
// Construction fails with an INVALID_GRAPH coded error (see pkg/errors)
// wrapping [ErrVertexOutOfRange], [ErrSelfLoop] or [ErrNegativeVertexCount].
// Use errors.Is with either the sentinel or the code.
//
// # Concurrency
//
// A Graph is never mutated after construction and is safe for concurrent
// readers. The slices returned by [Graph.Neighbors] and [Graph.Edges] are
// shared with the graph and must not be modified.
package graph
