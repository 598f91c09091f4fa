// Package exact finds minimum colorings of small graphs by branch-and-bound.
//
// # Algorithm
//
// [Search] fixes a vertex order once (degree descending, ties by id) and
// walks it depth-first with an explicit stack. Each frame stores only its
// vertex and the next color to try; the partial coloring is shared and
// overwritten in place, so memory stays O(n) regardless of search depth.
//
// Three bounds keep the tree small:
//
//   - The DSatur coloring is the initial incumbent. Every branch must beat it,
//     so a frame only tries colors below best-1.
//   - A vertex may open at most one new color (0..maxUsed+1), which removes
//     color permutations of the same partial assignment.
//   - A clique lower bound, raised to 2 for graphs with an edge and to 3 for
//     non-bipartite graphs, stops the search as soon as the incumbent meets it.
//
// # Limits
//
// Exact coloring is NP-hard. Graphs above [Search.MaxVertices] are rejected
// with a SEARCH_TOO_LARGE error before any work is done; callers that want a
// best-effort answer should use the hybrid engines instead. A timeout or a
// cancelled context stops the search and returns the incumbent with
// Complete=false.
//
// # Usage
//
//	search := exact.Search{
//	    Timeout: 10 * time.Second,
//	    Progress: func(explored, pruned, best int) {
//	        fmt.Printf("explored %d, pruned %d, best=%d\n", explored, pruned, best)
//	    },
//	}
//	res, err := search.Color(ctx, g)
package exact
