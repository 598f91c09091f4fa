// Package results records coloring runs and persists them.
//
// A [Record] is the flat, serializable summary of one engine run on one
// graph: who ran what, how many colors it used, whether the coloring was
// proper, and how long it took. Records are written as CSV or JSON for
// offline analysis, or kept in a [Store]:
//
//   - [MemoryStore]: process-local, for tests and the CLI
//   - [MongoStore]: a MongoDB collection, for the HTTP service
//
// Annealing and tabu runs also carry a conflict history, exported with
// [WriteHistoryCSV].
package results
