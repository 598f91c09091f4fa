// Package io reads and writes graphs in the formats the coloring tools accept.
//
// # Formats
//
//   - DIMACS (.col, .dimacs): the standard coloring benchmark format.
//     "c" lines are comments, "p edge N M" declares the vertex and edge
//     counts, and "e U V" lines list edges with 1-indexed vertices.
//   - Edge list (.txt, .edges): one whitespace-separated pair of 0-indexed
//     vertices per line; "#" starts a comment.
//   - JSON (.json): {"vertices": N, "edges": [[u, v], ...]} with 0-indexed
//     vertices and optional "labels".
//   - Timetable (.csv): rows of course_id,student_id. Each course becomes a
//     vertex labelled with its id, and two courses are adjacent when they
//     share a student, so a coloring is an exam schedule without clashes.
//
// [Import] picks the reader from the file extension or an explicit [Format].
//
// # Errors
//
// Malformed input yields an INVALID_FORMAT coded error naming the line;
// structurally invalid graphs (self-loops, out-of-range vertices) yield
// INVALID_GRAPH from the graph package; missing files yield FILE_NOT_FOUND.
//
//	g, err := io.Import("queen5_5.col", io.FormatAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Writers produce output that the matching reader accepts unchanged.
package io
