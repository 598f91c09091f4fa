// Package pkg provides the core libraries for chromatic graph coloring.
//
// # Overview
//
// Chromatic assigns colors to the vertices of an undirected graph so that no
// edge joins two vertices of the same color, using as few colors as it can.
// The pkg directory is organized into four areas:
//
//  1. Model: [graph], [io] and [generate] build and exchange graphs
//  2. Engines: [coloring] and its greedy, exact, local and hybrid subpackages
//  3. Orchestration: [config], [pipeline], [cache] and [bench]
//  4. Outputs: [render], [results] and [server]
//
// # Architecture
//
// The typical data flow:
//
//	DIMACS / edge list / JSON / timetable CSV
//	         ↓
//	    [io] package (parse into an immutable graph)
//	         ↓
//	    [config] package (select and configure an engine)
//	         ↓
//	    [coloring] engines (color under a context deadline)
//	         ↓
//	    [render] / [results] (DOT, SVG, PNG, PDF, JSON, CSV)
//
// # Quick Start
//
//	g, _ := io.Import("queen8_8.col", io.FormatAuto)
//	engine, _ := config.Lookup(coloring.AlgorithmHybridDSSA)
//	res, _ := engine.Color(context.Background(), g)
//	fmt.Println(res.Colors, res.Valid)
//
// The [pipeline] package wraps these steps with caching and artifact
// rendering and is shared by the CLI and the HTTP server.
package pkg
