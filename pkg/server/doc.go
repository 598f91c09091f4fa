// Package server exposes the coloring pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz          liveness probe
//	GET  /v1/algorithms    registered algorithms with descriptions
//	POST /v1/color         color a graph
//	POST /v1/validate      check a coloring against a graph
//	GET  /v1/runs          recent run records (?graph=&algorithm=&limit=)
//	GET  /v1/runs/{id}     one run record
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}}. Caller
// errors (bad graphs, bad parameters, oversized exact searches) map to 4xx
// statuses; everything else is a 500.
//
// # Environment
//
// [LoadEnv] reads the service settings from the process environment after
// loading optional .env files:
//
//	CHROMATIC_ADDR          listen address (default :8080)
//	CHROMATIC_REDIS_URL     result cache; empty disables caching
//	CHROMATIC_MONGO_URI     run record store; empty keeps records in memory
//	CHROMATIC_MONGO_DB      database name (default chromatic)
//	CHROMATIC_MAX_VERTICES  largest accepted graph (default 20000)
//	CHROMATIC_TIMEOUT       per-request coloring deadline (default 60s)
package server
