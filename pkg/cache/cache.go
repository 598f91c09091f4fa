// Package cache stores coloring results and rendered artifacts by content
// hash so repeated runs on the same graph with the same engine options are
// answered without recoloring.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys from a graph hash ([GraphHash]) and the options
// that influence the result. Two runs share a key only when the graph, the
// algorithm and every engine option match. [ScopedKeyer] prefixes keys to
// separate namespaces on a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// A missing or expired entry is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs for cached entries.
const (
	ResultTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey identifies a coloring result of a graph under engine options.
	ResultKey(graphHash string, opts ResultKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a coloring result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// ResultKeyOpts lists every option that changes a coloring result.
type ResultKeyOpts struct {
	Algorithm     string  `json:"algorithm"`
	K             int     `json:"k,omitempty"`
	Seed          int64   `json:"seed,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
	T0            float64 `json:"t0,omitempty"`
	Alpha         float64 `json:"alpha,omitempty"`
	Tenure        int     `json:"tenure,omitempty"`
	StallLimit    int     `json:"stall_limit,omitempty"`
	CoolEvery     int     `json:"cool_every,omitempty"`
	Sampling      int     `json:"sampling,omitempty"`
	Candidates    int     `json:"candidates,omitempty"`
	MaxReductions int     `json:"max_reductions,omitempty"`
	MaxVertices   int     `json:"max_vertices,omitempty"`
	Timeout       string  `json:"timeout,omitempty"`
	Policy        string  `json:"policy,omitempty"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Palette string `json:"palette,omitempty"`
	Labels  bool   `json:"labels,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns "result:<sha256(graphHash, opts)>".
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256(resultHash, opts)>".
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
