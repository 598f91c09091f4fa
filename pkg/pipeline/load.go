package pipeline

import (
	"context"
	"time"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	gio "github.com/matzehuels/chromatic/pkg/io"
	"github.com/matzehuels/chromatic/pkg/observability"
)

// Load returns opts.Graph when set, otherwise reads opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Graph != nil {
		return opts.Graph, nil
	}
	return Load(ctx, opts.Input, opts.InputFormat)
}

// Load reads the graph file at path in the named format (empty detects it
// from the extension).
func Load(ctx context.Context, path, format string) (*graph.Graph, error) {
	if path == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidPath, "path cannot be empty")
	}
	f, err := gio.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnLoadStart(ctx, path)
	start := time.Now()
	g, err := gio.Import(path, f)
	vertices := 0
	if err == nil {
		vertices = g.N()
	}
	observability.Pipeline().OnLoadComplete(ctx, path, vertices, time.Since(start), err)
	return g, err
}
