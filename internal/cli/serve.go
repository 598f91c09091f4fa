package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/results"
	"github.com/matzehuels/chromatic/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP coloring service",
		Long: `Start the HTTP coloring service.

Settings come from the environment (or a .env file):

  CHROMATIC_ADDR           listen address (default :8080)
  CHROMATIC_REDIS_URL      cache results in Redis (default: local file cache)
  CHROMATIC_MONGO_URI      persist run records in MongoDB (default: in memory)
  CHROMATIC_MONGO_DB       MongoDB database name (default: chromatic)
  CHROMATIC_MAX_VERTICES   largest accepted graph (default 20000)
  CHROMATIC_TIMEOUT        per-request engine deadline (default 60s)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			env, err := server.LoadEnv(files...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				env.Addr = addr
			}
			return c.runServe(cmd.Context(), env)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address (overrides CHROMATIC_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "environment file (default: .env if present)")

	return cmd
}

// runServe wires the cache and the record store and serves until ctx ends.
func (c *CLI) runServe(ctx context.Context, env server.Env) error {
	var (
		store cache.Cache
		err   error
	)
	if env.RedisURL != "" {
		c.Logger.Info("Using Redis cache")
		store, err = cache.NewRedisCache(ctx, env.RedisURL)
	} else {
		store, err = newCache(false)
	}
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	var records results.Store = results.NewMemoryStore()
	if env.MongoURI != "" {
		c.Logger.Info("Using MongoDB run store", "database", env.MongoDatabase)
		mongo, err := results.NewMongoStore(ctx, env.MongoURI, env.MongoDatabase, "")
		if err != nil {
			return fmt.Errorf("initialize run store: %w", err)
		}
		records = mongo
	}
	defer records.Close(context.WithoutCancel(ctx))

	return server.New(env, runner, records, c.Logger).ListenAndServe(ctx)
}
