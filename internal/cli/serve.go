package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layerscope/layerscope/internal/api"
	"github.com/layerscope/layerscope/pkg/cache"
	"github.com/layerscope/layerscope/pkg/pipeline"
	"github.com/layerscope/layerscope/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scene pipeline as an HTTP API",
		Long: `Run the scene pipeline as an HTTP API.

The server exposes POST /v1/scenes for scene builds and GET /healthz for
liveness checks. With --mongo, saved-graph endpoints under /v1/graphs are
enabled as well.

By default the server shares the CLI's file cache. Point --redis at a
Redis instance to share cache entries across replicas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis address for shared caching (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURL, "mongo", "", "MongoDB URI for graph persistence (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURL string, noCache bool) error {
	cacheStore, err := c.newServeCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(cacheStore, nil, nil, c.Logger)
	defer runner.Close()

	var graphStore store.Store
	if mongoURL != "" {
		graphStore, err = store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURL})
		if err != nil {
			return fmt.Errorf("connect graph store: %w", err)
		}
		defer graphStore.Close(context.Background())
		c.Logger.Info("graph store enabled", "uri", mongoURL)
	}

	return api.NewServer(runner, graphStore, c.Logger).ListenAndServe(addr)
}

func (c *CLI) newServeCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		c.Logger.Info("using redis cache", "addr", redisURL)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisURL})
	}
	return newCache(false)
}
