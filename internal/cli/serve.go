package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/server"
	"github.com/matzehuels/mindmap/pkg/store"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backend  string
		measurer string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mind map HTTP API",
		Long: `Serve the mind map HTTP API.

Stored maps live in memory by default; set [server] store = "mongo" in the
config file (or --store mongo) to persist them in MongoDB. Layouts are cached
in the configured cache backend; use [cache] backend = "redis" to share the
cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if backend == "" {
				backend = cfg.Server.Store
			}
			return c.runServe(cmd.Context(), cfg, addr, backend, measurer, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "store", "", "map store: memory, mongo")
	cmd.Flags().StringVar(&measurer, "measurer", pipeline.DefaultMeasurer, "text measurer: font, cell")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config, addr, backend, measurer string, noCache bool) error {
	if err := pipeline.ValidateMeasurer(measurer); err != nil {
		return err
	}

	st, err := c.newStore(ctx, cfg.Server, backend)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
	srv := server.New(runner, st,
		server.WithLogger(c.Logger),
		server.WithDefaults(pipeline.Options{Layout: cfg.Layout, Measurer: measurer}),
	)
	printInfo("Serving on %s (store: %s)", addr, backend)
	return srv.ListenAndServe(ctx, addr)
}

// newStore opens the map store named by backend.
func (c *CLI) newStore(ctx context.Context, cfg config.Server, backend string) (store.Store, error) {
	switch backend {
	case config.StoreMemory, "":
		return store.NewMemoryStore(), nil
	case config.StoreMongo:
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		c.Logger.Info("connected to mongo", "database", cfg.MongoDatabase)
		return ms, nil
	default:
		return nil, fmt.Errorf("invalid store: %q (must be one of: memory, mongo)", backend)
	}
}
