package cli

import (
	"context"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/PolyGraph-Intelligence/internal/application/dataset"
	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/PolyGraph-Intelligence/internal/interfaces/http"
	"github.com/turtacn/PolyGraph-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/PolyGraph-Intelligence/internal/interfaces/http/middleware"
)

type serveOptions struct {
	port       int
	dir        string
	watch      bool
	probeNeo4j bool
	cors       bool
}

// NewServeCmd builds `polygraph serve`.
func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the featurized dataset, health probes and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.port, "port", "p", 0, "listen port (default: server.port)")
	f.StringVar(&opts.dir, "dir", "", "featurized record directory or object prefix (default: dataset.dir)")
	f.BoolVar(&opts.watch, "watch", false, "reopen the dataset when the config file changes")
	f.BoolVar(&opts.probeNeo4j, "probe-neo4j", false, "include Neo4j in the readiness probe")
	f.BoolVar(&opts.cors, "cors", false, "allow cross-origin GET requests")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.dir != "" {
		cfg.Dataset.Dir = opts.dir
	}
	logger := cliCtx.Logger

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in := newInfra(cfg, logger)
	defer in.Close()

	collector, metrics, err := in.metrics()
	if err != nil {
		return err
	}

	live := &liveDataset{logger: logger.Named("dataset_reload")}
	if err := live.open(ctx, in, cfg); err != nil {
		return err
	}

	// The cache is only probed here; featurize is its writer.
	if _, err := in.featureCache(); err != nil {
		return err
	}
	if opts.probeNeo4j {
		driver, err := neo4j.NewDriver(cfg.Neo4j, logger)
		if err != nil {
			return err
		}
		in.checkers = append(in.checkers, driver)
		in.onClose(driver.Close)
	}

	if opts.watch && cliCtx.ConfigPath != "" {
		err := config.Watch(cliCtx.ConfigPath,
			func(next *config.Config) {
				if opts.dir != "" {
					next.Dataset.Dir = opts.dir
				}
				if err := live.open(ctx, in, next); err != nil {
					logger.Warn("dataset reload failed", logging.Err(err))
				}
			},
			func(err error) { logger.Warn("config reload rejected", logging.Err(err)) },
		)
		if err != nil {
			return err
		}
	}

	routerCfg := httpapi.RouterConfig{
		HealthHandler:    handlers.NewHealthHandler(Version, metrics, in.checkers...),
		DatasetHandler:   handlers.NewDatasetHandler(live),
		Logging:          middleware.DefaultLoggingConfig(),
		Logger:           logger,
		MetricsCollector: collector,
		Metrics:          metrics,
	}
	if opts.cors {
		c := middleware.DefaultCORSConfig()
		routerCfg.CORS = &c
	}

	srv := httpapi.NewServer(cfg.Server, httpapi.NewRouter(routerCfg), logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// liveDataset
// ─────────────────────────────────────────────────────────────────────────────

// liveDataset serves the most recently opened dataset.  Requests in flight
// keep the dataset they started with.
type liveDataset struct {
	mu     sync.Mutex
	cur    atomic.Pointer[dataset.Dataset]
	logger logging.Logger
}

var _ handlers.DatasetReader = (*liveDataset)(nil)

// open builds a dataset from cfg and swaps it in.  On error the previous
// dataset stays.
func (l *liveDataset) open(ctx context.Context, in *infra, cfg *config.Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := in.recordStore(cfg.Storage, cfg.Dataset.Dir)
	if err != nil {
		return err
	}
	ds, err := dataset.Open(ctx, store, dataset.OptionsFromConfig(cfg.Dataset, cfg.Featurize.FeatureSetIndex), l.logger)
	if err != nil {
		return err
	}
	l.cur.Store(ds)
	l.logger.Info("dataset opened",
		logging.String("dir", cfg.Dataset.Dir),
		logging.String(logging.FieldFeatureSet, ds.Field()),
		logging.Int("records", ds.Len()))
	return nil
}

func (l *liveDataset) Len() int { return l.cur.Load().Len() }

func (l *liveDataset) Manifest() *dataset.Manifest { return l.cur.Load().Manifest() }

func (l *liveDataset) Describe(ctx context.Context) (*dataset.Info, error) {
	return l.cur.Load().Describe(ctx)
}

func (l *liveDataset) Get(ctx context.Context, idx int) (*dataset.Sample, error) {
	return l.cur.Load().Get(ctx, idx)
}

func (l *liveDataset) FileName(idx int) (string, error) { return l.cur.Load().FileName(idx) }

//Personal.AI order the ending
