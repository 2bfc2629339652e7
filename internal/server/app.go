// Package server assembles the ledger process: storage, the staking service,
// the gRPC and HTTP front ends and the event archive, and runs them until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/lockstake/internal/clock"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/logging"
	"github.com/dmitrijs2005/lockstake/internal/metrics"
	"github.com/dmitrijs2005/lockstake/internal/server/archive"
	"github.com/dmitrijs2005/lockstake/internal/server/config"
	"github.com/dmitrijs2005/lockstake/internal/server/httpapi"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lockstake/internal/server/services"
	"github.com/dmitrijs2005/lockstake/internal/staking"

	gs "github.com/dmitrijs2005/lockstake/internal/server/grpc"
)

var errShutdownTimeout = errors.New("shutdown timed out")

type App struct {
	config    *config.Config
	logger    logging.Logger
	logCloser io.Closer
	db        *sql.DB
	metrics   *metrics.Metrics
	staking   *services.StakingService
	archiver  *archive.Archiver
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, logCloser, err := logging.New(c.LogLevel, c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, dialect, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = logCloser.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	m := metrics.New()
	app := &App{
		config:    c,
		logger:    logger,
		logCloser: logCloser,
		db:        db,
		metrics:   m,
		staking:   services.NewStakingService(db, rm, clock.System{}, c.AssetID, logger, m),
	}

	if c.ArchiveEnabled() {
		store, err := archive.NewS3Store(ctx, c)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		app.archiver = archive.NewArchiver(db, rm, store, c.ArchiveBatchSize, logger, m)
	}

	logger.Info(ctx, "App initialized", "dialect", string(dialect), "asset", c.AssetID, "archive", c.ArchiveEnabled())
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// primeMetrics publishes the stored accumulator before the first operation.
func (app *App) primeMetrics(ctx context.Context) {
	ps, err := app.staking.ProtocolStatus(ctx)
	if errors.Is(err, staking.ErrNotInitialized) {
		return
	}
	if err != nil {
		app.logger.Warn(ctx, "cannot read protocol status", "error", err.Error())
		return
	}
	app.metrics.SetStats(ps.Stats)
}

// Run serves until a signal arrives or a component fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.initSignalHandler(cancelFunc)
	app.logger.Info(ctx, "Starting app...")
	app.primeMetrics(ctx)

	g, gctx := errgroup.WithContext(ctx)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.staking, app.config.SecretKey)
	g.Go(func() error { return grpcServer.Run(gctx) })

	httpServer := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.staking, app.db, app.metrics.Handler())
	g.Go(func() error { return httpServer.Run(gctx) })

	if app.archiver != nil {
		g.Go(func() error { return app.archiver.Run(gctx, app.config.ArchiveSchedule) })
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-gctx.Done():
		select {
		case err = <-done:
		case <-time.After(app.config.ShutdownTimeout):
			err = errShutdownTimeout
		}
	}

	if err != nil {
		app.logger.Error(ctx, "App stopped", "error", err.Error())
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err.Error())
	}
	_ = app.logCloser.Close()
}
