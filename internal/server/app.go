// Package server initializes and runs the catalog application: it opens the
// database, waits for connectivity, runs migrations and seeding, and starts
// the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sethvargo/go-retry"

	"github.com/mkragh/cereald/internal/logging"
	"github.com/mkragh/cereald/internal/server/config"
	"github.com/mkragh/cereald/internal/server/httpapi"
	"github.com/mkragh/cereald/internal/server/repositories/repomanager"
	"github.com/mkragh/cereald/internal/server/seed"
	"github.com/mkragh/cereald/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	httpServer  *httpapi.HTTPServer
	seeder      *seed.Seeder
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	us := services.NewUserService(db, rm, cfg)
	cs := services.NewCerealService(db, rm)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		httpServer:  httpapi.NewHTTPServer(logger, us, cs, cfg),
		seeder:      seed.NewSeeder(db, rm, cfg, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// waitForDB pings the database with a fixed delay and a bounded attempt
// count. Exhausting the budget is reported to the caller; it does not abort
// startup.
func (app *App) waitForDB(ctx context.Context) error {
	attempts := app.config.DBConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(app.config.DBConnectDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn(ctx, "database not reachable yet", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// Bounded connectivity probe. The server still starts when the budget
	// is exhausted; requests will fail until the store comes up.
	if err := app.waitForDB(ctx); err != nil {
		app.logger.Error(ctx, "database connectivity not confirmed, serving anyway", "error", err)
	}

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
	} else if err := app.seeder.Run(ctx); err != nil {
		app.logger.Warn(ctx, "seed error", "error", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
