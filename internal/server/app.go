// Package server wires configuration, storage, services and transports into
// a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/QuantumCastro/Vitrum/internal/dbx"
	"github.com/QuantumCastro/Vitrum/internal/logging"
	"github.com/QuantumCastro/Vitrum/internal/server/api"
	"github.com/QuantumCastro/Vitrum/internal/server/auth"
	"github.com/QuantumCastro/Vitrum/internal/server/config"
	"github.com/QuantumCastro/Vitrum/internal/server/repositories/repomanager"
	"github.com/QuantumCastro/Vitrum/internal/server/services"
	"github.com/uptrace/bun"

	gs "github.com/QuantumCastro/Vitrum/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     *logging.ZapLogger
	db         *bun.DB
	httpServer *api.HTTPServer
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.Environment)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger *logging.ZapLogger, db *bun.DB) (*App, error) {
	rm := repomanager.NewBunRepositoryManager()
	if c.AutoMigrate {
		if err := rm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migrations error: %w", err)
		}
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.AuthAlgorithm, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service error: %w", err)
	}

	us := services.NewUserService(db, rm, tokens, logger)
	vs := services.NewVaultService(db, rm)
	ns := services.NewNoteService(db, rm)
	guard := auth.NewGuard(tokens, rm.Users(db))

	router := api.NewRouter(c, api.NewHandler(us, vs, ns, logger), guard, logger)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: api.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db, c.HealthCheckInterval),
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

// Run serves HTTP and gRPC until a signal arrives, ctx is cancelled or one
// of the servers fails, then releases the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "app", app.config.AppName, "environment", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	_ = app.logger.Sync()
}

func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "server", name, "error", err)
		cancelFunc()
	}
}

// Migrate applies the schema, or drops and re-applies it when reset is set,
// without starting any server.
func Migrate(ctx context.Context, c *config.Config, reset bool) error {
	logger, err := logging.New(c.LogLevel, c.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer func() { _ = db.Close() }()

	rm := repomanager.NewBunRepositoryManager()
	if reset {
		logger.Warn(ctx, "resetting database schema")
		err = rm.ResetSchema(ctx, db)
	} else {
		err = rm.RunMigrations(ctx, db)
	}
	if err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	logger.Info(ctx, "migrations applied", "reset", reset)
	return nil
}
