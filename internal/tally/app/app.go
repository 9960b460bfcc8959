package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/tally/internal/tally/http"
	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/mongo"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the tally service together and owns its lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	accountService *service.AccountService
	financeService *service.FinanceService
	schemaService  *service.SchemaService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application. An unreachable store is logged but does not
// fail startup; requests fail until it comes back and /readyz says so.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "tally",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitSigning(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("tally service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"require_auth", app.cfg.RequireAuth,
	)

	if app.schemaService != nil {
		app.schemaService.Start()
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, then closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tally service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.schemaService != nil {
		app.schemaService.Stop()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("tally service stopped")
	return nil
}

// initStore opens the configured driver and brings its schema up to date.
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		app.db = db
	default:
		db, err := mongo.NewStore(app.cfg.MongoURI, app.cfg.MongoDatabase, app.cfg.StoreTimeout)
		if err != nil {
			return fmt.Errorf("failed to create mongo store: %w", err)
		}
		app.db = db
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.StoreTimeout)
	defer cancel()

	if err := app.db.Ping(ctx); err != nil {
		app.logger.Error("store unreachable at startup, continuing", "store", app.cfg.StoreDriver, "error", err)
		app.retryMigrations()
		return nil
	}

	if err := app.db.ApplyMigrations(); err != nil {
		app.logger.Error("failed to apply store migrations, continuing", "store", app.cfg.StoreDriver, "error", err)
		app.retryMigrations()
		return nil
	}

	app.logger.Info("store ready", "store", app.cfg.StoreDriver)
	return nil
}

// retryMigrations schedules background migration attempts, started by Run.
func (app *Application) retryMigrations() {
	app.schemaService = service.NewSchemaService(
		app.db,
		app.logger.With("component", "schema"),
		app.cfg.SchemaRetryInterval,
		app.cfg.StoreTimeout,
	)
}

func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:    app.db,
		Signer:   app.signer,
		Issuer:   app.cfg.Issuer,
		TokenTTL: jwtx.AccessTokenTTL,
	}
	app.financeService = &service.FinanceService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSOrigins,
	)

	router.RequireAuth = app.cfg.RequireAuth
	// Validate already rejected malformed entries.
	trusted, _ := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	router.Limits = httpapi.RateLimits{
		Auth:           app.cfg.AuthLimit,
		Finance:        app.cfg.FinanceLimit,
		System:         app.cfg.SystemLimit,
		TrustedProxies: trusted,
	}
	router.AccountService = app.accountService
	router.FinanceService = app.financeService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
