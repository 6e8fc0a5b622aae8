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

	httpapi "github.com/aussiebroadwan/panel/internal/panel/http"
	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/jwtx"
	"github.com/aussiebroadwan/panel/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application holds the panel server and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	redis    *redis.Client
	registry *prometheus.Registry
	signer   jwtx.Signer
	verifier jwtx.Verifier
	hasher   *cryptox.PasswordHasher

	clientService       *service.ClientService
	authService         *service.AuthService
	userService         *service.UserService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "panel",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		registry: prometheus.NewRegistry(),
	}

	pepper, err := cryptox.LoadPepper(cfg.PepperFile)
	if err != nil {
		return nil, err
	}
	app.hasher = cryptox.NewPasswordHasher(pepper, cryptox.DefaultParams)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.signer, app.verifier, err = InitAuthKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}

	if err := app.initRedis(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeBackends()
		return nil, err
	}
	if err := app.initHTTP(); err != nil {
		app.closeBackends()
		return nil, err
	}

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("panel starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DatabaseDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeBackends()
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

// Shutdown drains requests, stops housekeeping and closes the backends.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down panel...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeBackends(); err != nil {
		return err
	}
	app.logger.Info("panel stopped")
	return nil
}

func (app *Application) closeBackends() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(context.Background(), app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initRedis connects the shared limiter backend when REDIS_ADDR is set.
func (app *Application) initRedis() error {
	if app.cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.redis = client
	app.logger.Info("redis rate limiter enabled", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initServices() error {
	authMetrics, err := service.NewAuthMetrics(app.registry)
	if err != nil {
		return fmt.Errorf("failed to register auth metrics: %w", err)
	}

	app.clientService = service.NewClientService(app.db, app.cfg.StatsCacheTTL)
	app.authService = &service.AuthService{
		Store:      app.db,
		Hasher:     app.hasher,
		Signer:     app.signer,
		Verifier:   app.verifier,
		Metrics:    authMetrics,
		Issuer:     app.cfg.JWTIssuer,
		Audience:   app.cfg.JWTAudience,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.userService = &service.UserService{
		Store:      app.db,
		Hasher:     app.hasher,
		TOTPIssuer: app.cfg.TOTPIssuer,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Users: app.userService,
		Token: app.cfg.BootstrapToken,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.authService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) initHTTP() error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := httpx.RegisterCollector(app.registry, c); err != nil {
			return fmt.Errorf("failed to register runtime metrics: %w", err)
		}
	}
	metrics, err := httpx.NewMetrics(app.registry)
	if err != nil {
		return fmt.Errorf("failed to register http metrics: %w", err)
	}

	opts := httpapi.Options{
		BuildVersion:  BuildVersion,
		CORSOrigins:   app.cfg.CORSOrigins,
		SecureCookies: app.cfg.IsProd(),
		SessionTTL:    app.cfg.SessionTTL,
		Metrics:       metrics,
	}
	if app.redis != nil {
		opts.Limiters = httpx.RedisLimiterFactory(app.redis)
	}

	router := httpapi.NewRouter(app.db, app.logger, opts)
	router.ClientService = app.clientService
	router.AuthService = app.authService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
