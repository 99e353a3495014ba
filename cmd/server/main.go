// Package main is the entry point for the stayhub API server.
// All tenants share one PostgreSQL database; every tenant-owned row carries tenant_id.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stayhub/internal/config"
	"stayhub/internal/core/security"
	"stayhub/internal/domain/auth"
	"stayhub/internal/domain/tenant"
	v1 "stayhub/internal/infrastructure/http/v1"
	"stayhub/internal/infrastructure/http/v1/handlers"
	"stayhub/internal/infrastructure/storage/postgres"
	"stayhub/internal/infrastructure/storage/postgres/auth_repo"
	"stayhub/internal/infrastructure/storage/postgres/tenant_repo"
	"stayhub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	log.Info("starting stayhub server")

	// --- Database ---
	if cfg.Postgres.AutoMigrate {
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
		log.Info("database migrations applied")
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.Postgres))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Infow("database connection established", "max_conns", cfg.Postgres.MaxConns)

	txm := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txm)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	// --- Resources and tenant reference cache ---
	res, err := buildResources(ctx, cfg, pool, txm, auditService, log)
	if err != nil {
		log.Fatalw("failed to build resource services", "error", err)
	}
	defer res.close()
	if res.invalidator != nil {
		res.invalidator.Start(ctx)
	}

	gate := security.NewTenantGate(res.lookups,
		security.WithHiddenForeignResources(cfg.Security.HideForeignResources))

	// --- Identities and tenants ---
	tenantRepo := tenant_repo.NewTenantRepo(txm)
	sessions := auth.NewSessionService(auth.SessionConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.SessionTTL,
	})
	authService := auth.NewService(auth.Deps{
		Identities: auth_repo.NewIdentityRepo(txm),
		Tenants:    tenantRepo,
		Hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Sessions:   sessions,
		TxManager:  txm,
		Audit:      auditService,
	}, auth.DefaultServiceConfig())
	tenantService := tenant.NewService(tenantRepo, txm)

	// --- Router ---
	healthChecks := []handlers.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
	}
	if res.remote != nil {
		healthChecks = append(healthChecks, handlers.HealthCheck{Name: "redis", Check: res.remote.Ping})
	}

	router := v1.NewRouter(v1.RouterConfig{
		Mode:          cfg.Server.Mode,
		Logger:        log,
		Sessions:      sessions,
		TenantGate:    gate,
		AuthService:   authService,
		TenantService: tenantService,
		Properties:    res.properties,
		Bookings:      res.bookings,
		Payments:      res.payments,
		Invoices:      res.invoices,
		HealthChecks:  healthChecks,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port, "mode", cfg.Server.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
