// Package main is the entry point for the parking enforcement API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/zonaazul/enforcement-system/internal/api"
	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/service"
	"github.com/zonaazul/enforcement-system/internal/infrastructure/db/postgres"
	redisdb "github.com/zonaazul/enforcement-system/internal/infrastructure/db/redis"
	"github.com/zonaazul/enforcement-system/internal/infrastructure/queue"
	"github.com/zonaazul/enforcement-system/internal/pkg/config"
	"github.com/zonaazul/enforcement-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Postgres ---
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	log.Info().Msg("database ready")

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Repositories ---
	ledger := postgres.NewSpotLedger(pool)
	txRunner := postgres.NewTxRunner(pool)
	streetRepo := postgres.NewStreetRepository(pool)
	inspectorRepo := postgres.NewInspectorRepository(pool)
	auditTrail := postgres.NewAuditTrail(pool)
	streetCache := redisdb.NewStreetCache(rdb)

	// --- Audit dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.Enforcement.AuditWorkers, auditTrail, log)
	dispatcher.Start(ctx)

	// --- Services ---
	grace := time.Duration(cfg.Enforcement.GraceMinutes) * time.Minute
	enforcement := service.NewEnforcementService(
		ledger, txRunner, streetRepo, inspectorRepo,
		streetCache, dispatcher, domain.SystemClock{}, grace, log,
	)
	auth := service.NewAuthService(inspectorRepo, cfg.JWTSecret, 24*time.Hour)
	streets := service.NewStreetService(streetRepo, log)

	// --- Router / server ---
	e := api.NewRouter(api.Deps{
		Auth:        auth,
		Enforcement: enforcement,
		Streets:     streets,
		Pool:        pool,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown: give in-flight inspections up to 15 seconds.
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
