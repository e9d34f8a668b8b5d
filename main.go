package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/crease/config"
	_ "github.com/DhavalSuthar-24/crease/docs"
	"github.com/DhavalSuthar-24/crease/internal/live"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/outbox"
	"github.com/DhavalSuthar-24/crease/internal/standings"
	"github.com/DhavalSuthar-24/crease/pkg/logger"
	"github.com/DhavalSuthar-24/crease/pkg/metrics"
	"github.com/DhavalSuthar-24/crease/routes"
)

// @title Crease Live Scoring API
// @version 1.0
// @description Ball-by-ball cricket scoring and tournament standings.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := config.GetConfig()

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	var (
		matchRepo     match.MatchRepository
		standingsRepo standings.StandingsRepository
	)
	switch cfg.App.Store {
	case config.StorePostgres:
		models := append(match.Models(), standings.Models()...)
		if err := config.DB.AutoMigrate(models...); err != nil {
			zl.Fatal("AutoMigrate failed", zap.Error(err))
		}
		zl.Info("AutoMigrate successful")
		matchRepo = match.NewGormMatchRepository(config.DB)
		standingsRepo = standings.NewGormStandingsRepository(config.DB)
	default:
		zl.Warn("using in-memory store; data is lost on restart")
		matchRepo = match.NewMemoryRepository()
		standingsRepo = standings.NewMemoryStandingsRepository()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.NewRecorder()
	hub := live.NewHub(cfg.Live.ViewerBuffer, rec, zl.Named("live"))
	table := standings.NewService(standingsRepo, zl.Named("standings"))
	scoring := match.NewService(matchRepo,
		match.WithCompletionSink(table),
		match.WithBroadcaster(hub),
		match.WithMetrics(rec),
		match.WithLogger(zl.Named("match")),
	)

	relay := outbox.New(scoring, cfg.Outbox.BatchSize, zl.Named("outbox"), ctx)
	if _, err := relay.Schedule(cfg.Outbox.Schedule); err != nil {
		zl.Fatal("invalid outbox schedule", zap.String("schedule", cfg.Outbox.Schedule), zap.Error(err))
	}
	// Pick up anything left undelivered by a previous run.
	relay.RunOnce(ctx)
	relay.Start()

	var origins []string
	if u, err := url.Parse(cfg.App.FrontendURL); err == nil && u.Host != "" {
		origins = append(origins, u.Host)
	}

	r := routes.SetupRoutes(routes.Deps{
		Config:    cfg,
		Logger:    zl,
		Metrics:   rec,
		DB:        config.DB,
		Matches:   scoring,
		Standings: table,
		Live:      live.NewHandler(hub, scoring, cfg.Live.WriteTimeout, origins, zl.Named("live")),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zl.Info("starting server", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	hub.Close()
	relay.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
