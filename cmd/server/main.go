package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/realestate/admin-gateway/internal/api"
	"github.com/realestate/admin-gateway/internal/api/metrics"
	"github.com/realestate/admin-gateway/internal/core/service"
	mongodb "github.com/realestate/admin-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/realestate/admin-gateway/internal/infrastructure/db/redis"
	"github.com/realestate/admin-gateway/internal/infrastructure/queue"
	"github.com/realestate/admin-gateway/internal/notify"
	"github.com/realestate/admin-gateway/internal/pkg/config"
	"github.com/realestate/admin-gateway/internal/session"
	"github.com/realestate/admin-gateway/internal/upstream"
	"github.com/realestate/admin-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Timeout: cfg.Redis.Timeout})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Timeout: cfg.Mongo.Timeout})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	// --- Sessions ---
	sessions := session.NewManager(session.NewRedisStore(rdb), nil, logger.Component("session"))

	// --- Audit trail workers ---
	activityRepo := mongodb.NewActivityRepository(db)
	recorder := queue.NewRecorder(0, activityRepo, logger.Component("activity"))
	recorder.Start(ctx)
	activity := service.NewActivityService(activityRepo, recorder, nil)

	// --- Upstream access layer ---
	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger.Component("upstream"),
		upstream.WithLoadingHooks(metrics.LoadingHooks{}),
		upstream.WithRequestMetrics(metrics.RequestObserver{}),
		upstream.WithNotifier(notify.NewLogNotifier(logger.Component("notify"))),
		upstream.WithOnUnauthorized(func(ctx context.Context, token string) {
			if err := sessions.Revoke(ctx, token); err != nil {
				log.Warn().Err(err).Msg("failed to revoke session after upstream 401")
			}
		}),
	)

	e := api.NewRouter(cfg, api.Deps{
		Mongo:    db,
		Redis:    rdb,
		Upstream: client,
		Sessions: sessions,
		Activity: activity,
		Log:      logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("gateway stopped cleanly")
}
