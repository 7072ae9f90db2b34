package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calendarapp/calendar-backend/internal/api"
	"github.com/calendarapp/calendar-backend/internal/infrastructure/config"
	mongodb "github.com/calendarapp/calendar-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/calendarapp/calendar-backend/internal/infrastructure/db/redis"
	"github.com/calendarapp/calendar-backend/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	apptRepo := mongodb.NewAppointmentRepository(db)
	userRepo := mongodb.NewUserRepository(db, apptRepo)
	if err := apptRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create appointment indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	opts := api.Options{
		Mongo:     db,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		CacheTTL:  cfg.Redis.CacheTTL,
		Logger:    log,
	}

	if cfg.Redis.Addr != "" {
		rc, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() {
			_ = rc.Close()
		}()
		opts.Redis = rc
	} else {
		log.Warn().Msg("REDIS_ADDR not set, running without the appointment list cache")
	}

	e := api.NewRouter(opts)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
