package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/infra"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/router"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async alert notifications. Handlers are wired here
	// (composition root) so the pool has full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	notifRepo := repository.NewNotificacionRepository(db)
	cierreRepo := repository.NewCierreRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Alertas: worker.NewAlertaWorker(notifRepo, cierreRepo, mailer, rdb, cfg.AlertasEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		NotifRepo:  notifRepo,
		Dispatcher: dispatcher,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Hoppiness Hub backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
