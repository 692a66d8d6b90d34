package worker

// retry_cron.go
// Background goroutine that periodically re-encola notificaciones de alerta
// stuck in estado='pendiente' with a next_retry_at in the past. The alert
// worker itself decides success, next backoff or DLQ; the cron only feeds
// jobs back into the queue.

import (
	"context"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds the dependencies for the retry goroutine.
type RetryCronConfig struct {
	NotifRepo  repository.NotificacionRepository
	Dispatcher *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending notificaciones and re-enqueues them for the alert worker.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	pendientes, err := cfg.NotifRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(pendientes) == 0 {
		return
	}

	log.Info().Int("count", len(pendientes)).Msg("retry_cron: re-enqueuing pending notificaciones")

	for i := range pendientes {
		notif := &pendientes[i]

		// Push next_retry_at forward so the next tick does not pick the same
		// row up again before the worker has had a chance to process it.
		nextRetry := now.Add(computeRetryBackoff(notif.RetryCount + 1))
		notif.NextRetryAt = &nextRetry
		if err := cfg.NotifRepo.Update(ctx, notif); err != nil {
			log.Error().Err(err).Str("notificacion_id", notif.ID.String()).Msg("retry_cron: failed to update notificacion")
			continue
		}

		payload := AlertaJobPayload{NotificacionID: notif.ID.String()}
		if err := cfg.Dispatcher.EnqueueAlerta(ctx, payload); err != nil {
			log.Error().Err(err).Str("notificacion_id", notif.ID.String()).Msg("retry_cron: failed to enqueue")
		}
	}
}
