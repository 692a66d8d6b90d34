package worker

// alerta_worker.go
// Processes alert notification jobs from QueueAlertas: loads the persisted
// NotificacionAlerta, composes the email for the supervision inbox and sends
// it via SMTP. Failures are rescheduled with exponential backoff; after
// MaxAlertaRetries the notification is marked "error" and parked in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/infra"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxAlertaRetries = 3

type AlertaWorker struct {
	notifRepo    repository.NotificacionRepository
	cierreRepo   repository.CierreRepository
	mailer       *infra.Mailer
	rdb          *redis.Client
	alertasEmail string
}

func NewAlertaWorker(
	notifRepo repository.NotificacionRepository,
	cierreRepo repository.CierreRepository,
	mailer *infra.Mailer,
	rdb *redis.Client,
	alertasEmail string,
) *AlertaWorker {
	return &AlertaWorker{
		notifRepo:    notifRepo,
		cierreRepo:   cierreRepo,
		mailer:       mailer,
		rdb:          rdb,
		alertasEmail: alertasEmail,
	}
}

// Process handles a single alert job. Delivery is at-least-once: a job may be
// retried after a crash, so an already-sent notification is skipped.
func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	notifID, err := uuid.Parse(payload.NotificacionID)
	if err != nil {
		log.Error().Str("notificacion_id", payload.NotificacionID).Msg("alerta_worker: invalid notificacion_id")
		return
	}

	notif, err := w.notifRepo.FindByID(ctx, notifID)
	if err != nil {
		log.Error().Err(err).Str("notificacion_id", payload.NotificacionID).Msg("alerta_worker: notificacion not found")
		return
	}
	if notif.Estado != "pendiente" {
		return
	}

	subject := fmt.Sprintf("Alerta de cierre (%s)", notif.Tipo)
	body := notif.Detalle
	if cierre, err := w.cierreRepo.FindByID(ctx, notif.CierreID); err == nil {
		subject = fmt.Sprintf("Alerta %s: %s turno %s", notif.Tipo, cierre.Fecha.Format("02/01/2006"), cierre.Turno)
		body = fmt.Sprintf("Sucursal %s, %s, turno %s:\n%s",
			cierre.SucursalID, cierre.Fecha.Format("02/01/2006"), cierre.Turno, notif.Detalle)
	}

	if err := w.mailer.SendAlerta(w.alertasEmail, subject, body); err != nil {
		w.scheduleRetry(ctx, notif.ID, raw, err)
		return
	}

	notif.Estado = "enviada"
	notif.NextRetryAt = nil
	notif.LastError = nil
	if err := w.notifRepo.Update(ctx, notif); err != nil {
		log.Error().Err(err).Str("notificacion_id", notif.ID.String()).Msg("alerta_worker: failed to mark enviada")
		return
	}
	log.Info().Str("tipo", notif.Tipo).Str("notificacion_id", notif.ID.String()).Msg("alerta_worker: alerta enviada")
}

func (w *AlertaWorker) scheduleRetry(ctx context.Context, notifID uuid.UUID, raw json.RawMessage, sendErr error) {
	notif, err := w.notifRepo.FindByID(ctx, notifID)
	if err != nil {
		return
	}

	notif.RetryCount++
	errMsg := sendErr.Error()
	notif.LastError = &errMsg

	if notif.RetryCount >= MaxAlertaRetries {
		notif.Estado = "error"
		notif.NextRetryAt = nil
		log.Error().
			Str("notificacion_id", notif.ID.String()).
			Int("retries", notif.RetryCount).
			Msg("alerta_worker: max retries exceeded, moving to error/DLQ")
		SendToDLQ(ctx, w.rdb, QueueAlertas, "alerta", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxAlertaRetries, errMsg),
			notif.RetryCount)
	} else {
		nextRetry := time.Now().Add(computeRetryBackoff(notif.RetryCount))
		notif.NextRetryAt = &nextRetry
		log.Warn().
			Str("notificacion_id", notif.ID.String()).
			Int("retry_count", notif.RetryCount).
			Time("next_retry_at", nextRetry).
			Msg("alerta_worker: envío fallido, reintento programado")
	}

	_ = w.notifRepo.Update(ctx, notif)
}

// computeRetryBackoff doubles per attempt: 30s, 1m, 2m, …
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := 30 * time.Second
	for i := 1; i < retryCount; i++ {
		backoff *= 2
	}
	return backoff
}
