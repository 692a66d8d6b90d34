package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueAlertas = "jobs:alertas"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AlertaJobPayload points the worker at one persisted NotificacionAlerta.
type AlertaJobPayload struct {
	NotificacionID string `json:"notificacion_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueAlerta pushes an alert notification job to Redis.
func (d *Dispatcher) EnqueueAlerta(ctx context.Context, payload AlertaJobPayload) error {
	return d.enqueue(ctx, QueueAlertas, "alerta", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers groups the per-queue processors wired at the composition root.
type WorkerHandlers struct {
	Alertas *AlertaWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the alert queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAlertas).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "alerta":
		if handlers != nil && handlers.Alertas != nil {
			handlers.Alertas.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
