package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/qubitgyan/qubitgyan-backend/internal/config"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ProgressBatchSize    = 50
	ProgressBatchTimeout = 2 * time.Second
	ProgressPollTimeout  = 1 * time.Second
)

// ProgressWorker drains completion events from the Redis queue and upserts
// student_progress rows in batches.
type ProgressWorker struct {
	progress *repository.ProgressRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewProgressWorker creates a new ProgressWorker.
func NewProgressWorker(progress *repository.ProgressRepository, rdb *redis.Client, log zerolog.Logger) *ProgressWorker {
	return &ProgressWorker{
		progress: progress,
		rdb:      rdb,
		log:      log.With().Str("component", "progress_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled, then flushes whatever
// is left in the batch.
func (w *ProgressWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ProgressWorker started")

	batch := make([]*model.ProgressMessage, 0, ProgressBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ProgressBatchSize || time.Since(lastFlush) >= ProgressBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ProgressPollTimeout, config.WorkerKey.ProgressQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.ProgressMessage
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// flushSafe tries one bulk upsert, falling back to per-row upserts with
// requeue on failure so a bad row cannot poison the whole batch.
func (w *ProgressWorker) flushSafe(ctx context.Context, batch []*model.ProgressMessage) {
	if len(batch) == 0 {
		return
	}

	userIDs := make([]int, len(batch))
	resourceIDs := make([]int, len(batch))
	for i, p := range batch {
		userIDs[i] = p.UserID
		resourceIDs[i] = p.ResourceID
	}

	if err := w.progress.BulkMarkCompleted(ctx, userIDs, resourceIDs); err != nil {
		w.log.Warn().Err(err).Msg("bulk progress upsert failed, using fallback")

		for _, p := range batch {
			if err := w.progress.Touch(ctx, p.UserID, p.ResourceID, true); err != nil {
				w.log.Error().Err(err).Msg("single progress upsert failed, requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.ProgressQueue, raw)
			}
		}
	}
}
