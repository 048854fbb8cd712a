package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Extra-Chill/extrachill-blocks/internal/services"
	"github.com/Extra-Chill/extrachill-blocks/internal/services/queue"
)

const (
	pollInterval = 500 * time.Millisecond
	batchSize    = 50
)

// Worker drains the trivia attempt queue and folds attempts into per-block
// aggregates. Attempts are append-only; a failed aggregate write is logged
// and the attempt dropped, never retried, because aggregates are advisory
// analytics rather than a ledger.
type Worker struct {
	id      string
	queue   *queue.AttemptQueue
	storage services.Storage
	log     *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new worker instance
func New(attemptQueue *queue.AttemptQueue, storage services.Storage, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:      workerID,
		queue:   attemptQueue,
		storage: storage,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins draining the queue. It returns when Stop is called.
func (w *Worker) Start() error {
	w.log.Info("Worker starting", "worker_id", w.id)

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down", "worker_id", w.id)
			return nil
		default:
			processed, err := w.drainBatch()
			if err != nil {
				w.log.Error("Error draining attempt queue", "error", err, "worker_id", w.id)
				// Continue processing even on error
				w.sleep(time.Second)
				continue
			}
			if processed == 0 {
				w.sleep(pollInterval)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested", "worker_id", w.id)
	w.cancel()
}

// drainBatch pulls one batch from the queue and records each attempt.
func (w *Worker) drainBatch() (int, error) {
	ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
	defer cancel()

	attempts, err := w.queue.DequeueBatch(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to dequeue attempts: %w", err)
	}

	for _, attempt := range attempts {
		if err := w.storage.RecordAttempt(ctx, attempt); err != nil {
			w.log.Error("Failed to record attempt",
				"error", err,
				"worker_id", w.id,
				"attempt_id", attempt.ID.String(),
				"block_id", attempt.BlockID)
			continue
		}
		w.log.Debug("Recorded attempt",
			"worker_id", w.id,
			"block_id", attempt.BlockID,
			"is_correct", attempt.IsCorrect)
	}
	return len(attempts), nil
}

// sleep waits for d or until the worker is stopped.
func (w *Worker) sleep(d time.Duration) {
	select {
	case <-w.ctx.Done():
	case <-time.After(d):
	}
}
