package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Cron schedules for recurring maintenance.
const (
	lowStockCron    = "0 6 * * *"
	idemCleanupCron = "30 3 * * *"
)

// Worker wraps the Asynq server and the cron scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// NewWorker constructs the worker with every handler and cron entry
// registered.
func NewWorker(redisOpts asynq.RedisClientOpt, handlers *Handlers, logger *slog.Logger) (*Worker, error) {
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeOrderConfirmation, handlers.HandleOrderConfirmation)
	mux.HandleFunc(TaskTypeLowStockScan, handlers.HandleLowStockScan)
	mux.HandleFunc(TaskTypeIdempotencyCleanup, handlers.HandleIdempotencyCleanup)

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register(lowStockCron, NewLowStockScanTask(), asynq.Queue(QueueDefault)); err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(idemCleanupCron, NewIdempotencyCleanupTask(), asynq.Queue(QueueDefault)); err != nil {
		return nil, err
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}
