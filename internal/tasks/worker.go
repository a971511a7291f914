package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/metrics"

	"github.com/cenkalti/backoff/v5"
)

// WorkerConfig tunes the worker pool.
type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
	MaxAttempts  int
	// RetryDelay is the wait after the first failure; later failures double it
	// up to MaxRetryDelay.
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 5
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 30 * time.Second
	}
	if c.MaxRetryDelay <= 0 {
		c.MaxRetryDelay = 30 * time.Minute
	}
	return c
}

// Worker claims queued tasks from the store and runs their handlers.
type Worker struct {
	store    domain.TaskStore
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	config   WorkerConfig
	now      func() time.Time
}

func NewWorker(store domain.TaskStore, registry *Registry, logger *slog.Logger, m *metrics.Metrics, config WorkerConfig) *Worker {
	return &Worker{
		store:    store,
		registry: registry,
		logger:   logger.With("component", "TaskWorker"),
		metrics:  m,
		config:   config.withDefaults(),
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled, then waits for in-flight tasks.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("starting task worker pool", "concurrency", w.config.Concurrency)
	var wg sync.WaitGroup
	for i := range w.config.Concurrency {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.runLoop(ctx, workerID)
		}(i + 1)
	}
	wg.Wait()
	return nil
}

func (w *Worker) runLoop(ctx context.Context, workerID int) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker loop stopped", "worker_id", workerID)
			return
		case <-ticker.C:
			// Drain runnable tasks before waiting for the next tick.
			for ctx.Err() == nil {
				processed, err := w.ProcessNext(ctx)
				if err != nil {
					w.logger.WarnContext(ctx, "claim failed", "worker_id", workerID, "err", err)
					break
				}
				if !processed {
					break
				}
			}
		}
	}
}

// ProcessNext claims one task and runs it. It reports false when no task was
// runnable.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	t, err := w.store.ClaimNext(ctx, w.config.MaxAttempts)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}

	start := w.now()
	var runErr error
	if h, ok := w.registry.Get(t.Name); ok {
		runErr = runHandler(ctx, h, t.Params)
	} else {
		runErr = &missingHandlerError{Name: t.Name}
	}

	outcome := "succeeded"
	if runErr == nil {
		if err := w.store.MarkSucceeded(ctx, t.ID); err != nil {
			w.logger.ErrorContext(ctx, "mark succeeded", "task_id", t.ID, "err", err)
		}
	} else {
		outcome = "failed"
		retryAt := w.now().Add(w.retryDelay(t.Attempts))
		w.logger.WarnContext(ctx, "task failed",
			"task_id", t.ID,
			"task", t.Name,
			"attempt", t.Attempts,
			"retry_at", retryAt,
			"err", runErr,
		)
		if err := w.store.MarkFailed(ctx, t.ID, runErr.Error(), retryAt); err != nil {
			w.logger.ErrorContext(ctx, "mark failed", "task_id", t.ID, "err", err)
		}
	}
	if w.metrics != nil {
		w.metrics.RecordTaskProcessed(t.Name, outcome, w.now().Sub(start).Seconds())
	}
	return true, nil
}

// retryDelay returns the wait before the next attempt after the given number of
// attempts have been made.
func (w *Worker) retryDelay(attempts int) time.Duration {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     w.config.RetryDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         w.config.MaxRetryDelay,
	}
	b.Reset()
	d := b.NextBackOff()
	for i := 1; i < attempts; i++ {
		d = b.NextBackOff()
	}
	return d
}
