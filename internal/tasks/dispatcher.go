package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/metrics"

	"github.com/google/uuid"
)

// PostgresDispatcher queues tasks in the durable task store. A Worker picks
// them up, possibly in another process.
type PostgresDispatcher struct {
	store   domain.TaskStore
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewPostgresDispatcher returns a dispatcher writing to store.
func NewPostgresDispatcher(store domain.TaskStore, m *metrics.Metrics) *PostgresDispatcher {
	return &PostgresDispatcher{store: store, metrics: m, now: time.Now}
}

func (d *PostgresDispatcher) Enqueue(ctx context.Context, name string, params map[string]string) error {
	now := d.now().UTC()
	t := &domain.Task{
		ID:        uuid.NewString(),
		Name:      name,
		Params:    copyParams(params),
		Status:    domain.TaskQueued,
		RunAfter:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.store.Create(ctx, t); err != nil {
		return fmt.Errorf("enqueue %s: %w", name, err)
	}
	if d.metrics != nil {
		d.metrics.RecordTaskEnqueued(name)
	}
	return nil
}

// InlineDispatcher runs each task on its own goroutine in the current process.
// Tasks outlive the request that enqueued them; failures are logged and
// dropped.
type InlineDispatcher struct {
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
}

// NewInlineDispatcher returns a dispatcher that runs handlers from registry.
func NewInlineDispatcher(registry *Registry, logger *slog.Logger, m *metrics.Metrics) *InlineDispatcher {
	return &InlineDispatcher{registry: registry, logger: logger, metrics: m}
}

func (d *InlineDispatcher) Enqueue(ctx context.Context, name string, params map[string]string) error {
	h, ok := d.registry.Get(name)
	if !ok {
		return &missingHandlerError{Name: name}
	}
	if d.metrics != nil {
		d.metrics.RecordTaskEnqueued(name)
	}
	params = copyParams(params)
	runCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		start := time.Now()
		err := runHandler(runCtx, h, params)
		outcome := "succeeded"
		if err != nil {
			outcome = "failed"
			d.logger.ErrorContext(runCtx, "task failed", "task", name, "err", err)
		}
		if d.metrics != nil {
			d.metrics.RecordTaskProcessed(name, outcome, time.Since(start).Seconds())
		}
	}()
	return nil
}

// Wait blocks until every task started so far has returned.
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}

func copyParams(params map[string]string) map[string]string {
	if params == nil {
		return map[string]string{}
	}
	return maps.Clone(params)
}

// runHandler turns a handler panic into an error.
func runHandler(ctx context.Context, h Handler, params map[string]string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.Run(ctx, params)
}
