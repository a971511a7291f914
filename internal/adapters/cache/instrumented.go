package cache

import (
	"context"
	"log/slog"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/metrics"
)

type instrumented struct {
	next    domain.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// WithMetrics wraps c so every lookup is counted. Backend errors are logged at
// warn level and reported to callers as a miss.
func WithMetrics(c domain.Cache, m *metrics.Metrics, logger *slog.Logger) domain.Cache {
	return &instrumented{next: c, metrics: m, logger: logger}
}

func (c *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := c.next.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.RecordCacheLookup(key, "error")
		c.logger.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		return "", false, nil
	case ok:
		c.metrics.RecordCacheLookup(key, "hit")
	default:
		c.metrics.RecordCacheLookup(key, "miss")
	}
	return v, ok, nil
}

func (c *instrumented) Set(ctx context.Context, key, value string) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.logger.WarnContext(ctx, "cache set failed", "key", key, "err", err)
		return err
	}
	return nil
}

func (c *instrumented) Delete(ctx context.Context, key string) error {
	if err := c.next.Delete(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "cache delete failed", "key", key, "err", err)
		return err
	}
	return nil
}
