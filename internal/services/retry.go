package services

import (
	"context"
	"errors"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/metrics"

	"github.com/cenkalti/backoff/v5"
)

const ledgerMaxTries = 3

// retrier reruns ledger operations aborted by contention. Every other error is
// final.
type retrier struct {
	metrics    *metrics.Metrics
	newBackOff func() backoff.BackOff
}

func newRetrier(m *metrics.Metrics) retrier {
	return retrier{
		metrics: m,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = time.Second
			return b
		},
	}
}

func (r retrier) do(ctx context.Context, op string, fn func(ctx context.Context) (bool, error)) (bool, error) {
	attempt := 0
	ok, err := backoff.Retry(ctx, func() (bool, error) {
		attempt++
		if attempt > 1 && r.metrics != nil {
			r.metrics.RecordLedgerRetry(op)
		}
		ok, err := fn(ctx)
		if err != nil && !errors.Is(err, domain.ErrTransient) {
			return false, backoff.Permanent(err)
		}
		return ok, err
	}, backoff.WithBackOff(r.newBackOff()), backoff.WithMaxTries(ledgerMaxTries))
	if r.metrics != nil {
		r.metrics.RecordLedgerOp(op, ledgerOutcome(ok, err))
	}
	return ok, err
}

func ledgerOutcome(ok bool, err error) string {
	switch {
	case err == nil && ok:
		return "ok"
	case err == nil:
		return "noop"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTransient):
		return "aborted"
	}
	return "error"
}
