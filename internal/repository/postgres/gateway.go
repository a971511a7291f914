package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// SQLSTATE codes reported when a serializable transaction loses a race.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// Gateway is the Entity Gateway over PostgreSQL. Each kind lives in its own
// table; keys are mapped onto the table's primary and ancestor columns.
type Gateway struct {
	DB *sql.DB
}

// NewGateway returns a Gateway over db.
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{DB: db}
}

var _ domain.EntityGateway = (*Gateway)(nil)

func (g *Gateway) Get(ctx context.Context, key domain.Key) (domain.Entity, error) {
	return get(ctx, g.DB, key)
}

func get(ctx context.Context, q querier, key domain.Key) (domain.Entity, error) {
	if !key.WellFormed() {
		return nil, domain.NewInvalidInputError("key", "malformed key")
	}
	t, err := tableFor(key.Kind)
	if err != nil {
		return nil, err
	}
	stmt, args := selectByKey(t, key)
	e, err := t.scan(q.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoSuchEntity
		}
		return nil, err
	}
	return e, nil
}

func (g *Gateway) GetMulti(ctx context.Context, keys []domain.Key) ([]domain.Entity, error) {
	out := make([]domain.Entity, len(keys))
	for i, k := range keys {
		e, err := g.Get(ctx, k)
		if errors.Is(err, domain.ErrNoSuchEntity) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", k, err)
		}
		out[i] = e
	}
	return out, nil
}

func (g *Gateway) Put(ctx context.Context, e domain.Entity) (domain.Key, error) {
	if err := put(ctx, g.DB, e); err != nil {
		return domain.Key{}, err
	}
	return e.EntityKey(), nil
}

func put(ctx context.Context, q querier, e domain.Entity) error {
	k := e.EntityKey()
	if !k.WellFormed() {
		return fmt.Errorf("put %T: malformed key %s", e, k)
	}
	t, err := tableFor(k.Kind)
	if err != nil {
		return err
	}
	return t.upsert(ctx, q, e)
}

// AllocateID draws from a single sequence, so ids are unique across parents.
func (g *Gateway) AllocateID(ctx context.Context, kind domain.Kind, parent *domain.Key) (int64, error) {
	var id int64
	if err := g.DB.QueryRowContext(ctx, `SELECT nextval('entity_ids')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", kind, err)
	}
	return id, nil
}

// Run streams the rows of q. Each iteration issues a new SELECT.
func (g *Gateway) Run(ctx context.Context, q domain.Query) iter.Seq2[domain.Entity, error] {
	return func(yield func(domain.Entity, error) bool) {
		stmt, args, err := buildQuery(q)
		if err != nil {
			yield(nil, err)
			return
		}
		t, _ := tableFor(q.Kind)
		rows, err := g.DB.QueryContext(ctx, stmt, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			e, err := t.scan(rows)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// RunInTransaction runs fn in a SERIALIZABLE transaction after taking a
// transaction-scoped advisory lock on every group key, in sorted order.
func (g *Gateway) RunInTransaction(ctx context.Context, group []domain.Key, fn domain.TxFunc) error {
	paths := make([]string, 0, len(group))
	for _, k := range group {
		paths = append(paths, k.String())
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	tx, err := g.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return classify("begin", err)
	}
	for _, p := range paths {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, p); err != nil {
			_ = tx.Rollback()
			return classify("lock", err)
		}
	}
	if err := fn(ctx, &pgTx{tx: tx, group: group}); err != nil {
		_ = tx.Rollback()
		return classify("transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return classify("commit", err)
	}
	return nil
}

// classify turns serialization failures and deadlocks into TransientErrors and
// passes every other error through unchanged.
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return domain.NewTransientError(op, err)
		}
	}
	return err
}

type pgTx struct {
	tx    *sql.Tx
	group []domain.Key
}

func (t *pgTx) Get(ctx context.Context, key domain.Key) (domain.Entity, error) {
	return get(ctx, t.tx, key)
}

func (t *pgTx) Put(ctx context.Context, e domain.Entity) error {
	k := e.EntityKey()
	for _, g := range t.group {
		if k.HasAncestor(g) {
			return put(ctx, t.tx, e)
		}
	}
	return fmt.Errorf("put %s: key is outside the transaction's entity group", k)
}
