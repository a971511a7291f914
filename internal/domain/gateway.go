package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSuchEntity is returned by gateway reads for an absent key. Services turn
// it into a NotFoundError carrying the key.
var ErrNoSuchEntity = errors.New("no such entity")

// Entity is an aggregate stored in the Entity Gateway.
type Entity interface {
	EntityKey() Key
}

// Reader reads single aggregates. Both the gateway and a transaction are readers.
type Reader interface {
	Get(ctx context.Context, key Key) (Entity, error)
}

// Tx is the view of the gateway inside RunInTransaction. Reads observe the
// transaction's own writes; writes become visible to others only on commit and
// are restricted to the declared entity group.
type Tx interface {
	Reader
	Put(ctx context.Context, e Entity) error
}

// TxFunc is the read-decide-write body of a transaction. Returning an error
// aborts the transaction and leaves every aggregate unmodified.
type TxFunc func(ctx context.Context, tx Tx) error

// EntityGateway is the key-value aggregate store.
type EntityGateway interface {
	Reader
	Runner
	// GetMulti returns entities aligned with keys; absent keys leave nil gaps.
	GetMulti(ctx context.Context, keys []Key) ([]Entity, error)
	Put(ctx context.Context, e Entity) (Key, error)
	// AllocateID reserves a numeric id for a new child of parent.
	AllocateID(ctx context.Context, kind Kind, parent *Key) (int64, error)
	// RunInTransaction executes fn serializably against the entity group. A
	// contention abort is reported as a *TransientError; any other error from fn
	// is returned unchanged.
	RunInTransaction(ctx context.Context, group []Key, fn TxFunc) error
}

// GetAs reads key and asserts the entity type.
func GetAs[T Entity](ctx context.Context, r Reader, key Key) (T, error) {
	var zero T
	e, err := r.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("key %s holds %T", key, e)
	}
	return t, nil
}

// MustExist reads key as T and converts absence into a NotFoundError.
func MustExist[T Entity](ctx context.Context, r Reader, key Key) (T, error) {
	t, err := GetAs[T](ctx, r, key)
	if errors.Is(err, ErrNoSuchEntity) {
		return t, NewNotFoundError(key)
	}
	return t, err
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
