// Package memory is an in-process Entity Gateway. It backs STORAGE_DRIVER=memory
// and the concurrency tests of the ledger.
package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sort"
	"sync"

	"conferencecentral/internal/domain"
)

// Gateway keeps entities in a map keyed by key path. Transactions lock every
// key of their entity group in sorted order and stage writes until commit.
type Gateway struct {
	mu       sync.RWMutex
	entities map[string]domain.Entity
	nextID   int64

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewGateway returns an empty gateway.
func NewGateway() *Gateway {
	return &Gateway{
		entities: make(map[string]domain.Entity),
		locks:    make(map[string]*sync.Mutex),
	}
}

var _ domain.EntityGateway = (*Gateway)(nil)

func (g *Gateway) Get(ctx context.Context, key domain.Key) (domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entities[key.String()]
	if !ok {
		return nil, domain.ErrNoSuchEntity
	}
	return clone(e), nil
}

func (g *Gateway) GetMulti(ctx context.Context, keys []domain.Key) ([]domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Entity, len(keys))
	for i, k := range keys {
		if e, ok := g.entities[k.String()]; ok {
			out[i] = clone(e)
		}
	}
	return out, nil
}

func (g *Gateway) Put(ctx context.Context, e domain.Entity) (domain.Key, error) {
	if err := ctx.Err(); err != nil {
		return domain.Key{}, err
	}
	k := e.EntityKey()
	if k.IsZero() {
		return domain.Key{}, fmt.Errorf("put %T: empty key", e)
	}
	g.mu.Lock()
	g.entities[k.String()] = clone(e)
	g.mu.Unlock()
	return k, nil
}

func (g *Gateway) AllocateID(ctx context.Context, kind domain.Kind, parent *domain.Key) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	return g.nextID, nil
}

// Run evaluates q against a snapshot taken when iteration starts.
func (g *Gateway) Run(ctx context.Context, q domain.Query) iter.Seq2[domain.Entity, error] {
	return func(yield func(domain.Entity, error) bool) {
		if err := q.Check(); err != nil {
			yield(nil, err)
			return
		}
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}
		g.mu.RLock()
		var matched []domain.Indexed
		for _, e := range g.entities {
			ie, ok := e.(domain.Indexed)
			if ok && q.Matches(ie) {
				matched = append(matched, clone(e).(domain.Indexed))
			}
		}
		g.mu.RUnlock()

		sort.SliceStable(matched, func(i, j int) bool { return q.Less(matched[i], matched[j]) })
		for _, e := range matched {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (g *Gateway) RunInTransaction(ctx context.Context, group []domain.Key, fn domain.TxFunc) error {
	paths := make([]string, 0, len(group))
	for _, k := range group {
		paths = append(paths, k.String())
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	for _, p := range paths {
		g.lock(p).Lock()
	}
	defer func() {
		for i := len(paths) - 1; i >= 0; i-- {
			g.lock(paths[i]).Unlock()
		}
	}()

	tx := &tx{g: g, group: group, staged: make(map[string]domain.Entity)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	for p, e := range tx.staged {
		g.entities[p] = e
	}
	g.mu.Unlock()
	return nil
}

func (g *Gateway) lock(path string) *sync.Mutex {
	g.locksMu.Lock()
	defer g.locksMu.Unlock()
	m, ok := g.locks[path]
	if !ok {
		m = &sync.Mutex{}
		g.locks[path] = m
	}
	return m
}

type tx struct {
	g      *Gateway
	group  []domain.Key
	staged map[string]domain.Entity
}

func (t *tx) Get(ctx context.Context, key domain.Key) (domain.Entity, error) {
	if e, ok := t.staged[key.String()]; ok {
		return clone(e), nil
	}
	return t.g.Get(ctx, key)
}

func (t *tx) Put(ctx context.Context, e domain.Entity) error {
	k := e.EntityKey()
	if !inGroup(k, t.group) {
		return fmt.Errorf("put %s: key is outside the transaction's entity group", k)
	}
	t.staged[k.String()] = clone(e)
	return nil
}

func inGroup(k domain.Key, group []domain.Key) bool {
	for _, g := range group {
		if k.HasAncestor(g) {
			return true
		}
	}
	return false
}

// clone copies e so callers never alias stored state.
func clone(e domain.Entity) domain.Entity {
	switch v := e.(type) {
	case *domain.Profile:
		c := *v
		c.ConferenceKeysToAttend = slices.Clone(v.ConferenceKeysToAttend)
		c.SessionWishlist = slices.Clone(v.SessionWishlist)
		return &c
	case *domain.Conference:
		c := *v
		c.Topics = slices.Clone(v.Topics)
		return &c
	case *domain.Session:
		c := *v
		return &c
	case *domain.Speaker:
		c := *v
		return &c
	}
	return e
}
