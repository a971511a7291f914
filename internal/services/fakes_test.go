package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/ledger"
	"conferencecentral/internal/repository/memory"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/require"
)

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	alice   = domain.AuthUser{ID: "alice", Email: "alice@example.com", Name: "Alice"}
	bob     = domain.AuthUser{ID: "bob", Email: "bob@example.com"}
)

const testTimeout = 5 * time.Second

// fakeDispatcher records enqueued tasks.
type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []enqueued
	err   error
}

type enqueued struct {
	name   string
	params map[string]string
}

func (d *fakeDispatcher) Enqueue(_ context.Context, name string, params map[string]string) error {
	if d.err != nil {
		return d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, enqueued{name: name, params: params})
	return nil
}

func (d *fakeDispatcher) named(name string) []enqueued {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []enqueued
	for _, t := range d.tasks {
		if t.name == name {
			out = append(out, t)
		}
	}
	return out
}

// fakeFetcher returns a canned Sessionize response.
type fakeFetcher struct {
	resp domain.SessionFetcherResponse
	err  error
}

func (f *fakeFetcher) Fetch(context.Context, string) (domain.SessionFetcherResponse, error) {
	return f.resp, f.err
}

// flakyGateway aborts the first failures transactions with a contention error.
type flakyGateway struct {
	*memory.Gateway
	mu       sync.Mutex
	failures int
	calls    int
}

func (g *flakyGateway) RunInTransaction(ctx context.Context, group []domain.Key, fn domain.TxFunc) error {
	g.mu.Lock()
	g.calls++
	fail := g.calls <= g.failures
	g.mu.Unlock()
	if fail {
		return domain.NewTransientError("tx", errors.New("contention"))
	}
	return g.Gateway.RunInTransaction(ctx, group, fn)
}

// sessionPutLimitGateway fails every session Put after the first limit.
type sessionPutLimitGateway struct {
	*memory.Gateway
	mu    sync.Mutex
	limit int
	puts  int
}

func (g *sessionPutLimitGateway) Put(ctx context.Context, e domain.Entity) (domain.Key, error) {
	if e.EntityKey().Kind == domain.KindSession {
		g.mu.Lock()
		g.puts++
		over := g.puts > g.limit
		g.mu.Unlock()
		if over {
			return domain.Key{}, errors.New("disk full")
		}
	}
	return g.Gateway.Put(ctx, e)
}

type fixture struct {
	gateway     domain.EntityGateway
	dispatcher  *fakeDispatcher
	cache       domain.Cache
	fetcher     *fakeFetcher
	conferences *conferenceService
	sessions    *sessionService
	profiles    domain.ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, memory.NewGateway())
}

func newFixtureWith(t *testing.T, gw domain.EntityGateway) *fixture {
	t.Helper()
	f := &fixture{
		gateway:    gw,
		dispatcher: &fakeDispatcher{},
		cache:      cache.NewMemory(),
		fetcher:    &fakeFetcher{},
	}
	lm := ledger.NewManager(gw)
	f.conferences = NewConferenceService(gw, lm, f.dispatcher, f.cache, discard, nil, testTimeout).(*conferenceService)
	f.sessions = NewSessionService(gw, lm, f.dispatcher, f.cache, f.fetcher, discard, nil, testTimeout).(*sessionService)
	f.profiles = NewProfileService(gw, testTimeout)

	zero := func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	f.conferences.retry.newBackOff = zero
	f.sessions.retry.newBackOff = zero
	return f
}

func (f *fixture) createConference(t *testing.T, owner domain.AuthUser, name string, seats int) *domain.Conference {
	t.Helper()
	c, err := f.conferences.CreateConference(context.Background(), owner, domain.ConferenceInput{
		Name:         name,
		MaxAttendees: &seats,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) createSession(t *testing.T, owner domain.AuthUser, ck domain.Key, in domain.SessionInput) *domain.Session {
	t.Helper()
	s, err := f.sessions.CreateSession(context.Background(), owner, ck, in)
	require.NoError(t, err)
	return s.Session
}

func date(s string) *time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func tod(s string) *domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return &t
}

func sessionNames(in []*domain.SessionWithConference) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.Session.Name
	}
	return out
}

func conferenceNames(in []*domain.ConferenceWithOrganizer) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = c.Conference.Name
	}
	return out
}
