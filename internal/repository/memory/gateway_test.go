package memory

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_GetPut(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	k := domain.ConferenceKey("alice", 1)

	_, err := g.Get(ctx, k)
	require.ErrorIs(t, err, domain.ErrNoSuchEntity)

	conf := &domain.Conference{Key: k, Name: "GopherCon", Topics: []string{"Go"}}
	got, err := g.Put(ctx, conf)
	require.NoError(t, err)
	assert.Equal(t, k, got)

	conf.Topics[0] = "mutated"
	e, err := g.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, e.(*domain.Conference).Topics)
}

func TestGateway_GetMultiLeavesGaps(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	k1 := domain.SpeakerKey("Ada")
	k2 := domain.SpeakerKey("Grace")
	_, err := g.Put(ctx, &domain.Speaker{Key: k2, Name: "Grace"})
	require.NoError(t, err)

	got, err := g.GetMulti(ctx, []domain.Key{k1, k2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0])
	assert.Equal(t, "Grace", got[1].(*domain.Speaker).Name)
}

func TestGateway_AllocateIDUnique(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	seen := map[int64]bool{}
	for range 10 {
		id, err := g.AllocateID(ctx, domain.KindConference, nil)
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestGateway_TransactionAbortDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	pk := domain.ProfileKey("alice")
	boom := errors.New("boom")

	err := g.RunInTransaction(ctx, []domain.Key{pk}, func(ctx context.Context, tx domain.Tx) error {
		require.NoError(t, tx.Put(ctx, &domain.Profile{Key: pk, DisplayName: "alice"}))
		e, err := tx.Get(ctx, pk)
		require.NoError(t, err)
		assert.Equal(t, "alice", e.(*domain.Profile).DisplayName)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = g.Get(ctx, pk)
	assert.ErrorIs(t, err, domain.ErrNoSuchEntity)
}

func TestGateway_TransactionCancelledContextNotTransient(t *testing.T) {
	g := NewGateway()
	pk := domain.ProfileKey("alice")
	ctx, cancel := context.WithCancel(context.Background())

	err := g.RunInTransaction(ctx, []domain.Key{pk}, func(ctx context.Context, tx domain.Tx) error {
		require.NoError(t, tx.Put(ctx, &domain.Profile{Key: pk, DisplayName: "alice"}))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrTransient)

	_, err = g.Get(context.Background(), pk)
	assert.ErrorIs(t, err, domain.ErrNoSuchEntity)
}

func TestGateway_TransactionRejectsKeyOutsideGroup(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	err := g.RunInTransaction(ctx, []domain.Key{domain.ProfileKey("alice")}, func(ctx context.Context, tx domain.Tx) error {
		return tx.Put(ctx, &domain.Profile{Key: domain.ProfileKey("bob")})
	})
	require.Error(t, err)
}

func TestGateway_RunRejectsUnsortedInequality(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	q := domain.Query{
		Kind:    domain.KindConference,
		Filters: []domain.Filter{{Field: domain.FieldMonth, Op: domain.OpGT, Value: int64(3)}},
		Orders:  []domain.Order{{Field: domain.FieldName}},
	}
	for _, err := range g.Run(ctx, q) {
		require.ErrorIs(t, err, domain.ErrInvalidFilter)
		return
	}
	t.Fatal("expected an error")
}

func TestGateway_RunMultiValuedTopics(t *testing.T) {
	ctx := context.Background()
	g := NewGateway()
	for i, topics := range [][]string{{"Go", "Cloud"}, {"Rust"}, {"Cloud", "AI"}} {
		_, err := g.Put(ctx, &domain.Conference{Key: domain.ConferenceKey("o", int64(i+1)), Name: topics[0], Topics: topics})
		require.NoError(t, err)
	}
	q := domain.Query{
		Kind:    domain.KindConference,
		Filters: []domain.Filter{{Field: domain.FieldTopics, Op: domain.OpEQ, Value: "Cloud"}},
		Orders:  []domain.Order{{Field: domain.FieldName}},
	}
	var names []string
	for e, err := range g.Run(ctx, q) {
		require.NoError(t, err)
		names = append(names, e.(*domain.Conference).Name)
	}
	assert.Equal(t, []string{"Cloud", "Go"}, names)
}
