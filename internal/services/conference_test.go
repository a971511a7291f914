package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/memory"
	"conferencecentral/internal/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConference_Defaults(t *testing.T) {
	f := newFixture(t)
	c, err := f.conferences.CreateConference(context.Background(), alice, domain.ConferenceInput{Name: " GopherCon "})
	require.NoError(t, err)

	assert.Equal(t, "GopherCon", c.Name)
	assert.Equal(t, domain.DefaultConferenceCity, c.City)
	assert.Equal(t, []string{"Default", "Topic"}, c.Topics)
	assert.Equal(t, 0, c.MaxAttendees)
	assert.Equal(t, 0, c.SeatsAvailable)
	assert.Equal(t, 0, c.Month)
	assert.Equal(t, alice.ID, c.OrganizerUserID)
	assert.True(t, c.Key.WellFormed())
	assert.Equal(t, domain.ProfileKey(alice.ID), *c.Key.Parent)

	stored, err := domain.GetAs[*domain.Conference](context.Background(), f.gateway, c.Key)
	require.NoError(t, err)
	assert.Equal(t, c, stored)

	prof, err := domain.GetAs[*domain.Profile](context.Background(), f.gateway, domain.ProfileKey(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, "Alice", prof.DisplayName)
}

func TestCreateConference_FieldsAndEmail(t *testing.T) {
	f := newFixture(t)
	seats := 120
	c, err := f.conferences.CreateConference(context.Background(), alice, domain.ConferenceInput{
		Name:         "GopherCon",
		City:         "Berlin",
		Topics:       []string{"Go"},
		StartDate:    date("2025-06-01"),
		EndDate:      date("2025-06-03"),
		MaxAttendees: &seats,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, c.Month)
	assert.Equal(t, 120, c.SeatsAvailable)

	sent := f.dispatcher.named(domain.TaskSendConfirmationEmail)
	require.Len(t, sent, 1)
	assert.Equal(t, tasks.ConfirmationEmailParams(&domain.ConferenceCreatedEmailData{
		Email:          alice.Email,
		OrganizerName:  "Alice",
		ConferenceName: "GopherCon",
		City:           "Berlin",
		StartDate:      "2025-06-01",
		EndDate:        "2025-06-03",
		Topics:         []string{"Go"},
		MaxAttendees:   120,
		ConferenceKey:  c.Key.Encode(),
	}), sent[0].params)
}

func TestCreateConference_Invalid(t *testing.T) {
	neg := -1
	tests := []struct {
		name string
		in   domain.ConferenceInput
	}{
		{name: "missing name", in: domain.ConferenceInput{Name: "  "}},
		{name: "negative capacity", in: domain.ConferenceInput{Name: "x", MaxAttendees: &neg}},
		{name: "end before start", in: domain.ConferenceInput{Name: "x", StartDate: date("2025-06-02"), EndDate: date("2025-06-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.conferences.CreateConference(context.Background(), alice, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, f.dispatcher.tasks)
		})
	}
}

func TestCreateConference_EnqueueFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.err = errors.New("queue down")
	_, err := f.conferences.CreateConference(context.Background(), alice, domain.ConferenceInput{Name: "GopherCon"})
	assert.NoError(t, err)
}

func TestUpdateConference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.createConference(t, alice, "GopherCon", 10)
	_, err := f.conferences.Register(ctx, bob, c.Key)
	require.NoError(t, err)

	seats := 20
	got, err := f.conferences.UpdateConference(ctx, alice, c.Key, domain.ConferenceInput{
		City:         "Lisbon",
		StartDate:    date("2025-09-10"),
		MaxAttendees: &seats,
	})
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", got.Conference.Name)
	assert.Equal(t, "Lisbon", got.Conference.City)
	assert.Equal(t, 9, got.Conference.Month)
	assert.Equal(t, 20, got.Conference.MaxAttendees)
	assert.Equal(t, 19, got.Conference.SeatsAvailable)
	assert.Equal(t, "Alice", got.OrganizerDisplayName)

	t.Run("not owner", func(t *testing.T) {
		_, err := f.conferences.UpdateConference(ctx, bob, c.Key, domain.ConferenceInput{City: "Paris"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
	t.Run("below taken seats", func(t *testing.T) {
		zero := 0
		_, err := f.conferences.UpdateConference(ctx, alice, c.Key, domain.ConferenceInput{MaxAttendees: &zero})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := f.conferences.UpdateConference(ctx, alice, domain.ConferenceKey(alice.ID, 999), domain.ConferenceInput{City: "Paris"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGetConference(t *testing.T) {
	f := newFixture(t)
	c := f.createConference(t, alice, "GopherCon", 10)

	got, err := f.conferences.GetConference(context.Background(), c.Key)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", got.Conference.Name)
	assert.Equal(t, "Alice", got.OrganizerDisplayName)

	_, err = f.conferences.GetConference(context.Background(), domain.ConferenceKey(alice.ID, 999))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindConference, nf.Kind)
}

func TestListCreated(t *testing.T) {
	f := newFixture(t)
	f.createConference(t, alice, "Zeta", 1)
	f.createConference(t, alice, "Alpha", 1)
	f.createConference(t, bob, "Bobcon", 1)

	got, err := f.conferences.ListCreated(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, conferenceNames(got))

	got, err = f.conferences.ListCreated(context.Background(), domain.AuthUser{ID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQueryConferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, in := range []domain.ConferenceInput{
		{Name: "A", City: "London", Topics: []string{"Medical Innovations"}, StartDate: date("2025-06-01"), MaxAttendees: domain.Ptr(50)},
		{Name: "B", City: "London", Topics: []string{"Medical Innovations", "Go"}, StartDate: date("2025-06-02"), MaxAttendees: domain.Ptr(5)},
		{Name: "C", City: "Paris", Topics: []string{"Medical Innovations"}, StartDate: date("2025-07-01"), MaxAttendees: domain.Ptr(30)},
		{Name: "D", City: "London", Topics: []string{"Go"}, StartDate: date("2025-06-05"), MaxAttendees: domain.Ptr(100)},
	} {
		_, err := f.conferences.CreateConference(ctx, alice, in)
		require.NoError(t, err)
	}

	t.Run("equality plus one inequality field", func(t *testing.T) {
		got, err := f.conferences.QueryConferences(ctx, []domain.RawFilter{
			{Field: "city", Operator: "=", Value: "London"},
			{Field: "topics", Operator: "=", Value: "Medical Innovations"},
			{Field: "month", Operator: "=", Value: "6"},
			{Field: "maxAttendees", Operator: ">", Value: "10"},
		}, domain.PaginationParams{})
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, conferenceNames(got))
		assert.Equal(t, "Alice", got[0].OrganizerDisplayName)
	})

	t.Run("ordered by inequality field then name", func(t *testing.T) {
		got, err := f.conferences.QueryConferences(ctx, []domain.RawFilter{
			{Field: "MAX_ATTENDEES", Operator: "GTEQ", Value: "5"},
			{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
		}, domain.PaginationParams{})
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "A"}, conferenceNames(got))
	})

	t.Run("two inequality fields", func(t *testing.T) {
		_, err := f.conferences.QueryConferences(ctx, []domain.RawFilter{
			{Field: "city", Operator: "!=", Value: "Paris"},
			{Field: "maxAttendees", Operator: ">", Value: "10"},
		}, domain.PaginationParams{})
		assert.ErrorIs(t, err, domain.ErrMultipleInequalityFields)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	})

	t.Run("session field on conferences", func(t *testing.T) {
		_, err := f.conferences.QueryConferences(ctx, []domain.RawFilter{
			{Field: "typeOfSession", Operator: "=", Value: "talk"},
		}, domain.PaginationParams{})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	})

	t.Run("paged", func(t *testing.T) {
		got, err := f.conferences.QueryConferences(ctx, nil, domain.PaginationParams{Page: 2, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"D"}, conferenceNames(got))
	})
}

func TestRegisterAndAttending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.createConference(t, alice, "A", 2)
	b := f.createConference(t, alice, "B", 2)

	got, err := f.conferences.ListAttending(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, k := range []domain.Key{b.Key, a.Key} {
		ok, err := f.conferences.Register(ctx, bob, k)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	_, err = f.conferences.Register(ctx, bob, a.Key)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ReasonAlreadyRegistered, conflict.Reason)

	got, err = f.conferences.ListAttending(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, conferenceNames(got))
	assert.Len(t, f.dispatcher.named(domain.TaskRefreshAnnouncement), 2)

	ok, err := f.conferences.Unregister(ctx, bob, a.Key)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.conferences.Unregister(ctx, bob, a.Key)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = f.conferences.ListAttending(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, conferenceNames(got))
}

func TestRegister_RetriesTransientAborts(t *testing.T) {
	ctx := context.Background()
	gw := &flakyGateway{Gateway: memory.NewGateway()}
	f := newFixtureWith(t, gw)
	c := f.createConference(t, alice, "A", 1)

	gw.mu.Lock()
	gw.calls, gw.failures = 0, 2
	gw.mu.Unlock()
	ok, err := f.conferences.Register(ctx, bob, c.Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, gw.calls)

	gw.mu.Lock()
	gw.calls, gw.failures = 0, 3
	gw.mu.Unlock()
	_, err = f.conferences.Unregister(ctx, bob, c.Key)
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, 3, gw.calls)

	got, err := domain.GetAs[*domain.Conference](ctx, gw, c.Key)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SeatsAvailable)
}

func TestRegister_SemanticErrorsAreNotRetried(t *testing.T) {
	ctx := context.Background()
	gw := &flakyGateway{Gateway: memory.NewGateway()}
	f := newFixtureWith(t, gw)
	c := f.createConference(t, alice, "A", 0)

	gw.mu.Lock()
	gw.calls = 0
	gw.mu.Unlock()
	_, err := f.conferences.Register(ctx, bob, c.Key)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, gw.calls)
}

func TestRegister_ConcurrentSeats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.createConference(t, alice, "A", 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, soldOut := 0, 0
	for i := range 30 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := domain.AuthUser{ID: "user" + string(rune('a'+i))}
			ok, err := f.conferences.Register(ctx, u, c.Key)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && ok:
				wins++
			case errors.Is(err, domain.ErrConflict):
				soldOut++
			default:
				t.Errorf("unexpected result ok=%v err=%v", ok, err)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, wins)
	assert.Equal(t, 25, soldOut)

	got, err := domain.GetAs[*domain.Conference](ctx, f.gateway, c.Key)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SeatsAvailable)
}

func TestAnnouncement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	assert.Equal(t, "", f.conferences.GetAnnouncement(ctx))

	f.createConference(t, alice, "Roomy", 100)
	f.createConference(t, alice, "Full", 0)
	beta := f.createConference(t, alice, "Beta", 5)
	f.createConference(t, alice, "Alpha", 2)
	f.createConference(t, alice, "Aardvark", 5)

	got, err := f.conferences.RefreshAnnouncement(ctx)
	require.NoError(t, err)
	want := AnnouncementPrefix + "Alpha, Aardvark, Beta"
	assert.Equal(t, want, got)
	assert.Equal(t, want, f.conferences.GetAnnouncement(ctx))

	// Selling out Beta removes it from the next announcement.
	for i := range 5 {
		_, err := f.conferences.Register(ctx, domain.AuthUser{ID: "u" + string(rune('0'+i))}, beta.Key)
		require.NoError(t, err)
	}
	got, err = f.conferences.RefreshAnnouncement(ctx)
	require.NoError(t, err)
	assert.Equal(t, AnnouncementPrefix+"Alpha, Aardvark", got)
}

func TestAnnouncement_NoneClearsCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.cache.Set(ctx, domain.CacheKeyAnnouncement, "stale"))
	f.createConference(t, alice, "Roomy", 100)

	got, err := f.conferences.RefreshAnnouncement(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got)
	_, ok, err := f.cache.Get(ctx, domain.CacheKeyAnnouncement)
	require.NoError(t, err)
	assert.False(t, ok)
}
