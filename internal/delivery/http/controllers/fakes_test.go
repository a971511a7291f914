package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testUser = domain.AuthUser{ID: "user-123", Email: "alice@example.com", Name: "Alice"}

var (
	testConferenceKey = domain.ConferenceKey("user-123", 7)
	testSessionKey    = domain.SessionKey(testConferenceKey, 3)
)

func testConference() *domain.Conference {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	return &domain.Conference{
		Key:             testConferenceKey,
		Name:            "GopherCon",
		OrganizerUserID: "user-123",
		Topics:          []string{"Go"},
		City:            "London",
		StartDate:       &start,
		Month:           5,
		MaxAttendees:    100,
		SeatsAvailable:  99,
	}
}

func testSession() *domain.SessionWithConference {
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	start := domain.TimeOfDay(9*60 + 30)
	return &domain.SessionWithConference{
		Session: &domain.Session{
			Key:           testSessionKey,
			Name:          "Generics in practice",
			Speaker:       "Rob",
			TypeOfSession: "talk",
			Date:          &date,
			StartTime:     &start,
		},
		ConferenceName: "GopherCon",
	}
}

// decodeEnvelope decodes the response envelope, re-decoding data into dataOut when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dataOut any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dataOut != nil && envelope.Error == nil {
		b, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, dataOut))
	}
	return envelope
}

func authed(ctx context.Context) context.Context {
	return middleware.SetUser(ctx, testUser)
}

// fakeConferenceService implements domain.ConferenceService for handler tests.
type fakeConferenceService struct {
	err          error
	conference   *domain.Conference
	organizer    string
	list         []*domain.ConferenceWithOrganizer
	result       bool
	announcement string

	lastUser    domain.AuthUser
	lastKey     domain.Key
	lastInput   domain.ConferenceInput
	lastFilters []domain.RawFilter
	lastPage    domain.PaginationParams
}

func (f *fakeConferenceService) withOrganizer() *domain.ConferenceWithOrganizer {
	return &domain.ConferenceWithOrganizer{Conference: f.conference, OrganizerDisplayName: f.organizer}
}

func (f *fakeConferenceService) CreateConference(_ context.Context, user domain.AuthUser, in domain.ConferenceInput) (*domain.Conference, error) {
	f.lastUser, f.lastInput = user, in
	if f.err != nil {
		return nil, f.err
	}
	return f.conference, nil
}

func (f *fakeConferenceService) UpdateConference(_ context.Context, user domain.AuthUser, key domain.Key, in domain.ConferenceInput) (*domain.ConferenceWithOrganizer, error) {
	f.lastUser, f.lastKey, f.lastInput = user, key, in
	if f.err != nil {
		return nil, f.err
	}
	return f.withOrganizer(), nil
}

func (f *fakeConferenceService) GetConference(_ context.Context, key domain.Key) (*domain.ConferenceWithOrganizer, error) {
	f.lastKey = key
	if f.err != nil {
		return nil, f.err
	}
	return f.withOrganizer(), nil
}

func (f *fakeConferenceService) ListCreated(_ context.Context, user domain.AuthUser) ([]*domain.ConferenceWithOrganizer, error) {
	f.lastUser = user
	return f.list, f.err
}

func (f *fakeConferenceService) QueryConferences(_ context.Context, filters []domain.RawFilter, page domain.PaginationParams) ([]*domain.ConferenceWithOrganizer, error) {
	f.lastFilters, f.lastPage = filters, page
	return f.list, f.err
}

func (f *fakeConferenceService) ListAttending(_ context.Context, user domain.AuthUser) ([]*domain.ConferenceWithOrganizer, error) {
	f.lastUser = user
	return f.list, f.err
}

func (f *fakeConferenceService) Register(_ context.Context, user domain.AuthUser, key domain.Key) (bool, error) {
	f.lastUser, f.lastKey = user, key
	return f.result, f.err
}

func (f *fakeConferenceService) Unregister(_ context.Context, user domain.AuthUser, key domain.Key) (bool, error) {
	f.lastUser, f.lastKey = user, key
	return f.result, f.err
}

func (f *fakeConferenceService) GetAnnouncement(context.Context) string {
	return f.announcement
}

func (f *fakeConferenceService) RefreshAnnouncement(context.Context) (string, error) {
	return f.announcement, f.err
}

// fakeSessionService implements domain.SessionService for handler tests.
type fakeSessionService struct {
	err      error
	session  *domain.SessionWithConference
	list     []*domain.SessionWithConference
	result   bool
	imported int
	featured *domain.FeaturedSpeaker

	lastUser         domain.AuthUser
	lastKey          domain.Key
	lastInput        domain.SessionInput
	lastType         string
	lastFilters      []domain.RawFilter
	lastPage         domain.PaginationParams
	lastSpeaker      string
	lastDate         time.Time
	lastStart        domain.TimeOfDay
	lastEnd          domain.TimeOfDay
	lastCity         string
	lastStartDate    time.Time
	lastEndDate      time.Time
	lastLatest       domain.TimeOfDay
	lastSessionizeID string
}

func (f *fakeSessionService) CreateSession(_ context.Context, user domain.AuthUser, key domain.Key, in domain.SessionInput) (*domain.SessionWithConference, error) {
	f.lastUser, f.lastKey, f.lastInput = user, key, in
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeSessionService) ListByConference(_ context.Context, key domain.Key, typeOfSession string) ([]*domain.SessionWithConference, error) {
	f.lastKey, f.lastType = key, typeOfSession
	return f.list, f.err
}

func (f *fakeSessionService) QuerySessions(_ context.Context, key domain.Key, filters []domain.RawFilter, page domain.PaginationParams) ([]*domain.SessionWithConference, error) {
	f.lastKey, f.lastFilters, f.lastPage = key, filters, page
	return f.list, f.err
}

func (f *fakeSessionService) ListBySpeaker(_ context.Context, speaker string) ([]*domain.SessionWithConference, error) {
	f.lastSpeaker = speaker
	return f.list, f.err
}

func (f *fakeSessionService) ListByTime(_ context.Context, key domain.Key, date time.Time, start, end domain.TimeOfDay) ([]*domain.SessionWithConference, error) {
	f.lastKey, f.lastDate, f.lastStart, f.lastEnd = key, date, start, end
	return f.list, f.err
}

func (f *fakeSessionService) ListByCityAndDate(_ context.Context, city string, start, end time.Time) ([]*domain.SessionWithConference, error) {
	f.lastCity, f.lastStartDate, f.lastEndDate = city, start, end
	return f.list, f.err
}

func (f *fakeSessionService) ListNonWorkshopBefore(_ context.Context, latest domain.TimeOfDay) ([]*domain.SessionWithConference, error) {
	f.lastLatest = latest
	return f.list, f.err
}

func (f *fakeSessionService) AddToWishlist(_ context.Context, user domain.AuthUser, key domain.Key) (bool, error) {
	f.lastUser, f.lastKey = user, key
	return f.result, f.err
}

func (f *fakeSessionService) RemoveFromWishlist(_ context.Context, user domain.AuthUser, key domain.Key) (bool, error) {
	f.lastUser, f.lastKey = user, key
	return f.result, f.err
}

func (f *fakeSessionService) ListWishlist(_ context.Context, user domain.AuthUser, key domain.Key) ([]*domain.SessionWithConference, error) {
	f.lastUser, f.lastKey = user, key
	return f.list, f.err
}

func (f *fakeSessionService) GetFeaturedSpeaker(context.Context) *domain.FeaturedSpeaker {
	return f.featured
}

func (f *fakeSessionService) CacheFeaturedSpeaker(_ context.Context, fs domain.FeaturedSpeaker) error {
	f.featured = &fs
	return f.err
}

func (f *fakeSessionService) ImportSessionize(_ context.Context, user domain.AuthUser, key domain.Key, sessionizeID string) (int, error) {
	f.lastUser, f.lastKey, f.lastSessionizeID = user, key, sessionizeID
	return f.imported, f.err
}

// fakeProfileService implements domain.ProfileService for handler tests.
type fakeProfileService struct {
	err        error
	profile    *domain.Profile
	lastUser   domain.AuthUser
	lastUpdate domain.ProfileUpdate
}

func (f *fakeProfileService) GetProfile(_ context.Context, user domain.AuthUser) (*domain.Profile, error) {
	f.lastUser = user
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfileService) SaveProfile(_ context.Context, user domain.AuthUser, upd domain.ProfileUpdate) (*domain.Profile, error) {
	f.lastUser, f.lastUpdate = user, upd
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}
