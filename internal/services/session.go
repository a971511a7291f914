package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/ledger"
	"conferencecentral/internal/metrics"
	"conferencecentral/internal/query"
	"conferencecentral/internal/tasks"
)

type sessionService struct {
	gateway        domain.EntityGateway
	ledger         *ledger.Manager
	tasks          domain.TaskDispatcher
	cache          domain.Cache
	fetcher        domain.SessionFetcher
	logger         *slog.Logger
	retry          retrier
	contextTimeout time.Duration
}

func NewSessionService(
	gateway domain.EntityGateway,
	ledgerManager *ledger.Manager,
	dispatcher domain.TaskDispatcher,
	cache domain.Cache,
	fetcher domain.SessionFetcher,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		gateway:        gateway,
		ledger:         ledgerManager,
		tasks:          dispatcher,
		cache:          cache,
		fetcher:        fetcher,
		logger:         logger,
		retry:          newRetrier(m),
		contextTimeout: timeout,
	}
}

// ownedConference loads the conference and checks that user organizes it.
func (s *sessionService) ownedConference(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key) (*domain.Conference, error) {
	c, err := domain.MustExist[*domain.Conference](ctx, s.gateway, conferenceKey)
	if err != nil {
		return nil, err
	}
	if c.OrganizerUserID != user.ID {
		return nil, domain.NewForbiddenError("Only the owner can add sessions to the conference.")
	}
	return c, nil
}

func (s *sessionService) CreateSession(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key, in domain.SessionInput) (*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewInvalidInputError("name", "session 'name' field required")
	}
	c, err := s.ownedConference(ctx, user, conferenceKey)
	if err != nil {
		return nil, err
	}
	sess, err := s.createSession(ctx, user, c, in)
	if err != nil {
		return nil, err
	}
	if sess.Speaker != "" {
		s.checkFeaturedSpeaker(ctx, conferenceKey, sess.Speaker)
	}
	return &domain.SessionWithConference{Session: sess, ConferenceName: c.Name}, nil
}

func (s *sessionService) createSession(ctx context.Context, user domain.AuthUser, c *domain.Conference, in domain.SessionInput) (*domain.Session, error) {
	sess := &domain.Session{
		Name:            strings.TrimSpace(in.Name),
		Highlights:      in.Highlights,
		Speaker:         strings.TrimSpace(in.Speaker),
		Duration:        in.Duration,
		TypeOfSession:   in.TypeOfSession,
		Date:            in.Date,
		StartTime:       in.StartTime,
		Location:        in.Location,
		OrganizerUserID: user.ID,
	}
	applySessionDefaults(sess)

	if sess.Speaker != "" {
		if err := s.ensureSpeaker(ctx, sess.Speaker); err != nil {
			return nil, err
		}
	}
	conferenceKey := c.Key
	id, err := s.gateway.AllocateID(ctx, domain.KindSession, &conferenceKey)
	if err != nil {
		return nil, fmt.Errorf("allocate session id: %w", err)
	}
	sess.Key = domain.SessionKey(conferenceKey, id)
	if _, err := s.gateway.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("put session: %w", err)
	}
	return sess, nil
}

func applySessionDefaults(sess *domain.Session) {
	if sess.Location == "" {
		sess.Location = domain.DefaultSessionLocation
	}
	if sess.Highlights == "" {
		sess.Highlights = domain.DefaultSessionHighlights
	}
	if sess.Duration == "" {
		sess.Duration = domain.DefaultSessionDuration
	}
	if sess.TypeOfSession == "" {
		sess.TypeOfSession = domain.DefaultSessionType
	}
}

// ensureSpeaker stores the speaker entity on first reference.
func (s *sessionService) ensureSpeaker(ctx context.Context, name string) error {
	key := domain.SpeakerKey(name)
	_, err := s.gateway.Get(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNoSuchEntity) {
		return fmt.Errorf("get speaker: %w", err)
	}
	if _, err := s.gateway.Put(ctx, &domain.Speaker{Key: key, Name: name}); err != nil {
		return fmt.Errorf("put speaker: %w", err)
	}
	return nil
}

// checkFeaturedSpeaker queues a featured speaker update when speaker has more
// than one session in the conference.
func (s *sessionService) checkFeaturedSpeaker(ctx context.Context, conferenceKey domain.Key, speaker string) {
	sessions, err := s.sessionsOf(ctx, query.SessionsOf(conferenceKey), domain.FieldName,
		domain.Filter{Field: domain.FieldSpeaker, Op: domain.OpEQ, Value: speaker})
	if err != nil {
		s.logger.WarnContext(ctx, "featured speaker lookup", "speaker", speaker, "err", err)
		return
	}
	if len(sessions) < 2 {
		return
	}
	fs := domain.FeaturedSpeaker{Speaker: speaker, SessionNames: make([]string, len(sessions))}
	for i, sess := range sessions {
		fs.SessionNames[i] = sess.Name
	}
	if err := s.tasks.Enqueue(ctx, domain.TaskUpdateFeaturedSpeaker, tasks.FeaturedSpeakerParams(fs)); err != nil {
		s.logger.WarnContext(ctx, "enqueue featured speaker", "speaker", speaker, "err", err)
	}
}

// sessionsOf runs an internal session query ordered by its inequality field (if
// any) and then by defaultOrder.
func (s *sessionService) sessionsOf(ctx context.Context, c query.Collection, defaultOrder domain.Field, filters ...domain.Filter) ([]*domain.Session, error) {
	spec, err := query.Spec(filters...)
	if err != nil {
		return nil, err
	}
	q, err := query.Plan(c, spec, defaultOrder)
	if err != nil {
		return nil, err
	}
	out, err := query.Collect(query.Execute[*domain.Session](ctx, s.gateway, q), domain.PaginationParams{})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

// withConferences attaches each session's conference name.
func (s *sessionService) withConferences(ctx context.Context, sessions []*domain.Session) ([]*domain.SessionWithConference, error) {
	seen := map[string]bool{}
	var keys []domain.Key
	for _, sess := range sessions {
		k := sess.ConferenceKey()
		if !seen[k.String()] {
			seen[k.String()] = true
			keys = append(keys, k)
		}
	}
	names := map[string]string{}
	if len(keys) > 0 {
		entities, err := s.gateway.GetMulti(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("get conferences: %w", err)
		}
		for _, e := range entities {
			if c, ok := e.(*domain.Conference); ok {
				names[c.Key.String()] = c.Name
			}
		}
	}
	out := make([]*domain.SessionWithConference, len(sessions))
	for i, sess := range sessions {
		out[i] = &domain.SessionWithConference{Session: sess, ConferenceName: names[sess.ConferenceKey().String()]}
	}
	return out, nil
}

func withConferenceName(sessions []*domain.Session, name string) []*domain.SessionWithConference {
	out := make([]*domain.SessionWithConference, len(sessions))
	for i, sess := range sessions {
		out[i] = &domain.SessionWithConference{Session: sess, ConferenceName: name}
	}
	return out
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceKey domain.Key, typeOfSession string) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := domain.MustExist[*domain.Conference](ctx, s.gateway, conferenceKey)
	if err != nil {
		return nil, err
	}
	var filters []domain.Filter
	if t := strings.TrimSpace(typeOfSession); t != "" {
		filters = append(filters, domain.Filter{Field: domain.FieldTypeOfSession, Op: domain.OpEQ, Value: t})
	}
	sessions, err := s.sessionsOf(ctx, query.SessionsOf(conferenceKey), domain.FieldName, filters...)
	if err != nil {
		return nil, err
	}
	return withConferenceName(sessions, c.Name), nil
}

func (s *sessionService) QuerySessions(ctx context.Context, conferenceKey domain.Key, filters []domain.RawFilter, page domain.PaginationParams) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	seq, err := query.Find[*domain.Session](ctx, s.gateway, query.SessionsOf(conferenceKey), filters, domain.FieldName)
	if err != nil {
		return nil, err
	}
	c, err := domain.MustExist[*domain.Conference](ctx, s.gateway, conferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := query.Collect(seq, page)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return withConferenceName(sessions, c.Name), nil
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker = strings.TrimSpace(speaker)
	if speaker == "" {
		return nil, domain.NewInvalidInputError("speaker", "is required")
	}
	sessions, err := s.sessionsOf(ctx, query.Sessions(), domain.FieldName,
		domain.Filter{Field: domain.FieldSpeaker, Op: domain.OpEQ, Value: speaker})
	if err != nil {
		return nil, err
	}
	return s.withConferences(ctx, sessions)
}

// ListByTime returns the conference's sessions on date that start within
// [start, end], earliest first.
func (s *sessionService) ListByTime(ctx context.Context, conferenceKey domain.Key, date time.Time, start, end domain.TimeOfDay) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if end < start {
		return nil, domain.NewInvalidInputError("end_time", "must not be before start_time")
	}
	c, err := domain.MustExist[*domain.Conference](ctx, s.gateway, conferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionsOf(ctx, query.SessionsOf(conferenceKey), domain.FieldName,
		domain.Filter{Field: domain.FieldDate, Op: domain.OpEQ, Value: date},
		domain.Filter{Field: domain.FieldStartTime, Op: domain.OpGTEQ, Value: start},
		domain.Filter{Field: domain.FieldStartTime, Op: domain.OpLTEQ, Value: end},
	)
	if err != nil {
		return nil, err
	}
	return withConferenceName(sessions, c.Name), nil
}

// ListByCityAndDate returns the sessions dated within [start, end] of every
// conference held in city. Results are grouped by conference name and ordered
// by date inside each conference.
func (s *sessionService) ListByCityAndDate(ctx context.Context, city string, start, end time.Time) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, domain.NewInvalidInputError("city", "is required")
	}
	if end.Before(start) {
		return nil, domain.NewInvalidInputError("end_date", "must not be before start_date")
	}
	spec, err := query.Spec(domain.Filter{Field: domain.FieldCity, Op: domain.OpEQ, Value: city})
	if err != nil {
		return nil, err
	}
	q, err := query.Plan(query.Conferences(), spec, domain.FieldName)
	if err != nil {
		return nil, err
	}

	confs, err := query.Collect(query.Execute[*domain.Conference](ctx, s.gateway, q), domain.PaginationParams{})
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	out := []*domain.SessionWithConference{}
	for _, c := range confs {
		sessions, err := s.sessionsOf(ctx, query.SessionsOf(c.Key), domain.FieldName,
			domain.Filter{Field: domain.FieldDate, Op: domain.OpGTEQ, Value: start},
			domain.Filter{Field: domain.FieldDate, Op: domain.OpLTEQ, Value: end},
		)
		if err != nil {
			return nil, err
		}
		out = append(out, withConferenceName(sessions, c.Name)...)
	}
	return out, nil
}

// ListNonWorkshopBefore returns sessions that are not workshops and start no
// later than latest. The store accepts only one inequality field, so the type
// exclusion is applied after the startTime range read.
func (s *sessionService) ListNonWorkshopBefore(ctx context.Context, latest domain.TimeOfDay) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionsOf(ctx, query.Sessions(), domain.FieldName,
		domain.Filter{Field: domain.FieldStartTime, Op: domain.OpLTEQ, Value: latest})
	if err != nil {
		return nil, err
	}
	kept := sessions[:0]
	for _, sess := range sessions {
		if !strings.EqualFold(sess.TypeOfSession, domain.WorkshopSessionType) {
			kept = append(kept, sess)
		}
	}
	return s.withConferences(ctx, kept)
}

func (s *sessionService) AddToWishlist(ctx context.Context, user domain.AuthUser, sessionKey domain.Key) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.retry.do(ctx, "wishlist_add", func(ctx context.Context) (bool, error) {
		return s.ledger.AddSessionToWishlist(ctx, user, sessionKey)
	})
}

func (s *sessionService) RemoveFromWishlist(ctx context.Context, user domain.AuthUser, sessionKey domain.Key) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.retry.do(ctx, "wishlist_remove", func(ctx context.Context) (bool, error) {
		return s.ledger.RemoveSessionFromWishlist(ctx, user, sessionKey)
	})
}

// ListWishlist returns the user's wishlisted sessions of one conference.
func (s *sessionService) ListWishlist(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key) ([]*domain.SessionWithConference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := domain.MustExist[*domain.Conference](ctx, s.gateway, conferenceKey)
	if err != nil {
		return nil, err
	}
	prof, err := findProfile(ctx, s.gateway, user.ID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return []*domain.SessionWithConference{}, nil
	}
	var keys []domain.Key
	for _, ws := range prof.SessionWishlist {
		k, err := domain.DecodeKeyOfKind(ws, domain.KindSession)
		if err != nil {
			return nil, fmt.Errorf("profile %s holds bad session key %q: %w", user.ID, ws, err)
		}
		if k.Parent.Equal(conferenceKey) {
			keys = append(keys, k)
		}
	}
	sessions := make([]*domain.Session, 0, len(keys))
	if len(keys) > 0 {
		entities, err := s.gateway.GetMulti(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("get wishlist sessions: %w", err)
		}
		for _, e := range entities {
			if sess, ok := e.(*domain.Session); ok {
				sessions = append(sessions, sess)
			}
		}
	}
	return withConferenceName(sessions, c.Name), nil
}

// GetFeaturedSpeaker returns the cached featured speaker, or nil when none is
// cached.
func (s *sessionService) GetFeaturedSpeaker(ctx context.Context) *domain.FeaturedSpeaker {
	v, ok, err := s.cache.Get(ctx, domain.CacheKeyFeaturedSpeaker)
	if err != nil || !ok {
		return nil
	}
	var fs domain.FeaturedSpeaker
	if err := json.Unmarshal([]byte(v), &fs); err != nil {
		s.logger.WarnContext(ctx, "decode featured speaker", "err", err)
		return nil
	}
	return &fs
}

func (s *sessionService) CacheFeaturedSpeaker(ctx context.Context, fs domain.FeaturedSpeaker) error {
	b, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("encode featured speaker: %w", err)
	}
	if err := s.cache.Set(ctx, domain.CacheKeyFeaturedSpeaker, string(b)); err != nil {
		return fmt.Errorf("cache featured speaker: %w", err)
	}
	return nil
}

// ImportSessionize creates a session for every regular session of a published
// Sessionize schedule and returns how many were created. Import stops at the
// first failing session; sessions created before it are kept and counted in the
// returned total.
func (s *sessionService) ImportSessionize(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key, sessionizeID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.ownedConference(ctx, user, conferenceKey)
	if err != nil {
		return 0, err
	}
	data, err := s.fetcher.Fetch(ctx, sessionizeID)
	if err != nil {
		return 0, fmt.Errorf("fetch sessionize %s: %w", sessionizeID, err)
	}

	inputs := sessionizeInputs(data)
	perSpeaker := map[string]int{}
	for i, in := range inputs {
		if _, err := s.createSession(ctx, user, c, in); err != nil {
			s.logger.WarnContext(ctx, "sessionize import stopped", "conference", conferenceKey.Encode(), "imported", i, "err", err)
			return i, fmt.Errorf("import session %q: %w", in.Name, err)
		}
		if in.Speaker != "" {
			perSpeaker[in.Speaker]++
		}
	}

	// Feature the speaker with the most imported sessions.
	var top string
	for _, in := range inputs {
		if in.Speaker != "" && perSpeaker[in.Speaker] > perSpeaker[top] {
			top = in.Speaker
		}
	}
	if top != "" && perSpeaker[top] > 1 {
		s.checkFeaturedSpeaker(ctx, conferenceKey, top)
	}
	s.logger.InfoContext(ctx, "sessionize import finished", "conference", conferenceKey.Encode(), "sessions", len(inputs))
	return len(inputs), nil
}

// sessionizeInputs maps the regular sessions of a Sessionize schedule to
// session inputs. Service sessions (breaks, registration) are skipped.
func sessionizeInputs(data domain.SessionFetcherResponse) []domain.SessionInput {
	rooms := make(map[int]string, len(data.Rooms))
	for _, r := range data.Rooms {
		rooms[r.ID] = r.Name
	}
	speakers := make(map[string]string, len(data.Speakers))
	for _, sp := range data.Speakers {
		name := strings.TrimSpace(sp.FullName)
		if name == "" {
			name = strings.TrimSpace(sp.FirstName + " " + sp.LastName)
		}
		speakers[sp.ID] = name
	}
	categoryItems := map[int]string{}
	for _, cat := range data.Categories {
		for _, item := range cat.Items {
			categoryItems[item.ID] = item.Name
		}
	}

	var out []domain.SessionInput
	for _, ss := range data.Sessions {
		if ss.IsServiceSession || strings.TrimSpace(ss.Title) == "" {
			continue
		}
		in := domain.SessionInput{
			Name:       ss.Title,
			Highlights: ss.Description,
			Location:   rooms[ss.RoomID],
		}
		if len(ss.Speakers) > 0 {
			in.Speaker = speakers[ss.Speakers[0]]
		}
		for _, id := range ss.CategoryItems {
			if name, ok := categoryItems[id]; ok {
				in.TypeOfSession = name
				break
			}
		}
		if !ss.StartsAt.IsZero() {
			st := ss.StartsAt.Time
			day := time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, time.UTC)
			in.Date = &day
			in.StartTime = domain.Ptr(domain.TimeOfDay(st.Hour()*60 + st.Minute()))
			if !ss.EndsAt.IsZero() {
				in.Duration = fmt.Sprintf("%d minutes", ss.Minutes())
			}
		}
		out = append(out, in)
	}
	return out
}
