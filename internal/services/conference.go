package services

import (
	"context"
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

// AnnouncementPrefix starts the nearly-sold-out announcement.
const AnnouncementPrefix = "Last chance to attend! The following conferences are nearly sold out: "

// announcementSeatThreshold is the largest seat count that still counts as
// nearly sold out.
const announcementSeatThreshold = 5

type conferenceService struct {
	gateway        domain.EntityGateway
	ledger         *ledger.Manager
	tasks          domain.TaskDispatcher
	cache          domain.Cache
	logger         *slog.Logger
	retry          retrier
	contextTimeout time.Duration
}

func NewConferenceService(
	gateway domain.EntityGateway,
	ledgerManager *ledger.Manager,
	dispatcher domain.TaskDispatcher,
	cache domain.Cache,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		gateway:        gateway,
		ledger:         ledgerManager,
		tasks:          dispatcher,
		cache:          cache,
		logger:         logger,
		retry:          newRetrier(m),
		contextTimeout: timeout,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, user domain.AuthUser, in domain.ConferenceInput) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewInvalidInputError("name", "conference 'name' field required")
	}
	if err := validateConferenceDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	prof, err := ensureProfile(ctx, s.gateway, user)
	if err != nil {
		return nil, err
	}

	c := &domain.Conference{
		Name:            name,
		Description:     in.Description,
		OrganizerUserID: user.ID,
		Topics:          in.Topics,
		City:            in.City,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		MaxAttendees:    domain.DefaultConferenceMaxAttendees,
	}
	if c.City == "" {
		c.City = domain.DefaultConferenceCity
	}
	if len(c.Topics) == 0 {
		c.Topics = domain.DefaultConferenceTopics()
	}
	if in.MaxAttendees != nil {
		if *in.MaxAttendees < 0 {
			return nil, domain.NewInvalidInputError("maxAttendees", "must not be negative")
		}
		c.MaxAttendees = *in.MaxAttendees
	}
	if c.StartDate != nil {
		c.Month = int(c.StartDate.Month())
	}
	c.SeatsAvailable = c.MaxAttendees

	profileKey := prof.Key
	id, err := s.gateway.AllocateID(ctx, domain.KindConference, &profileKey)
	if err != nil {
		return nil, fmt.Errorf("allocate conference id: %w", err)
	}
	c.Key = domain.ConferenceKey(user.ID, id)
	if _, err := s.gateway.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("put conference: %w", err)
	}

	params := tasks.ConfirmationEmailParams(confirmationEmailData(prof, c))
	if err := s.tasks.Enqueue(ctx, domain.TaskSendConfirmationEmail, params); err != nil {
		s.logger.WarnContext(ctx, "enqueue confirmation email", "conference", c.Key.Encode(), "err", err)
	}
	return c, nil
}

func confirmationEmailData(organizer *domain.Profile, c *domain.Conference) *domain.ConferenceCreatedEmailData {
	return &domain.ConferenceCreatedEmailData{
		Email:          organizer.MainEmail,
		OrganizerName:  organizer.DisplayName,
		ConferenceName: c.Name,
		City:           c.City,
		StartDate:      formatDate(c.StartDate),
		EndDate:        formatDate(c.EndDate),
		Topics:         c.Topics,
		MaxAttendees:   c.MaxAttendees,
		ConferenceKey:  c.Key.Encode(),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func validateConferenceDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return domain.NewInvalidInputError("endDate", "must not be before startDate")
	}
	return nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key, in domain.ConferenceInput) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.MaxAttendees != nil && *in.MaxAttendees < 0 {
		return nil, domain.NewInvalidInputError("maxAttendees", "must not be negative")
	}

	var updated *domain.Conference
	_, err := s.retry.do(ctx, "update_conference", func(ctx context.Context) (bool, error) {
		return true, s.gateway.RunInTransaction(ctx, []domain.Key{conferenceKey}, func(ctx context.Context, tx domain.Tx) error {
			c, err := domain.MustExist[*domain.Conference](ctx, tx, conferenceKey)
			if err != nil {
				return err
			}
			if c.OrganizerUserID != user.ID {
				return domain.NewForbiddenError("Only the owner can update the conference.")
			}
			if err := applyConferenceUpdate(c, in); err != nil {
				return err
			}
			updated = c
			return tx.Put(ctx, c)
		})
	})
	if err != nil {
		return nil, err
	}
	return s.withOrganizer(ctx, updated)
}

// applyConferenceUpdate copies the set fields of in onto c. A capacity change
// moves seatsAvailable by the same amount and fails when it would drop below
// the seats already taken.
func applyConferenceUpdate(c *domain.Conference, in domain.ConferenceInput) error {
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if len(in.Topics) > 0 {
		c.Topics = in.Topics
	}
	if in.City != "" {
		c.City = in.City
	}
	if in.StartDate != nil {
		c.StartDate = in.StartDate
		c.Month = int(in.StartDate.Month())
	}
	if in.EndDate != nil {
		c.EndDate = in.EndDate
	}
	if err := validateConferenceDates(c.StartDate, c.EndDate); err != nil {
		return err
	}
	if in.MaxAttendees != nil {
		taken := c.MaxAttendees - c.SeatsAvailable
		if *in.MaxAttendees < taken {
			return domain.NewConflictError(fmt.Sprintf("maxAttendees cannot be lower than the %d seats already taken", taken))
		}
		c.MaxAttendees = *in.MaxAttendees
		c.SeatsAvailable = c.MaxAttendees - taken
	}
	return nil
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceKey domain.Key) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := domain.MustExist[*domain.Conference](ctx, s.gateway, conferenceKey)
	if err != nil {
		return nil, err
	}
	return s.withOrganizer(ctx, c)
}

func (s *conferenceService) withOrganizer(ctx context.Context, c *domain.Conference) (*domain.ConferenceWithOrganizer, error) {
	out, err := s.withOrganizers(ctx, []*domain.Conference{c})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *conferenceService) withOrganizers(ctx context.Context, confs []*domain.Conference) ([]*domain.ConferenceWithOrganizer, error) {
	keys := make([]domain.Key, 0, len(confs))
	for _, c := range confs {
		if c.Key.Parent != nil {
			keys = append(keys, *c.Key.Parent)
		}
	}
	names, err := displayNames(ctx, s.gateway, keys)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ConferenceWithOrganizer, len(confs))
	for i, c := range confs {
		out[i] = &domain.ConferenceWithOrganizer{Conference: c}
		if c.Key.Parent != nil {
			out[i].OrganizerDisplayName = names[c.Key.Parent.String()]
		}
	}
	return out, nil
}

func (s *conferenceService) ListCreated(ctx context.Context, user domain.AuthUser) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q, err := query.Plan(query.ConferencesOf(domain.ProfileKey(user.ID)), domain.FilterSpec{}, domain.FieldName)
	if err != nil {
		return nil, err
	}
	confs, err := query.Collect(query.Execute[*domain.Conference](ctx, s.gateway, q), domain.PaginationParams{})
	if err != nil {
		return nil, fmt.Errorf("list created conferences: %w", err)
	}
	return s.withOrganizers(ctx, confs)
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []domain.RawFilter, page domain.PaginationParams) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	seq, err := query.Find[*domain.Conference](ctx, s.gateway, query.Conferences(), filters, domain.FieldName)
	if err != nil {
		return nil, err
	}
	confs, err := query.Collect(seq, page)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return s.withOrganizers(ctx, confs)
}

func (s *conferenceService) ListAttending(ctx context.Context, user domain.AuthUser) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prof, err := findProfile(ctx, s.gateway, user.ID)
	if err != nil {
		return nil, err
	}
	if prof == nil || len(prof.ConferenceKeysToAttend) == 0 {
		return []*domain.ConferenceWithOrganizer{}, nil
	}
	keys := make([]domain.Key, 0, len(prof.ConferenceKeysToAttend))
	for _, ws := range prof.ConferenceKeysToAttend {
		k, err := domain.DecodeKeyOfKind(ws, domain.KindConference)
		if err != nil {
			return nil, fmt.Errorf("profile %s holds bad conference key %q: %w", user.ID, ws, err)
		}
		keys = append(keys, k)
	}
	entities, err := s.gateway.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get attended conferences: %w", err)
	}
	confs := make([]*domain.Conference, 0, len(entities))
	for _, e := range entities {
		if c, ok := e.(*domain.Conference); ok {
			confs = append(confs, c)
		}
	}
	return s.withOrganizers(ctx, confs)
}

func (s *conferenceService) Register(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.retry.do(ctx, "register", func(ctx context.Context) (bool, error) {
		return s.ledger.RegisterForConference(ctx, user, conferenceKey)
	})
	if err != nil {
		return false, err
	}
	s.seatsChanged(ctx)
	return ok, nil
}

func (s *conferenceService) Unregister(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.retry.do(ctx, "unregister", func(ctx context.Context) (bool, error) {
		return s.ledger.UnregisterFromConference(ctx, user, conferenceKey)
	})
	if err != nil {
		return false, err
	}
	if ok {
		s.seatsChanged(ctx)
	}
	return ok, nil
}

func (s *conferenceService) seatsChanged(ctx context.Context) {
	if err := s.tasks.Enqueue(ctx, domain.TaskRefreshAnnouncement, nil); err != nil {
		s.logger.WarnContext(ctx, "enqueue announcement refresh", "err", err)
	}
}

func (s *conferenceService) GetAnnouncement(ctx context.Context) string {
	v, ok, err := s.cache.Get(ctx, domain.CacheKeyAnnouncement)
	if err != nil || !ok {
		return ""
	}
	return v
}

// RefreshAnnouncement lists the conferences with a handful of seats left and
// caches the announcement text. With none, the cached announcement is removed.
func (s *conferenceService) RefreshAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	spec, err := query.Spec(
		domain.Filter{Field: domain.FieldSeatsAvailable, Op: domain.OpLTEQ, Value: int64(announcementSeatThreshold)},
		domain.Filter{Field: domain.FieldSeatsAvailable, Op: domain.OpGT, Value: int64(0)},
	)
	if err != nil {
		return "", err
	}
	q, err := query.Plan(query.Conferences(), spec, domain.FieldName)
	if err != nil {
		return "", err
	}
	confs, err := query.Collect(query.Execute[*domain.Conference](ctx, s.gateway, q), domain.PaginationParams{})
	if err != nil {
		return "", fmt.Errorf("query nearly sold out conferences: %w", err)
	}

	if len(confs) == 0 {
		if err := s.cache.Delete(ctx, domain.CacheKeyAnnouncement); err != nil {
			s.logger.WarnContext(ctx, "clear announcement", "err", err)
		}
		return "", nil
	}
	names := make([]string, len(confs))
	for i, c := range confs {
		names[i] = c.Name
	}
	announcement := AnnouncementPrefix + strings.Join(names, ", ")
	if err := s.cache.Set(ctx, domain.CacheKeyAnnouncement, announcement); err != nil {
		s.logger.WarnContext(ctx, "cache announcement", "err", err)
	}
	return announcement, nil
}
