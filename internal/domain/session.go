package domain

import (
	"context"
	"time"
)

// Defaults applied to session fields missing on creation.
const (
	DefaultSessionLocation   = "Default Location"
	DefaultSessionHighlights = "Default topic"
	DefaultSessionDuration   = "Default duration"
	DefaultSessionType       = "Default type"
)

// WorkshopSessionType is the typeOfSession excluded by the non-workshop listing.
const WorkshopSessionType = "workshop"

// Session belongs to a Conference (key parent) and references a Speaker by name.
// swagger:model Session
type Session struct {
	Key             Key        `json:"-"`
	Name            string     `json:"name"`
	Highlights      string     `json:"highlights"`
	Speaker         string     `json:"speaker"`
	Duration        string     `json:"duration"`
	TypeOfSession   string     `json:"type_of_session"`
	Date            *time.Time `json:"date"`
	StartTime       *TimeOfDay `json:"start_time"`
	Location        string     `json:"location"`
	OrganizerUserID string     `json:"organizer_user_id"`
}

func (s *Session) EntityKey() Key { return s.Key }

// ConferenceKey returns the key of the conference the session belongs to.
func (s *Session) ConferenceKey() Key {
	if s.Key.Parent == nil {
		return Key{}
	}
	return *s.Key.Parent
}

func (s *Session) Values(f Field) []any {
	switch f {
	case FieldName:
		return []any{s.Name}
	case FieldTypeOfSession:
		return []any{s.TypeOfSession}
	case FieldLocation:
		return []any{s.Location}
	case FieldSpeaker:
		return []any{s.Speaker}
	case FieldDate:
		if s.Date == nil {
			return nil
		}
		return []any{*s.Date}
	case FieldStartTime:
		if s.StartTime == nil {
			return nil
		}
		return []any{*s.StartTime}
	}
	return nil
}

// SessionFields lists the properties a session query may reference.
var SessionFields = map[Field]bool{
	FieldName:          true,
	FieldTypeOfSession: true,
	FieldLocation:      true,
	FieldDate:          true,
	FieldStartTime:     true,
	FieldSpeaker:       true,
}

// Speaker is keyed by name and created on first reference.
// swagger:model Speaker
type Speaker struct {
	Key  Key    `json:"-"`
	Name string `json:"name"`
}

func (s *Speaker) EntityKey() Key { return s.Key }

// FeaturedSpeaker is the cached featured-speaker record.
// swagger:model FeaturedSpeaker
type FeaturedSpeaker struct {
	Speaker      string   `json:"speaker"`
	SessionNames []string `json:"session_names"`
}

// SessionInput carries the organizer-supplied fields of a new session.
type SessionInput struct {
	Name          string
	Highlights    string
	Speaker       string
	Duration      string
	TypeOfSession string
	Date          *time.Time
	StartTime     *TimeOfDay
	Location      string
}

// SessionWithConference pairs a session with its conference's name.
type SessionWithConference struct {
	Session        *Session
	ConferenceName string
}

// SessionService defines session, wishlist and featured-speaker use cases.
type SessionService interface {
	CreateSession(ctx context.Context, user AuthUser, conferenceKey Key, in SessionInput) (*SessionWithConference, error)
	ListByConference(ctx context.Context, conferenceKey Key, typeOfSession string) ([]*SessionWithConference, error)
	QuerySessions(ctx context.Context, conferenceKey Key, filters []RawFilter, page PaginationParams) ([]*SessionWithConference, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*SessionWithConference, error)
	ListByTime(ctx context.Context, conferenceKey Key, date time.Time, start, end TimeOfDay) ([]*SessionWithConference, error)
	ListByCityAndDate(ctx context.Context, city string, start, end time.Time) ([]*SessionWithConference, error)
	ListNonWorkshopBefore(ctx context.Context, latest TimeOfDay) ([]*SessionWithConference, error)
	AddToWishlist(ctx context.Context, user AuthUser, sessionKey Key) (bool, error)
	RemoveFromWishlist(ctx context.Context, user AuthUser, sessionKey Key) (bool, error)
	ListWishlist(ctx context.Context, user AuthUser, conferenceKey Key) ([]*SessionWithConference, error)
	GetFeaturedSpeaker(ctx context.Context) *FeaturedSpeaker
	CacheFeaturedSpeaker(ctx context.Context, fs FeaturedSpeaker) error
	ImportSessionize(ctx context.Context, user AuthUser, conferenceKey Key, sessionizeID string) (int, error)
}
