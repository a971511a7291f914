package domain

import (
	"context"
	"time"
)

// Defaults applied to conference fields missing on creation.
const (
	DefaultConferenceCity         = "Default City"
	DefaultConferenceMaxAttendees = 0
)

// DefaultConferenceTopics returns a fresh copy of the default topic list.
func DefaultConferenceTopics() []string {
	return []string{"Default", "Topic"}
}

// Conference is owned by the Profile of its organizer (key parent).
// swagger:model Conference
type Conference struct {
	Key             Key        `json:"-"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	OrganizerUserID string     `json:"organizer_user_id"`
	Topics          []string   `json:"topics"`
	City            string     `json:"city"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Month           int        `json:"month"`
	MaxAttendees    int        `json:"max_attendees"`
	SeatsAvailable  int        `json:"seats_available"`
}

func (c *Conference) EntityKey() Key { return c.Key }

func (c *Conference) Values(f Field) []any {
	switch f {
	case FieldName:
		return []any{c.Name}
	case FieldCity:
		return []any{c.City}
	case FieldTopics:
		out := make([]any, len(c.Topics))
		for i, t := range c.Topics {
			out[i] = t
		}
		return out
	case FieldMonth:
		return []any{int64(c.Month)}
	case FieldMaxAttendees:
		return []any{int64(c.MaxAttendees)}
	case FieldSeatsAvailable:
		return []any{int64(c.SeatsAvailable)}
	}
	return nil
}

// ConferenceFields lists the properties a conference query may reference.
var ConferenceFields = map[Field]bool{
	FieldName:           true,
	FieldCity:           true,
	FieldTopics:         true,
	FieldMonth:          true,
	FieldMaxAttendees:   true,
	FieldSeatsAvailable: true,
}

// ConferenceInput carries the organizer-supplied fields for create and update.
// Nil or empty fields are left untouched on update.
type ConferenceInput struct {
	Name         string
	Description  string
	Topics       []string
	City         string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int
}

// ConferenceWithOrganizer pairs a conference with its organizer's display name.
type ConferenceWithOrganizer struct {
	Conference           *Conference
	OrganizerDisplayName string
}

// ConferenceService defines conference use cases.
type ConferenceService interface {
	CreateConference(ctx context.Context, user AuthUser, in ConferenceInput) (*Conference, error)
	UpdateConference(ctx context.Context, user AuthUser, conferenceKey Key, in ConferenceInput) (*ConferenceWithOrganizer, error)
	GetConference(ctx context.Context, conferenceKey Key) (*ConferenceWithOrganizer, error)
	ListCreated(ctx context.Context, user AuthUser) ([]*ConferenceWithOrganizer, error)
	QueryConferences(ctx context.Context, filters []RawFilter, page PaginationParams) ([]*ConferenceWithOrganizer, error)
	ListAttending(ctx context.Context, user AuthUser) ([]*ConferenceWithOrganizer, error)
	Register(ctx context.Context, user AuthUser, conferenceKey Key) (bool, error)
	Unregister(ctx context.Context, user AuthUser, conferenceKey Key) (bool, error)
	GetAnnouncement(ctx context.Context) string
	RefreshAnnouncement(ctx context.Context) (string, error)
}
