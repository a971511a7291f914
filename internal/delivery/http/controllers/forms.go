package controllers

import (
	"net/http"
	"strings"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// ConferenceForm is the API representation of a conference.
// swagger:model ConferenceForm
type ConferenceForm struct {
	WebsafeKey           string   `json:"websafeKey"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	OrganizerUserID      string   `json:"organizerUserId"`
	OrganizerDisplayName string   `json:"organizerDisplayName"`
	Topics               []string `json:"topics"`
	City                 string   `json:"city"`
	StartDate            string   `json:"startDate,omitempty"`
	EndDate              string   `json:"endDate,omitempty"`
	Month                int      `json:"month"`
	MaxAttendees         int      `json:"maxAttendees"`
	SeatsAvailable       int      `json:"seatsAvailable"`
}

func toConferenceForm(c *domain.Conference, organizerDisplayName string) ConferenceForm {
	topics := c.Topics
	if topics == nil {
		topics = []string{}
	}
	return ConferenceForm{
		WebsafeKey:           c.Key.Encode(),
		Name:                 c.Name,
		Description:          c.Description,
		OrganizerUserID:      c.OrganizerUserID,
		OrganizerDisplayName: organizerDisplayName,
		Topics:               topics,
		City:                 c.City,
		StartDate:            formatDate(c.StartDate),
		EndDate:              formatDate(c.EndDate),
		Month:                c.Month,
		MaxAttendees:         c.MaxAttendees,
		SeatsAvailable:       c.SeatsAvailable,
	}
}

func toConferenceForms(in []*domain.ConferenceWithOrganizer) []ConferenceForm {
	out := make([]ConferenceForm, len(in))
	for i, c := range in {
		out[i] = toConferenceForm(c.Conference, c.OrganizerDisplayName)
	}
	return out
}

// SessionForm is the API representation of a session.
// swagger:model SessionForm
type SessionForm struct {
	WebsafeKey     string `json:"websafeKey"`
	ConferenceKey  string `json:"conferenceKey"`
	ConferenceName string `json:"conferenceName"`
	Name           string `json:"name"`
	Highlights     string `json:"highlights"`
	Speaker        string `json:"speaker"`
	Duration       string `json:"duration"`
	TypeOfSession  string `json:"typeOfSession"`
	Date           string `json:"date,omitempty"`
	StartTime      string `json:"startTime,omitempty"`
	Location       string `json:"location"`
}

func toSessionForm(s *domain.SessionWithConference) SessionForm {
	f := SessionForm{
		WebsafeKey:     s.Session.Key.Encode(),
		ConferenceKey:  s.Session.ConferenceKey().Encode(),
		ConferenceName: s.ConferenceName,
		Name:           s.Session.Name,
		Highlights:     s.Session.Highlights,
		Speaker:        s.Session.Speaker,
		Duration:       s.Session.Duration,
		TypeOfSession:  s.Session.TypeOfSession,
		Date:           formatDate(s.Session.Date),
		Location:       s.Session.Location,
	}
	if s.Session.StartTime != nil {
		f.StartTime = s.Session.StartTime.String()
	}
	return f
}

func toSessionForms(in []*domain.SessionWithConference) []SessionForm {
	out := make([]SessionForm, len(in))
	for i, s := range in {
		out[i] = toSessionForm(s)
	}
	return out
}

// ProfileForm is the API representation of a profile.
// swagger:model ProfileForm
type ProfileForm struct {
	DisplayName            string   `json:"displayName"`
	MainEmail              string   `json:"mainEmail"`
	TeeShirtSize           string   `json:"teeShirtSize"`
	ConferenceKeysToAttend []string `json:"conferenceKeysToAttend"`
}

func toProfileForm(p *domain.Profile) ProfileForm {
	keys := p.ConferenceKeysToAttend
	if keys == nil {
		keys = []string{}
	}
	return ProfileForm{
		DisplayName:            p.DisplayName,
		MainEmail:              p.MainEmail,
		TeeShirtSize:           string(p.TeeShirtSize),
		ConferenceKeysToAttend: keys,
	}
}

// ConferenceRequest is the request body for creating or updating a conference.
// Dates are YYYY-MM-DD. On update, omitted fields are unchanged.
type ConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	MaxAttendees *int     `json:"maxAttendees"`
}

// Validate implements Validator.
func (c ConferenceRequest) Validate() []string {
	var errs []string
	if c.StartDate != "" {
		if _, err := domain.ParseDate(c.StartDate); err != nil {
			errs = append(errs, "startDate must be YYYY-MM-DD")
		}
	}
	if c.EndDate != "" {
		if _, err := domain.ParseDate(c.EndDate); err != nil {
			errs = append(errs, "endDate must be YYYY-MM-DD")
		}
	}
	if c.MaxAttendees != nil && *c.MaxAttendees < 0 {
		errs = append(errs, "maxAttendees must not be negative")
	}
	return errs
}

func (c ConferenceRequest) toInput() domain.ConferenceInput {
	return domain.ConferenceInput{
		Name:         c.Name,
		Description:  c.Description,
		Topics:       c.Topics,
		City:         strings.TrimSpace(c.City),
		StartDate:    parseOptionalDate(c.StartDate),
		EndDate:      parseOptionalDate(c.EndDate),
		MaxAttendees: c.MaxAttendees,
	}
}

// SessionRequest is the request body for creating a session. Date is
// YYYY-MM-DD and startTime is HH:MM (24h).
type SessionRequest struct {
	Name          string `json:"name"`
	Highlights    string `json:"highlights"`
	Speaker       string `json:"speaker"`
	Duration      string `json:"duration"`
	TypeOfSession string `json:"typeOfSession"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	Location      string `json:"location"`
}

// Validate implements Validator.
func (s SessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if s.Date != "" {
		if _, err := domain.ParseDate(s.Date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if s.StartTime != "" {
		if _, err := domain.ParseTimeOfDay(s.StartTime); err != nil {
			errs = append(errs, "startTime must be HH:MM")
		}
	}
	return errs
}

func (s SessionRequest) toInput() domain.SessionInput {
	in := domain.SessionInput{
		Name:          s.Name,
		Highlights:    s.Highlights,
		Speaker:       s.Speaker,
		Duration:      s.Duration,
		TypeOfSession: s.TypeOfSession,
		Date:          parseOptionalDate(s.Date),
		Location:      s.Location,
	}
	if s.StartTime != "" {
		if t, err := domain.ParseTimeOfDay(s.StartTime); err == nil {
			in.StartTime = &t
		}
	}
	return in
}

// QueryRequest is the request body of the query endpoints.
type QueryRequest struct {
	Filters []domain.RawFilter `json:"filters"`
}

// ProfileRequest is the request body for POST /profile. Empty fields are unchanged.
type ProfileRequest struct {
	DisplayName  string `json:"displayName"`
	TeeShirtSize string `json:"teeShirtSize"`
}

// Validate implements Validator.
func (p ProfileRequest) Validate() []string {
	if p.TeeShirtSize == "" {
		return nil
	}
	if _, ok := domain.ParseTeeShirtSize(p.TeeShirtSize); !ok {
		return []string{"unknown teeShirtSize " + p.TeeShirtSize}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

// parseOptionalDate parses a date already checked by Validate.
func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}

// currentUser returns the authenticated user, writing a 401 when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.AuthUser, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return user, ok
}

// pathKey decodes the websafe key in path segment name, writing a 400 when it is
// malformed or of the wrong kind.
func pathKey(w http.ResponseWriter, r *http.Request, name string, kind domain.Kind) (domain.Key, bool) {
	k, err := domain.DecodeKeyOfKind(r.PathValue(name), kind)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return domain.Key{}, false
	}
	return k, true
}
