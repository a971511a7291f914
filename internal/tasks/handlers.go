package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"conferencecentral/internal/domain"
)

// Parameter names of the built-in tasks.
const (
	ParamEmail          = "email"
	ParamOrganizerName  = "organizerName"
	ParamConferenceName = "conferenceName"
	ParamCity           = "city"
	ParamStartDate      = "startDate"
	ParamEndDate        = "endDate"
	ParamTopics         = "topics"
	ParamMaxAttendees   = "maxAttendees"
	ParamConferenceKey  = "conferenceKey"
	ParamSpeaker        = "speaker"
	ParamSessionNames   = "sessionNames"
)

// ConfirmationEmailParams encodes the confirmation email data as task params.
func ConfirmationEmailParams(d *domain.ConferenceCreatedEmailData) map[string]string {
	return map[string]string{
		ParamEmail:          d.Email,
		ParamOrganizerName:  d.OrganizerName,
		ParamConferenceName: d.ConferenceName,
		ParamCity:           d.City,
		ParamStartDate:      d.StartDate,
		ParamEndDate:        d.EndDate,
		ParamTopics:         encodeList(d.Topics),
		ParamMaxAttendees:   strconv.Itoa(d.MaxAttendees),
		ParamConferenceKey:  d.ConferenceKey,
	}
}

// FeaturedSpeakerParams encodes a featured speaker as task params.
func FeaturedSpeakerParams(fs domain.FeaturedSpeaker) map[string]string {
	return map[string]string{
		ParamSpeaker:      fs.Speaker,
		ParamSessionNames: encodeList(fs.SessionNames),
	}
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func decodeList(param, s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("param %s: %w", param, err)
	}
	return items, nil
}

// SendConfirmationEmail mails the organizer of a newly created conference.
func SendConfirmationEmail(svc domain.EmailService) Handler {
	return HandlerFunc(domain.TaskSendConfirmationEmail, func(ctx context.Context, p map[string]string) error {
		if p[ParamEmail] == "" {
			return fmt.Errorf("param %s is required", ParamEmail)
		}
		topics, err := decodeList(ParamTopics, p[ParamTopics])
		if err != nil {
			return err
		}
		maxAttendees := 0
		if s := p[ParamMaxAttendees]; s != "" {
			if maxAttendees, err = strconv.Atoi(s); err != nil {
				return fmt.Errorf("param %s: %w", ParamMaxAttendees, err)
			}
		}
		return svc.SendConferenceCreated(ctx, &domain.ConferenceCreatedEmailData{
			Email:          p[ParamEmail],
			OrganizerName:  p[ParamOrganizerName],
			ConferenceName: p[ParamConferenceName],
			City:           p[ParamCity],
			StartDate:      p[ParamStartDate],
			EndDate:        p[ParamEndDate],
			Topics:         topics,
			MaxAttendees:   maxAttendees,
			ConferenceKey:  p[ParamConferenceKey],
		})
	})
}

// FeaturedSpeakerCacher stores the featured speaker record.
type FeaturedSpeakerCacher interface {
	CacheFeaturedSpeaker(ctx context.Context, fs domain.FeaturedSpeaker) error
}

// UpdateFeaturedSpeaker caches the speaker named in the params.
func UpdateFeaturedSpeaker(svc FeaturedSpeakerCacher) Handler {
	return HandlerFunc(domain.TaskUpdateFeaturedSpeaker, func(ctx context.Context, p map[string]string) error {
		if p[ParamSpeaker] == "" {
			return fmt.Errorf("param %s is required", ParamSpeaker)
		}
		names, err := decodeList(ParamSessionNames, p[ParamSessionNames])
		if err != nil {
			return err
		}
		return svc.CacheFeaturedSpeaker(ctx, domain.FeaturedSpeaker{Speaker: p[ParamSpeaker], SessionNames: names})
	})
}

// AnnouncementRefresher recomputes the cached announcement.
type AnnouncementRefresher interface {
	RefreshAnnouncement(ctx context.Context) (string, error)
}

// RefreshAnnouncement recomputes the nearly-sold-out announcement.
func RefreshAnnouncement(svc AnnouncementRefresher) Handler {
	return HandlerFunc(domain.TaskRefreshAnnouncement, func(ctx context.Context, _ map[string]string) error {
		_, err := svc.RefreshAnnouncement(ctx)
		return err
	})
}
