package tasks

import (
	"context"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmailService struct {
	got *domain.ConferenceCreatedEmailData
}

func (s *recordingEmailService) SendConferenceCreated(_ context.Context, d *domain.ConferenceCreatedEmailData) error {
	s.got = d
	return nil
}

type recordingCacher struct {
	got domain.FeaturedSpeaker
}

func (c *recordingCacher) CacheFeaturedSpeaker(_ context.Context, fs domain.FeaturedSpeaker) error {
	c.got = fs
	return nil
}

type countingRefresher struct{ calls int }

func (r *countingRefresher) RefreshAnnouncement(context.Context) (string, error) {
	r.calls++
	return "", nil
}

func TestSendConfirmationEmail(t *testing.T) {
	svc := &recordingEmailService{}
	h := SendConfirmationEmail(svc)
	assert.Equal(t, domain.TaskSendConfirmationEmail, h.Name())

	data := &domain.ConferenceCreatedEmailData{
		Email:          "org@example.com",
		OrganizerName:  "Org",
		ConferenceName: "GopherCon",
		City:           "Berlin",
		StartDate:      "2025-06-01",
		Topics:         []string{"Go, generics", "Tooling"},
		MaxAttendees:   300,
		ConferenceKey:  "abc",
	}
	require.NoError(t, h.Run(context.Background(), ConfirmationEmailParams(data)))
	assert.Equal(t, data, svc.got)

	assert.Error(t, h.Run(context.Background(), map[string]string{}))
	assert.Error(t, h.Run(context.Background(), map[string]string{ParamEmail: "a@b.c", ParamMaxAttendees: "many"}))
	assert.Error(t, h.Run(context.Background(), map[string]string{ParamEmail: "a@b.c", ParamTopics: "not json"}))
}

func TestUpdateFeaturedSpeaker(t *testing.T) {
	c := &recordingCacher{}
	h := UpdateFeaturedSpeaker(c)
	assert.Equal(t, domain.TaskUpdateFeaturedSpeaker, h.Name())

	fs := domain.FeaturedSpeaker{Speaker: "Ada", SessionNames: []string{"Intro, part 1", "Intro, part 2"}}
	require.NoError(t, h.Run(context.Background(), FeaturedSpeakerParams(fs)))
	assert.Equal(t, fs, c.got)

	assert.Error(t, h.Run(context.Background(), map[string]string{ParamSessionNames: "[]"}))
}

func TestRefreshAnnouncement(t *testing.T) {
	r := &countingRefresher{}
	h := RefreshAnnouncement(r)
	assert.Equal(t, domain.TaskRefreshAnnouncement, h.Name())
	require.NoError(t, h.Run(context.Background(), nil))
	assert.Equal(t, 1, r.calls)
}
