package services

import (
	"context"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_CreatesDefault(t *testing.T) {
	f := newFixture(t)
	p, err := f.profiles.GetProfile(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", p.DisplayName)
	assert.Equal(t, "bob@example.com", p.MainEmail)
	assert.Equal(t, domain.TeeShirtNotSpecified, p.TeeShirtSize)
	assert.Empty(t, p.ConferenceKeysToAttend)

	stored, err := domain.GetAs[*domain.Profile](context.Background(), f.gateway, domain.ProfileKey(bob.ID))
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		upd      domain.ProfileUpdate
		wantName string
		wantSize domain.TeeShirtSize
		wantErr  error
	}{
		{name: "both fields", upd: domain.ProfileUpdate{DisplayName: "Bobby", TeeShirtSize: domain.TeeShirtLM}, wantName: "Bobby", wantSize: domain.TeeShirtLM},
		{name: "size only", upd: domain.ProfileUpdate{TeeShirtSize: domain.TeeShirtXSW}, wantName: "bob", wantSize: domain.TeeShirtXSW},
		{name: "blank name is ignored", upd: domain.ProfileUpdate{DisplayName: "  "}, wantName: "bob", wantSize: domain.TeeShirtNotSpecified},
		{name: "unknown size", upd: domain.ProfileUpdate{TeeShirtSize: "HUGE"}, wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p, err := f.profiles.SaveProfile(ctx, bob, tt.upd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.DisplayName)
			assert.Equal(t, tt.wantSize, p.TeeShirtSize)
		})
	}
}

func TestSaveProfile_KeepsRegistrations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.createConference(t, alice, "A", 3)
	_, err := f.conferences.Register(ctx, bob, c.Key)
	require.NoError(t, err)

	p, err := f.profiles.SaveProfile(ctx, bob, domain.ProfileUpdate{DisplayName: "Bobby"})
	require.NoError(t, err)
	assert.Equal(t, []string{c.Key.Encode()}, p.ConferenceKeysToAttend)
}
