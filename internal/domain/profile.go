package domain

import (
	"context"
	"slices"
)

// TeeShirtSize is the profile's shirt size.
type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

var teeShirtSizes = []TeeShirtSize{
	TeeShirtNotSpecified,
	TeeShirtXSM, TeeShirtXSW, TeeShirtSM, TeeShirtSW, TeeShirtMM, TeeShirtMW,
	TeeShirtLM, TeeShirtLW, TeeShirtXLM, TeeShirtXLW, TeeShirtXXLM, TeeShirtXXLW,
	TeeShirtXXXLM, TeeShirtXXXLW,
}

// ParseTeeShirtSize validates s against the known sizes.
func ParseTeeShirtSize(s string) (TeeShirtSize, bool) {
	size := TeeShirtSize(s)
	return size, slices.Contains(teeShirtSizes, size)
}

// Profile is keyed by the authenticated user id. Key lists hold websafe keys.
// swagger:model Profile
type Profile struct {
	Key                    Key          `json:"-"`
	DisplayName            string       `json:"display_name"`
	MainEmail              string       `json:"main_email"`
	TeeShirtSize           TeeShirtSize `json:"tee_shirt_size"`
	ConferenceKeysToAttend []string     `json:"conference_keys_to_attend"`
	SessionWishlist        []string     `json:"session_wishlist"`
}

func (p *Profile) EntityKey() Key { return p.Key }

// NewProfile returns the default profile created on first access by user.
func NewProfile(user AuthUser) *Profile {
	return &Profile{
		Key:                    ProfileKey(user.ID),
		DisplayName:            user.Nickname(),
		MainEmail:              user.Email,
		TeeShirtSize:           TeeShirtNotSpecified,
		ConferenceKeysToAttend: []string{},
		SessionWishlist:        []string{},
	}
}

// Attends reports whether the conference key is in the attendance set.
func (p *Profile) Attends(conferenceKey string) bool {
	return slices.Contains(p.ConferenceKeysToAttend, conferenceKey)
}

// Wishlisted reports whether the session key is in the wishlist.
func (p *Profile) Wishlisted(sessionKey string) bool {
	return slices.Contains(p.SessionWishlist, sessionKey)
}

// ProfileUpdate carries the user-modifiable profile fields; empty means unchanged.
type ProfileUpdate struct {
	DisplayName  string
	TeeShirtSize TeeShirtSize
}

// ProfileService defines profile use cases.
type ProfileService interface {
	GetProfile(ctx context.Context, user AuthUser) (*Profile, error)
	SaveProfile(ctx context.Context, user AuthUser, upd ProfileUpdate) (*Profile, error)
}
