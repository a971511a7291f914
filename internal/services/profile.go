package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	gateway        domain.EntityGateway
	contextTimeout time.Duration
}

func NewProfileService(gateway domain.EntityGateway, timeout time.Duration) domain.ProfileService {
	return &profileService{gateway: gateway, contextTimeout: timeout}
}

func (s *profileService) GetProfile(ctx context.Context, user domain.AuthUser) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return ensureProfile(ctx, s.gateway, user)
}

func (s *profileService) SaveProfile(ctx context.Context, user domain.AuthUser, upd domain.ProfileUpdate) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.TeeShirtSize != "" {
		if _, ok := domain.ParseTeeShirtSize(string(upd.TeeShirtSize)); !ok {
			return nil, domain.NewInvalidInputError("teeShirtSize", fmt.Sprintf("unknown size %q", upd.TeeShirtSize))
		}
	}
	displayName := strings.TrimSpace(upd.DisplayName)

	var saved *domain.Profile
	key := domain.ProfileKey(user.ID)
	err := s.gateway.RunInTransaction(ctx, []domain.Key{key}, func(ctx context.Context, tx domain.Tx) error {
		p, err := domain.GetAs[*domain.Profile](ctx, tx, key)
		if errors.Is(err, domain.ErrNoSuchEntity) {
			p, err = domain.NewProfile(user), nil
		}
		if err != nil {
			return err
		}
		if displayName != "" {
			p.DisplayName = displayName
		}
		if upd.TeeShirtSize != "" {
			p.TeeShirtSize = upd.TeeShirtSize
		}
		saved = p
		return tx.Put(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return saved, nil
}

// ensureProfile returns the user's profile, storing the default one on first
// access. The write runs in a transaction so it never clobbers a concurrent
// ledger update.
func ensureProfile(ctx context.Context, gw domain.EntityGateway, user domain.AuthUser) (*domain.Profile, error) {
	key := domain.ProfileKey(user.ID)
	p, err := domain.GetAs[*domain.Profile](ctx, gw, key)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNoSuchEntity) {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	err = gw.RunInTransaction(ctx, []domain.Key{key}, func(ctx context.Context, tx domain.Tx) error {
		p, err = domain.GetAs[*domain.Profile](ctx, tx, key)
		if errors.Is(err, domain.ErrNoSuchEntity) {
			p = domain.NewProfile(user)
			return tx.Put(ctx, p)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// findProfile returns the user's profile, or nil when it does not exist yet.
func findProfile(ctx context.Context, r domain.Reader, userID string) (*domain.Profile, error) {
	p, err := domain.GetAs[*domain.Profile](ctx, r, domain.ProfileKey(userID))
	if errors.Is(err, domain.ErrNoSuchEntity) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// displayNames resolves the display names of the given profile keys. Missing
// profiles are left out of the result.
func displayNames(ctx context.Context, gw domain.EntityGateway, profileKeys []domain.Key) (map[string]string, error) {
	seen := make(map[string]bool, len(profileKeys))
	var keys []domain.Key
	for _, k := range profileKeys {
		if s := k.String(); !seen[s] {
			seen[s] = true
			keys = append(keys, k)
		}
	}
	names := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return names, nil
	}
	entities, err := gw.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get organizers: %w", err)
	}
	for _, e := range entities {
		if p, ok := e.(*domain.Profile); ok {
			names[p.Key.String()] = p.DisplayName
		}
	}
	return names, nil
}
