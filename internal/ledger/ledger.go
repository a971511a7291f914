// Package ledger runs the seat and wishlist read-decide-write sequences as
// single transactions over the Profile and Conference entity group.
package ledger

import (
	"context"
	"errors"
	"slices"

	"conferencecentral/internal/domain"
)

// Manager executes ledger operations. Every operation is exactly one
// RunInTransaction attempt; a contention abort surfaces as a *domain.TransientError
// and the caller decides whether to retry.
type Manager struct {
	gateway domain.EntityGateway
}

// NewManager returns a Manager over gateway.
func NewManager(gateway domain.EntityGateway) *Manager {
	return &Manager{gateway: gateway}
}

// loadProfile reads the user's profile inside tx, returning a fresh default
// profile when none exists yet. The caller's Put creates it.
func loadProfile(ctx context.Context, tx domain.Tx, user domain.AuthUser) (*domain.Profile, error) {
	p, err := domain.GetAs[*domain.Profile](ctx, tx, domain.ProfileKey(user.ID))
	if errors.Is(err, domain.ErrNoSuchEntity) {
		return domain.NewProfile(user), nil
	}
	return p, err
}

// RegisterForConference takes one seat of the conference for user.
func (m *Manager) RegisterForConference(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key) (bool, error) {
	profileKey := domain.ProfileKey(user.ID)
	ck := conferenceKey.Encode()
	err := m.gateway.RunInTransaction(ctx, []domain.Key{profileKey, conferenceKey}, func(ctx context.Context, tx domain.Tx) error {
		prof, err := loadProfile(ctx, tx, user)
		if err != nil {
			return err
		}
		conf, err := domain.MustExist[*domain.Conference](ctx, tx, conferenceKey)
		if err != nil {
			return err
		}
		if prof.Attends(ck) {
			return domain.NewConflictError(domain.ReasonAlreadyRegistered)
		}
		if conf.SeatsAvailable <= 0 {
			return domain.NewConflictError(domain.ReasonNoSeats)
		}
		prof.ConferenceKeysToAttend = append(prof.ConferenceKeysToAttend, ck)
		conf.SeatsAvailable--
		if err := tx.Put(ctx, prof); err != nil {
			return err
		}
		return tx.Put(ctx, conf)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// UnregisterFromConference releases user's seat. It returns false without
// changing anything when user is not registered. Sessions of the conference are
// dropped from the wishlist in the same transaction.
func (m *Manager) UnregisterFromConference(ctx context.Context, user domain.AuthUser, conferenceKey domain.Key) (bool, error) {
	profileKey := domain.ProfileKey(user.ID)
	ck := conferenceKey.Encode()
	removed := false
	err := m.gateway.RunInTransaction(ctx, []domain.Key{profileKey, conferenceKey}, func(ctx context.Context, tx domain.Tx) error {
		removed = false
		prof, err := loadProfile(ctx, tx, user)
		if err != nil {
			return err
		}
		conf, err := domain.MustExist[*domain.Conference](ctx, tx, conferenceKey)
		if err != nil {
			return err
		}
		if !prof.Attends(ck) {
			return nil
		}
		prof.ConferenceKeysToAttend = slices.DeleteFunc(prof.ConferenceKeysToAttend, func(k string) bool { return k == ck })
		prof.SessionWishlist = slices.DeleteFunc(prof.SessionWishlist, func(k string) bool {
			sk, err := domain.DecodeKey(k)
			return err == nil && sk.HasAncestor(conferenceKey)
		})
		if conf.SeatsAvailable < conf.MaxAttendees {
			conf.SeatsAvailable++
		}
		removed = true
		if err := tx.Put(ctx, prof); err != nil {
			return err
		}
		return tx.Put(ctx, conf)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// AddSessionToWishlist appends the session to user's wishlist. The user must be
// registered for the session's conference.
func (m *Manager) AddSessionToWishlist(ctx context.Context, user domain.AuthUser, sessionKey domain.Key) (bool, error) {
	profileKey := domain.ProfileKey(user.ID)
	sk := sessionKey.Encode()
	err := m.gateway.RunInTransaction(ctx, []domain.Key{profileKey}, func(ctx context.Context, tx domain.Tx) error {
		prof, err := loadProfile(ctx, tx, user)
		if err != nil {
			return err
		}
		sess, err := domain.MustExist[*domain.Session](ctx, tx, sessionKey)
		if err != nil {
			return err
		}
		if !prof.Attends(sess.ConferenceKey().Encode()) {
			return domain.NewForbiddenError(domain.ReasonRegisterFirst)
		}
		if prof.Wishlisted(sk) {
			return domain.NewConflictError(domain.ReasonAlreadyWishlisted)
		}
		prof.SessionWishlist = append(prof.SessionWishlist, sk)
		return tx.Put(ctx, prof)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveSessionFromWishlist drops the session from user's wishlist. It returns
// false when the session was not wishlisted.
func (m *Manager) RemoveSessionFromWishlist(ctx context.Context, user domain.AuthUser, sessionKey domain.Key) (bool, error) {
	profileKey := domain.ProfileKey(user.ID)
	sk := sessionKey.Encode()
	removed := false
	err := m.gateway.RunInTransaction(ctx, []domain.Key{profileKey}, func(ctx context.Context, tx domain.Tx) error {
		removed = false
		prof, err := loadProfile(ctx, tx, user)
		if err != nil {
			return err
		}
		if !prof.Wishlisted(sk) {
			return nil
		}
		prof.SessionWishlist = slices.DeleteFunc(prof.SessionWishlist, func(k string) bool { return k == sk })
		removed = true
		return tx.Put(ctx, prof)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
