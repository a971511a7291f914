package domain

import (
	"strings"
	"time"
)

// AuthUser is the identity carried by a verified bearer token.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Nickname is the default display name: the token's name, else the local part
// of the email address.
func (u AuthUser) Nickname() string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user AuthUser, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user.
type TokenVerifier interface {
	Verify(token string) (AuthUser, error)
}
