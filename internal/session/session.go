package session

import (
	"time"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// Session is the authoritative record of "who is logged in and with what
// token". The Redis copy and the browser cookie are projections of it,
// refreshed on every mutation and read only at lookup time.
type Session struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Authenticated reports whether the session carries a token that has not
// expired at the given instant.
func (s *Session) Authenticated(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

// HasRole reports whether the session's user holds the given role.
func (s *Session) HasRole(role domain.Role) bool {
	if s == nil {
		return false
	}
	return s.User.HasRole(role)
}

// HasAnyRole reports whether the session's user holds any of the given roles.
func (s *Session) HasAnyRole(roles ...domain.Role) bool {
	if s == nil {
		return false
	}
	return s.User.HasAnyRole(roles...)
}
