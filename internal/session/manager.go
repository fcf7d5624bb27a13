package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// Manager is the single owner of session state. Every mutation goes through
// one of its entry points; nothing else writes to the store.
type Manager struct {
	store Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewManager creates a Manager over the given store. If now is nil,
// time.Now is used.
func NewManager(store Store, now func() time.Time, log zerolog.Logger) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: store, now: now, log: log}
}

// Create opens a session for a freshly authenticated user and persists it.
func (m *Manager) Create(ctx context.Context, user *domain.User, token string, expiresAt time.Time) (*Session, error) {
	s := &Session{Token: token, User: user, ExpiresAt: expiresAt}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	m.log.Info().Str("username", user.Username).Time("expires_at", expiresAt).Msg("session created")
	return s, nil
}

// CheckAuth re-derives the authentication state for a presented token. An
// expired session is treated as logged out: the stale record is discarded
// and ErrSessionExpired returned, even though a token string still exists.
func (m *Manager) CheckAuth(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	s, err := m.store.Find(ctx, token)
	if err != nil {
		return nil, err
	}

	if !s.Authenticated(m.now()) {
		if err := m.store.Delete(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("failed to discard expired session")
		}
		return nil, domain.ErrSessionExpired
	}

	return s, nil
}

// UpdateUser shallow-merges profile fields into the session's user and
// persists the merged record. Used after profile edits.
func (m *Manager) UpdateUser(ctx context.Context, token string, patch domain.UserPatch) (*Session, error) {
	s, err := m.CheckAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	merged := s.User.Merge(patch)
	s.User = &merged
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Revoke unconditionally destroys the session for the given token. Unknown
// tokens are not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}
