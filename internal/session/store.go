package session

import "context"

// Store persists sessions keyed by bearer token. Implementations must treat
// the stored copy as a write-only projection: it is written on every
// mutation and read back only when a request presents the token.
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Find returns the stored session, or domain.ErrSessionNotFound when the
	// token is unknown.
	Find(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
