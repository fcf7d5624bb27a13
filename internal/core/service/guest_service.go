package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// renewalMargin is the safety margin before expiry at which a cached guest
// token stops being reused.
const renewalMargin = 5 * time.Minute

// GuestService obtains and caches the short-lived anonymous token used by
// the public certificate view. Its lifecycle is fully independent from the
// main session.
type GuestService struct {
	client  ports.APIClient
	cache   ports.GuestTokenCache
	now     func() time.Time
	log     zerolog.Logger
	onIssue func()

	// mu serializes refetches so concurrent public page loads issue at most
	// one upstream call.
	mu sync.Mutex
}

// NewGuestService creates a GuestService. If now is nil, time.Now is used.
func NewGuestService(client ports.APIClient, cache ports.GuestTokenCache, now func() time.Time, log zerolog.Logger) *GuestService {
	if now == nil {
		now = time.Now
	}
	return &GuestService{client: client, cache: cache, now: now, log: log}
}

// OnIssue registers a callback invoked once per freshly fetched token.
// Cache hits do not trigger it.
func (s *GuestService) OnIssue(fn func()) {
	s.onIssue = fn
}

type guestTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// GuestToken returns the cached token while more than five minutes of
// validity remain, otherwise fetches exactly one new token from the
// anonymous endpoint and caches it with its server-supplied expiry.
func (s *GuestService) GuestToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, expiresAt, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("guest token cache read failed")
	} else if tok != "" && expiresAt.Sub(s.now()) > renewalMargin {
		return tok, nil
	}

	var res guestTokenResponse
	if err := s.client.Post(ctx, "/auth/token", struct{}{}, &res); err != nil {
		s.log.Error().Err(err).Msg("guest token fetch failed")
		return "", domain.ErrGuestTokenUnavailable
	}
	if res.Token == "" {
		return "", domain.ErrGuestTokenUnavailable
	}
	if s.onIssue != nil {
		s.onIssue()
	}

	expiry, perr := time.Parse(time.RFC3339, res.ExpiresAt)
	if perr != nil {
		// Unusable expiry: hand the token out but do not cache it.
		s.log.Warn().Str("expires_at", res.ExpiresAt).Msg("guest token has unparseable expiry")
		return res.Token, nil
	}

	if err := s.cache.Put(ctx, res.Token, expiry); err != nil {
		s.log.Warn().Err(err).Msg("guest token cache write failed")
	}
	return res.Token, nil
}
