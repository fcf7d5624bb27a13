package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

type memGuestCache struct {
	token     string
	expiresAt time.Time
	puts      int
}

func (c *memGuestCache) Get(context.Context) (string, time.Time, error) {
	return c.token, c.expiresAt, nil
}

func (c *memGuestCache) Put(_ context.Context, token string, expiresAt time.Time) error {
	c.token = token
	c.expiresAt = expiresAt
	c.puts++
	return nil
}

func (c *memGuestCache) Clear(context.Context) error {
	c.token = ""
	c.expiresAt = time.Time{}
	return nil
}

var guestNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newGuestFixture(client *stubAPIClient, cache *memGuestCache) *GuestService {
	return NewGuestService(client, cache, func() time.Time { return guestNow }, zerolog.Nop())
}

func TestGuestTokenCacheHitSkipsFetch(t *testing.T) {
	client := &stubAPIClient{}
	cache := &memGuestCache{token: "cached", expiresAt: guestNow.Add(10 * time.Minute)}
	svc := newGuestFixture(client, cache)

	tok, err := svc.GuestToken(context.Background())
	if err != nil {
		t.Fatalf("guest token: %v", err)
	}
	if tok != "cached" {
		t.Fatalf("expected cached token, got %q", tok)
	}
	if len(client.calls) != 0 {
		t.Fatalf("no upstream call expected on cache hit, got %d", len(client.calls))
	}
}

func TestGuestTokenRefreshesInsideRenewalMargin(t *testing.T) {
	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			return fill(t, out, `{"token":"fresh","expiresAt":"2026-09-01T13:00:00Z"}`)
		},
	}
	// Four minutes of validity left: below the five-minute margin.
	cache := &memGuestCache{token: "stale", expiresAt: guestNow.Add(4 * time.Minute)}
	svc := newGuestFixture(client, cache)

	issued := 0
	svc.OnIssue(func() { issued++ })

	tok, err := svc.GuestToken(context.Background())
	if err != nil {
		t.Fatalf("guest token: %v", err)
	}
	if tok != "fresh" {
		t.Fatalf("expected fresh token, got %q", tok)
	}
	if len(client.calls) != 1 || client.calls[0].path != "/auth/token" {
		t.Fatalf("expected exactly one fetch from /auth/token, got %+v", client.calls)
	}
	if issued != 1 {
		t.Fatalf("expected one issue callback, got %d", issued)
	}
	if cache.token != "fresh" || !cache.expiresAt.Equal(time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("fresh token not cached with its expiry: %+v", cache)
	}
}

func TestGuestTokenFetchFailure(t *testing.T) {
	client := &stubAPIClient{
		respond: func(string, string, any) error {
			return errors.New("boom")
		},
	}
	svc := newGuestFixture(client, &memGuestCache{})

	_, err := svc.GuestToken(context.Background())
	if !errors.Is(err, domain.ErrGuestTokenUnavailable) {
		t.Fatalf("expected ErrGuestTokenUnavailable, got %v", err)
	}
}

func TestGuestTokenUnparseableExpiryNotCached(t *testing.T) {
	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			return fill(t, out, `{"token":"odd","expiresAt":"soon"}`)
		},
	}
	cache := &memGuestCache{}
	svc := newGuestFixture(client, cache)

	tok, err := svc.GuestToken(context.Background())
	if err != nil {
		t.Fatalf("guest token: %v", err)
	}
	if tok != "odd" {
		t.Fatalf("token must still be handed out, got %q", tok)
	}
	if cache.puts != 0 {
		t.Fatalf("token with unusable expiry must not be cached, puts=%d", cache.puts)
	}
}
