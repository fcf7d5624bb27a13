package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guestTokenKey = "guest:token"

// GuestTokenCache stores the anonymous public-access token in Redis. The
// entry expires with the token itself, so a stale credential can never be
// served after its upstream validity ends.
type GuestTokenCache struct {
	client *redis.Client
}

// NewGuestTokenCache creates a GuestTokenCache wrapping the given client.
func NewGuestTokenCache(client *redis.Client) *GuestTokenCache {
	return &GuestTokenCache{client: client}
}

type cachedGuestToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the cached token and its expiry. A miss returns an empty token
// and no error.
func (c *GuestTokenCache) Get(ctx context.Context) (string, time.Time, error) {
	val, err := c.client.Get(ctx, guestTokenKey).Result()
	if err == redis.Nil {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("guest token read: %w", err)
	}

	var entry cachedGuestToken
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return "", time.Time{}, fmt.Errorf("guest token decode: %w", err)
	}
	return entry.Token, entry.ExpiresAt, nil
}

// Put stores the token until its expiry.
func (c *GuestTokenCache) Put(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(cachedGuestToken{Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("guest token encode: %w", err)
	}
	return c.client.Set(ctx, guestTokenKey, data, ttl).Err()
}

// Clear drops the cached token.
func (c *GuestTokenCache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, guestTokenKey).Err()
}
