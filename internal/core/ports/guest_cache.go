package ports

import (
	"context"
	"time"
)

// GuestTokenCache stores the short-lived anonymous token between public page
// loads. A miss returns an empty token and no error.
type GuestTokenCache interface {
	Get(ctx context.Context) (token string, expiresAt time.Time, err error)
	Put(ctx context.Context, token string, expiresAt time.Time) error
	Clear(ctx context.Context) error
}
