package ports

import "context"

// APIClient is the narrow view of the upstream access layer the domain
// services depend on. Results arrive already unwrapped from the envelope and
// failures are already normalized.
type APIClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}
