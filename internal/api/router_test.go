package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/pkg/config"
	"github.com/realestate/admin-gateway/internal/session"
)

type nilStore struct{}

func (nilStore) Save(context.Context, *session.Session) error { return nil }
func (nilStore) Find(context.Context, string) (*session.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (nilStore) Delete(context.Context, string) error { return nil }

type nilClient struct{}

func (nilClient) Get(context.Context, string, any) error        { return nil }
func (nilClient) Post(context.Context, string, any, any) error  { return nil }
func (nilClient) Put(context.Context, string, any, any) error   { return nil }
func (nilClient) Patch(context.Context, string, any, any) error { return nil }
func (nilClient) Delete(context.Context, string, any) error     { return nil }

type nilActivity struct{}

func (nilActivity) Record(domain.ActivityEntry) {}
func (nilActivity) List(context.Context, int, int) (*domain.Page[domain.ActivityEntry], error) {
	return &domain.Page[domain.ActivityEntry]{}, nil
}

// TestShellRoutesRegistered walks the route table instead of dispatching
// requests, so the nil store and client are never exercised.
func TestShellRoutesRegistered(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.CookieName = "realestate_auth_token"

	e := NewRouter(cfg, Deps{
		Upstream: nilClient{},
		Sessions: session.NewManager(nilStore{}, nil, zerolog.Nop()),
		Activity: nilActivity{},
		Log:      zerolog.Nop(),
	})

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, path := range []string{
		"/", "/login", "/dashboard",
		"/properties", "/properties/:id",
		"/owners", "/owners/:id",
		"/settings", "/profile",
		"/traces", "/traces/:id",
	} {
		if !registered[http.MethodGet+" "+path] {
			t.Fatalf("page shell route %q not registered", path)
		}
	}

	for _, key := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/traces",
		"GET /api/v1/activity",
		"GET /metrics",
	} {
		if !registered[key] {
			t.Fatalf("route %q not registered", key)
		}
	}
}
