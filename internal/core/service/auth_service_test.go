package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
	"github.com/realestate/admin-gateway/internal/session"
)

type memSessionStore struct {
	sessions map[string]*session.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*session.Session)}
}

func (m *memSessionStore) Save(_ context.Context, s *session.Session) error {
	clone := *s
	m.sessions[s.Token] = &clone
	return nil
}

func (m *memSessionStore) Find(_ context.Context, token string) (*session.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *memSessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func newAuthFixture(client *stubAPIClient, secret string) (*AuthService, *memSessionStore) {
	store := newMemSessionStore()
	sessions := session.NewManager(store, nil, zerolog.Nop())
	return NewAuthService(client, sessions, secret, 0, zerolog.Nop()), store
}

func TestLoginOpensSessionWithUpstreamExpiry(t *testing.T) {
	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			return fill(t, out, `{
				"token":"tok-1",
				"expiresAt":"2026-09-02T08:00:00Z",
				"user":{"userId":"u1","username":"alice","roles":["Admin"]}
			}`)
		},
	}
	svc, store := newAuthFixture(client, "secret")

	sess, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "tok-1" || sess.User.Username != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	want := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	if !sess.ExpiresAt.Equal(want) {
		t.Fatalf("expected upstream expiry %v, got %v", want, sess.ExpiresAt)
	}
	if _, ok := store.sessions["tok-1"]; !ok {
		t.Fatal("session not persisted")
	}
	if len(client.calls) != 1 || client.calls[0].path != "/auth/login" {
		t.Fatalf("unexpected calls: %+v", client.calls)
	}
}

func TestLoginExpiryFallsBackToTokenClaim(t *testing.T) {
	exp := time.Now().Add(90 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice",
		"exp":      exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			// The upstream has historically sent the literal string "null".
			return fill(t, out, `{
				"token":"`+signed+`",
				"expiresAt":"null",
				"username":"alice",
				"roles":["Editor"]
			}`)
		},
	}
	svc, _ := newAuthFixture(client, "secret")

	sess, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("expected claim expiry %v, got %v", exp, sess.ExpiresAt)
	}
}

func TestLoginFlatResponseShape(t *testing.T) {
	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			return fill(t, out, `{"token":"tok-2","username":"bob","roles":["Viewer"]}`)
		},
	}
	svc, _ := newAuthFixture(client, "secret")

	sess, err := svc.Login(context.Background(), ports.LoginInput{Email: "bob@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.Username != "bob" || sess.User.Email != "bob@example.com" {
		t.Fatalf("flat shape not assembled: %+v", sess.User)
	}
	if !sess.User.HasRole(domain.RoleViewer) {
		t.Fatalf("roles lost: %+v", sess.User)
	}
}

func TestLoginFallbackTTLIsConfigurable(t *testing.T) {
	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			// Opaque token, no expiresAt: neither expiry source is usable.
			return fill(t, out, `{"token":"opaque","username":"alice","roles":["Admin"]}`)
		},
	}
	store := newMemSessionStore()
	sessions := session.NewManager(store, nil, zerolog.Nop())
	svc := NewAuthService(client, sessions, "secret", time.Hour, zerolog.Nop())

	before := time.Now()
	sess, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	after := time.Now()

	if sess.ExpiresAt.Before(before.Add(time.Hour)) || sess.ExpiresAt.After(after.Add(time.Hour)) {
		t.Fatalf("expected configured 1h fallback expiry, got %v", sess.ExpiresAt)
	}
}

func TestLoginWithoutTokenIsRejected(t *testing.T) {
	client := &stubAPIClient{
		respond: func(_, _ string, out any) error {
			return fill(t, out, `{"token":""}`)
		},
	}
	svc, _ := newAuthFixture(client, "secret")

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesEvenWhenUpstreamFails(t *testing.T) {
	client := &stubAPIClient{
		respond: func(method, path string, _ any) error {
			if path == "/auth/logout" {
				return errors.New("upstream down")
			}
			return nil
		},
	}
	svc, store := newAuthFixture(client, "secret")
	store.sessions["tok-3"] = &session.Session{Token: "tok-3", User: &domain.User{Username: "alice"}}

	if err := svc.Logout(context.Background(), "tok-3"); err != nil {
		t.Fatalf("logout must swallow upstream failures: %v", err)
	}
	if _, ok := store.sessions["tok-3"]; ok {
		t.Fatal("session must be revoked regardless of the upstream")
	}
	if len(client.calls) != 1 || client.calls[0].token != "tok-3" {
		t.Fatalf("logout must carry the session token upstream: %+v", client.calls)
	}
}
