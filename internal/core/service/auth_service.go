package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
	"github.com/realestate/admin-gateway/internal/session"
	"github.com/realestate/admin-gateway/internal/upstream"
)

const defaultSessionTTL = 24 * time.Hour

// AuthService exchanges credentials with the upstream API and owns the
// resulting session lifecycle.
type AuthService struct {
	client     ports.APIClient
	sessions   *session.Manager
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

// NewAuthService creates an AuthService. sessionTTL is the fallback session
// lifetime used when the upstream supplies no usable expiry; zero means the
// default of 24 hours.
func NewAuthService(client ports.APIClient, sessions *session.Manager, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{client: client, sessions: sessions, jwtSecret: jwtSecret, sessionTTL: sessionTTL, log: log}
}

// loginResponse is the upstream login payload. Older deployments return a
// flat username/roles pair instead of a nested user object.
type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expiresAt"`
	User      *domain.User  `json:"user"`
	Username  string        `json:"username"`
	Roles     []domain.Role `json:"roles"`
}

// Login authenticates against the upstream and opens a session. A 401 from
// the login endpoint is not redirected by the access layer; the normalized
// error is re-thrown here for the login form to display.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*session.Session, error) {
	var res loginResponse
	if err := s.client.Post(ctx, "/auth/login", in, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user := res.User
	if user == nil {
		user = &domain.User{Username: res.Username, Email: in.Email, Roles: res.Roles}
	}

	return s.sessions.Create(ctx, user, res.Token, s.resolveExpiry(res.Token, res.ExpiresAt))
}

// Logout tells the upstream on a best-effort basis, then unconditionally
// revokes the local session. Upstream failures are logged, never surfaced.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.client.Post(upstream.WithToken(ctx, token), "/auth/logout", nil, nil); err != nil {
		s.log.Warn().Err(err).Msg("upstream logout failed, clearing session anyway")
	}
	return s.sessions.Revoke(ctx, token)
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	var res ports.RegisterResult
	if err := s.client.Post(ctx, "/auth/register", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// resolveExpiry picks the session expiry: the upstream's explicit expiresAt
// when parseable, else the token's own exp claim, else the configured TTL.
// The upstream has historically sent the literal strings "null" and
// "undefined" here, so those are treated as absent.
func (s *AuthService) resolveExpiry(token, expiresAt string) time.Time {
	if expiresAt != "" && expiresAt != "null" && expiresAt != "undefined" {
		if t, err := time.Parse(time.RFC3339, expiresAt); err == nil {
			return t
		}
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}

	return time.Now().Add(s.sessionTTL)
}
