package ports

import (
	"context"

	"github.com/realestate/admin-gateway/internal/session"
)

// LoginInput carries the credentials presented to the login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries a new account request, forwarded verbatim upstream.
type RegisterInput struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
}

// RegisterResult is the upstream's acknowledgement of a registration.
type RegisterResult struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// AuthService authenticates against the upstream API and owns the resulting
// session lifecycle.
type AuthService interface {
	// Login exchanges credentials for an upstream token and opens a session.
	Login(ctx context.Context, in LoginInput) (*session.Session, error)
	// Logout notifies the upstream on a best-effort basis, then
	// unconditionally revokes the local session.
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
}

// GuestAuthService issues the short-lived anonymous token used by the public
// certificate view. Fully independent from the main session.
type GuestAuthService interface {
	GuestToken(ctx context.Context) (string, error)
}
