package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/session"
	"github.com/realestate/admin-gateway/internal/upstream"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUser  = "user"
	CtxToken = "token"
)

// Auth resolves the caller's identity before any protected handler runs.
// Browsers present the session cookie; API clients may present the upstream
// JWT directly as a bearer credential. Either way the resolved user lands in
// the echo context and the raw token is threaded into the request context so
// the access layer can attach it upstream.
func Auth(sessions *session.Manager, cookieName, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				token = cookieToken(c, cookieName)
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			user, err := resolveUser(c, sessions, token, jwtSecret)
			if err != nil {
				return err
			}

			c.Set(CtxUser, user)
			c.Set(CtxToken, token)
			req := c.Request()
			c.SetRequest(req.WithContext(upstream.WithToken(req.Context(), token)))

			return next(c)
		}
	}
}

// resolveUser prefers the gateway session; a token without one (direct API
// access, or a session lost to a Redis flush) is accepted only when it
// verifies as an upstream-issued HS256 JWT.
func resolveUser(c echo.Context, sessions *session.Manager, token, jwtSecret string) (*domain.User, error) {
	s, err := sessions.CheckAuth(c.Request().Context(), token)
	if err == nil {
		return s.User, nil
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	user, ok := verifyJWT(token, jwtSecret)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return user, nil
}

func verifyJWT(token, secret string) (*domain.User, bool) {
	if secret == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, false
	}

	user := &domain.User{}
	if v, ok := claims["userId"].(string); ok {
		user.ID = v
	}
	if v, ok := claims["username"].(string); ok {
		user.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if raw, ok := claims["roles"].([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				user.Roles = append(user.Roles, domain.Role(s))
			}
		}
	}
	return user, true
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func cookieToken(c echo.Context, cookieName string) string {
	if cookieName == "" {
		cookieName = session.DefaultCookieName
	}
	ck, err := c.Cookie(cookieName)
	if err != nil || ck == nil {
		return ""
	}
	return ck.Value
}

// CurrentUser returns the identity resolved by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(CtxUser).(*domain.User)
	return u
}

// CurrentToken returns the bearer token resolved by Auth, or "".
func CurrentToken(c echo.Context) string {
	t, _ := c.Get(CtxToken).(string)
	return t
}
