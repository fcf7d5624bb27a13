package session

import (
	"net/http"
	"time"
)

// DefaultCookieName matches the name the dashboard frontend historically
// used, so existing browser state keeps working across deploys.
const DefaultCookieName = "realestate_auth_token"

// CookieOptions defines how the auth cookie is issued. The cookie mirrors
// the bearer token purely so the edge middleware can make its coarse
// redirect decision; it is never treated as authoritative.
type CookieOptions struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetCookie writes the token projection with the session's expiry.
func SetCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	opts = opts.normalize()
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     opts.Path,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the token projection from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()
	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
