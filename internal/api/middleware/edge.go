package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// Path classification for the edge gate. The /traces prefix is deliberately
// in the public list even though the traces listing is protected: the
// certificate view /traces/:id must stay reachable without a session, and
// the listing is re-gated by RBAC behind the API.
var (
	publicPrefixes    = []string{"/login", "/traces"}
	protectedPrefixes = []string{"/dashboard", "/properties", "/owners", "/settings", "/profile"}
)

// EdgeGuard makes the coarse pre-render redirect decision from the auth
// cookie alone; it never consults the session store. Rules, in order:
// a login path with a cookie bounces to the dashboard; a protected path
// without a cookie (and not shadowed by a public prefix) bounces to login
// with the original path preserved as ?from=; everything else passes.
func EdgeGuard(cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			token := cookieToken(c, cookieName)

			if strings.HasPrefix(path, "/login") && token != "" {
				return c.Redirect(http.StatusFound, "/dashboard")
			}

			if hasPrefix(path, protectedPrefixes) && token == "" && !hasPrefix(path, publicPrefixes) {
				return c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(path))
			}

			return next(c)
		}
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
