package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/upstream"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Passes normalized upstream errors through with their status, message,
//     and field errors, so forms can keep the user's input.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders every failure as the standard {success:false, ...} envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		_ = respondError(c, code, msg, fields)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, map[string][]string) {
	// Errors already normalized by the access layer carry everything needed.
	var ue *upstream.Error
	if errors.As(err, &ue) {
		status := ue.Status
		if status == 0 {
			// No response received upstream.
			status = http.StatusBadGateway
		}
		return status, ue.Message, ue.Fields
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Rejected payloads keep their per-field messages for the form.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Please check the form for errors.", ve.Fields
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", nil
	case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session expired", nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", nil
	case errors.Is(err, domain.ErrGuestTokenUnavailable):
		return http.StatusServiceUnavailable, err.Error(), nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}
