package domain

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired")
	ErrForbidden             = errors.New("access forbidden")
	ErrGuestTokenUnavailable = errors.New("unable to authenticate for public access")
)

// ValidationError carries per-field messages for a rejected payload, shaped
// for the envelope's errors map.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
