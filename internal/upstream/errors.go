package upstream

import (
	"encoding/json"
	"net/http"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// Fixed human-readable messages for failures that carry no usable body.
const (
	msgGeneric      = "An unexpected error occurred. Please try again."
	msgNetwork      = "Network error. Please check your connection."
	msgUnauthorized = "Your session has expired. Please login again."
	msgForbidden    = "You do not have permission to perform this action."
	msgNotFound     = "The requested resource was not found."
	msgRateLimit    = "Too many requests. Please try again later."
)

// Error is the single error shape the access layer throws. Callers never see
// the raw transport error or the envelope; they branch on Message and Fields
// only. Status is zero when no response was received.
type Error struct {
	Message string
	Status  int
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// normalize converts a non-2xx response into an Error using a tagged decode:
// envelope first, then problem details, else the fixed message table.
func normalize(status int, raw []byte) *Error {
	if env, ok := parseEnvelope(raw); ok {
		msg := env.Message
		if msg == "" {
			msg = fixedMessage(status)
		}
		return &Error{Message: msg, Status: status, Fields: env.Errors}
	}

	if pd, ok := parseProblem(raw); ok {
		msg := pd.Detail
		if msg == "" {
			msg = pd.Title
		}
		if msg == "" {
			msg = fixedMessage(status)
		}
		return &Error{Message: msg, Status: status, Fields: pd.Errors}
	}

	return &Error{Message: fixedMessage(status), Status: status}
}

func fixedMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusTooManyRequests:
		return msgRateLimit
	default:
		return msgGeneric
	}
}

// parseEnvelope decodes raw as the standard envelope. The "success" key must
// be present; a structurally different JSON body is not an envelope.
func parseEnvelope(raw []byte) (*domain.Envelope, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false
	}
	if _, ok := probe["success"]; !ok {
		return nil, false
	}

	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	return &env, true
}

// parseProblem decodes raw as RFC 7807 problem details, keyed on "title".
func parseProblem(raw []byte) (*domain.ProblemDetails, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false
	}
	if _, ok := probe["title"]; !ok {
		return nil, false
	}

	var pd domain.ProblemDetails
	if err := json.Unmarshal(raw, &pd); err != nil {
		return nil, false
	}
	return &pd, true
}
