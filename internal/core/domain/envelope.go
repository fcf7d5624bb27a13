package domain

import "encoding/json"

// Envelope is the standard wrapper every upstream JSON response uses, and the
// shape the gateway emits to its own callers.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ProblemDetails is the alternate RFC 7807 error shape the upstream emits for
// some failures.
type ProblemDetails struct {
	Type   string              `json:"type,omitempty"`
	Title  string              `json:"title"`
	Status int                 `json:"status,omitempty"`
	Detail string              `json:"detail,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}
