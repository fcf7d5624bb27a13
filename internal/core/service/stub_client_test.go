package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/realestate/admin-gateway/internal/upstream"
)

// upstreamCall is one recorded request against the stub client.
type upstreamCall struct {
	method string
	path   string
	body   any
	token  string
}

// stubAPIClient records every call and answers via the respond function,
// which writes the canned payload into out.
type stubAPIClient struct {
	calls   []upstreamCall
	respond func(method, path string, out any) error
}

func (s *stubAPIClient) record(ctx context.Context, method, path string, body, out any) error {
	token, _ := upstream.Token(ctx)
	s.calls = append(s.calls, upstreamCall{method: method, path: path, body: body, token: token})
	if s.respond == nil {
		return nil
	}
	return s.respond(method, path, out)
}

func (s *stubAPIClient) Get(ctx context.Context, path string, out any) error {
	return s.record(ctx, "GET", path, nil, out)
}

func (s *stubAPIClient) Post(ctx context.Context, path string, body, out any) error {
	return s.record(ctx, "POST", path, body, out)
}

func (s *stubAPIClient) Put(ctx context.Context, path string, body, out any) error {
	return s.record(ctx, "PUT", path, body, out)
}

func (s *stubAPIClient) Patch(ctx context.Context, path string, body, out any) error {
	return s.record(ctx, "PATCH", path, body, out)
}

func (s *stubAPIClient) Delete(ctx context.Context, path string, out any) error {
	return s.record(ctx, "DELETE", path, nil, out)
}

// fill decodes a canned JSON payload into out, mirroring what the real
// access layer does after unwrapping the envelope.
func fill(t *testing.T, out any, payload string) error {
	t.Helper()
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		t.Fatalf("fill: %v", err)
	}
	return nil
}
