// Package upstream is the single choke point for every call to the remote
// real-estate API. It attaches the bearer token from the request context,
// drives the loading hooks, unwraps the response envelope, and converts every
// failure into a normalized *Error before anything reaches a domain service.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/ports"
)

// Client wraps outbound HTTP against a configured base URL. All methods are
// safe for concurrent use; overlapping requests simply overlap their
// loading-hook transitions, which is acceptable for an advisory signal.
type Client struct {
	baseURL        string
	http           *http.Client
	hooks          ports.LoadingHooks
	notifier       ports.Notifier
	metrics        ports.RequestMetrics
	onUnauthorized func(ctx context.Context, token string)
	log            zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLoadingHooks registers the start/stop loading callbacks.
func WithLoadingHooks(h ports.LoadingHooks) Option {
	return func(c *Client) { c.hooks = h }
}

// WithNotifier registers the notification sink for success and error toasts.
func WithNotifier(n ports.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithRequestMetrics registers the per-request metrics observer.
func WithRequestMetrics(m ports.RequestMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithOnUnauthorized registers the hook invoked when a 401 arrives on a path
// that is neither the login endpoint nor the public certificate read. The
// hook receives the token that failed so the session layer can revoke it.
func WithOnUnauthorized(fn func(ctx context.Context, token string)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the given base URL with a fixed per-request
// timeout. The timeout surfaces as a network-class Error on expiry.
func New(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: timeout},
		hooks:          noopHooks{},
		notifier:       noopNotifier{},
		metrics:        noopMetrics{},
		onUnauthorized: func(context.Context, string) {},
		log:            log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET and decodes the unwrapped envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST with a JSON body and decodes the unwrapped, id-remapped
// envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch performs a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// Upload performs a multipart POST. The response body is decoded into out
// as-is, without envelope unwrapping.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return &Error{Message: msgGeneric}
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return &Error{Message: msgGeneric}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Message: msgGeneric}
	}
	if err := w.Close(); err != nil {
		return &Error{Message: msgGeneric}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Message: msgGeneric}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.attachToken(ctx, req)

	return c.send(ctx, req, path, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			// Construction failed before dispatch: no hooks, no notification.
			return &Error{Message: msgGeneric}
		}
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return &Error{Message: msgGeneric}
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachToken(ctx, req)

	return c.send(ctx, req, path, out, true)
}

func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	if tok, ok := Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// send dispatches the request. Loading hooks bracket exactly this function:
// one Start before Do, one Stop when the call settles.
func (c *Client) send(ctx context.Context, req *http.Request, path string, out any, unwrap bool) error {
	c.hooks.Start()
	defer c.hooks.Stop()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(req.Method, 0, time.Since(start))
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", path).Msg("upstream unreachable")
		c.notifier.Error(msgNetwork)
		return &Error{Message: msgNetwork}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.metrics.Observe(req.Method, resp.StatusCode, time.Since(start))
	if err != nil {
		c.notifier.Error(msgGeneric)
		return &Error{Message: msgGeneric, Status: resp.StatusCode}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.decodeSuccess(req.Method, path, raw, out, unwrap)
	}

	nerr := normalize(resp.StatusCode, raw)
	c.react(ctx, path, nerr)
	return nerr
}

// decodeSuccess handles 2xx responses: unwraps the envelope, emits the
// success/soft-failure notifications, applies id remapping on writes, and
// decodes the result into out.
func (c *Client) decodeSuccess(method, path string, raw []byte, out any, unwrap bool) error {
	if !unwrap {
		return unmarshalInto(raw, out)
	}

	env, ok := parseEnvelope(raw)
	if !ok {
		// A handful of endpoints (guest token issuance) respond bare.
		return unmarshalInto(raw, out)
	}

	if !env.Success && env.Message != "" {
		// Soft business failure on a 2xx: warn, still hand back the data.
		c.notifier.Warning(env.Message)
	} else if env.Success && env.Message != "" && isWrite(method) {
		c.notifier.Info(env.Message)
	}

	data := env.Data
	if isWrite(method) {
		data = remapID(data, path)
	}
	return unmarshalInto(data, out)
}

// react emits the error notification and routes the 401 policy: login and
// public certificate reads are left to the caller; everything else triggers
// the unauthorized hook so the session is revoked and the browser is sent
// back to the login page.
func (c *Client) react(ctx context.Context, path string, e *Error) {
	c.notifier.Error(e.Message)

	if e.Status != http.StatusUnauthorized || isAuthExempt(path) {
		return
	}

	tok, _ := Token(ctx)
	c.log.Info().Str("path", path).Msg("unauthorized upstream response, revoking session")
	c.onUnauthorized(ctx, tok)
}

// isAuthExempt reports whether a 401 on this path is handled locally by the
// caller instead of forcing a re-login: the login endpoint itself, and the
// public single-trace read (which rides on a guest token).
func isAuthExempt(path string) bool {
	if strings.Contains(path, "/auth/login") {
		return true
	}
	return strings.Contains(path, "/traces/") && !strings.Contains(path, "/properties/")
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func unmarshalInto(data []byte, out any) error {
	if out == nil || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: msgGeneric}
	}
	return nil
}

type noopHooks struct{}

func (noopHooks) Start() {}
func (noopHooks) Stop()  {}

type noopNotifier struct{}

func (noopNotifier) Info(string)    {}
func (noopNotifier) Warning(string) {}
func (noopNotifier) Error(string)   {}

type noopMetrics struct{}

func (noopMetrics) Observe(string, int, time.Duration) {}
