package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// Recording stubs
// ---------------------------------------------------------------------------

type recordingHooks struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (h *recordingHooks) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stops++
}

type recordingNotifier struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Warning(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type observation struct {
	method string
	status int
}

type recordingMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *recordingMetrics) Observe(method string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method: method, status: status})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *recordingHooks, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hooks := &recordingHooks{}
	notifier := &recordingNotifier{}
	all := append([]Option{
		WithLoadingHooks(hooks),
		WithNotifier(notifier),
	}, opts...)
	c := New(srv.URL, 2*time.Second, zerolog.Nop(), all...)
	return c, hooks, notifier
}

// ---------------------------------------------------------------------------
// Loading hook pairing
// ---------------------------------------------------------------------------

func TestHooksBracketDispatchedRequest(t *testing.T) {
	c, hooks, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"","data":null}`))
	})

	if err := c.Get(context.Background(), "/properties", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if hooks.starts != 1 || hooks.stops != 1 {
		t.Fatalf("expected 1 start / 1 stop, got %d / %d", hooks.starts, hooks.stops)
	}
}

func TestHooksPairOnNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // guarantee a connection refusal

	hooks := &recordingHooks{}
	notifier := &recordingNotifier{}
	c := New(srv.URL, time.Second, zerolog.Nop(), WithLoadingHooks(hooks), WithNotifier(notifier))

	err := c.Get(context.Background(), "/properties", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "Network error. Please check your connection." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if hooks.starts != 1 || hooks.stops != 1 {
		t.Fatalf("expected 1 start / 1 stop, got %d / %d", hooks.starts, hooks.stops)
	}
}

func TestHooksUntouchedWhenBodyUnmarshalable(t *testing.T) {
	dispatched := false
	c, hooks, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	})

	err := c.Post(context.Background(), "/properties", map[string]any{"bad": make(chan int)}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if dispatched {
		t.Fatal("request should never be dispatched")
	}
	if hooks.starts != 0 || hooks.stops != 0 {
		t.Fatalf("hooks should not fire before dispatch, got %d / %d", hooks.starts, hooks.stops)
	}
	if len(notifier.errors) != 0 {
		t.Fatalf("no notification expected before dispatch, got %v", notifier.errors)
	}
}

func TestTimeoutSurfacesAsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 50*time.Millisecond, zerolog.Nop())
	err := c.Get(context.Background(), "/owners", nil)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	ue, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ue.Message != msgNetwork || ue.Status != 0 {
		t.Fatalf("unexpected error: %+v", ue)
	}
}

// ---------------------------------------------------------------------------
// Envelope handling
// ---------------------------------------------------------------------------

func TestGetUnwrapsEnvelope(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"","data":{"name":"Villa Aurora"}}`))
	})

	var out struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/properties/1", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Name != "Villa Aurora" {
		t.Fatalf("expected unwrapped data, got %+v", out)
	}
}

func TestBareResponsePassesThrough(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"guest-abc","expiresAt":"2026-09-01T10:00:00Z"}`))
	})

	var out struct {
		Token string `json:"token"`
	}
	if err := c.Post(context.Background(), "/auth/token", struct{}{}, &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if out.Token != "guest-abc" {
		t.Fatalf("expected bare decode, got %+v", out)
	}
}

func TestSoftFailureWarnsAndStillDecodes(t *testing.T) {
	c, _, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Partial sync","data":{"name":"x"}}`))
	})

	var out struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/properties/1", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(notifier.warnings) != 1 || notifier.warnings[0] != "Partial sync" {
		t.Fatalf("expected one warning, got %v", notifier.warnings)
	}
	if out.Name != "x" {
		t.Fatalf("data should still decode, got %+v", out)
	}
}

func TestWriteSuccessMessageNotifies(t *testing.T) {
	c, _, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"Property created successfully","data":{"id":"p1"}}`))
	})

	if err := c.Post(context.Background(), "/properties", map[string]string{}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if len(notifier.infos) != 1 || notifier.infos[0] != "Property created successfully" {
		t.Fatalf("expected one info, got %v", notifier.infos)
	}
}

// ---------------------------------------------------------------------------
// Identifier remapping
// ---------------------------------------------------------------------------

func TestWriteResponsesRemapID(t *testing.T) {
	cases := []struct {
		path  string
		alias string
	}{
		{"/properties", "idProperty"},
		{"/owners", "idOwner"},
		{"/property-images", "idPropertyImage"},
		{"/property-traces", "idPropertyTrace"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"message":"","data":{"id":"abc","name":"x"}}`))
			})

			var out map[string]any
			if err := c.Post(context.Background(), tc.path, map[string]string{}, &out); err != nil {
				t.Fatalf("post: %v", err)
			}
			if out["id"] != "abc" {
				t.Fatalf("generic id lost: %v", out)
			}
			if out[tc.alias] != "abc" {
				t.Fatalf("expected alias %s, got %v", tc.alias, out)
			}
		})
	}
}

func TestNestedPathRemapsFirstMatch(t *testing.T) {
	// /properties comes first in the alias table, so nested paths keep the
	// property alias.
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"","data":{"id":"t9"}}`))
	})

	var out map[string]any
	if err := c.Post(context.Background(), "/properties/p1/traces", map[string]string{}, &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if out["idProperty"] != "t9" {
		t.Fatalf("expected first-match alias idProperty, got %v", out)
	}
}

func TestReadResponsesAreNotRemapped(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"","data":{"id":"abc"}}`))
	})

	var out map[string]any
	if err := c.Get(context.Background(), "/properties/abc", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := out["idProperty"]; ok {
		t.Fatalf("reads must not be remapped: %v", out)
	}
}

// ---------------------------------------------------------------------------
// Error normalization
// ---------------------------------------------------------------------------

func TestEnvelopeErrorKeepsFieldMessages(t *testing.T) {
	c, _, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Validation failed","errors":{"name":["name is required"]}}`))
	})

	err := c.Post(context.Background(), "/properties", map[string]string{}, nil)
	ue, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ue.Message != "Validation failed" || ue.Status != http.StatusBadRequest {
		t.Fatalf("unexpected error: %+v", ue)
	}
	if got := ue.Fields["name"]; len(got) != 1 || got[0] != "name is required" {
		t.Fatalf("field errors lost: %+v", ue.Fields)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Validation failed" {
		t.Fatalf("expected one error notification, got %v", notifier.errors)
	}
}

func TestProblemDetailsErrorIsNormalized(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"title":"Conflict","status":409,"detail":"Code already in use"}`))
	})

	err := c.Post(context.Background(), "/properties", map[string]string{}, nil)
	ue, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ue.Message != "Code already in use" || ue.Status != http.StatusConflict {
		t.Fatalf("unexpected error: %+v", ue)
	}
}

func TestBodylessStatusesUseFixedMessages(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusNotFound, msgNotFound},
		{http.StatusForbidden, msgForbidden},
		{http.StatusTooManyRequests, msgRateLimit},
		{http.StatusInternalServerError, msgGeneric},
	}

	for _, tc := range cases {
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte("not json"))
		})

		err := c.Get(context.Background(), "/owners", nil)
		ue, ok := err.(*Error)
		if !ok {
			t.Fatalf("status %d: expected *Error, got %T", tc.status, err)
		}
		if ue.Message != tc.want {
			t.Fatalf("status %d: expected %q, got %q", tc.status, tc.want, ue.Message)
		}
	}
}

// ---------------------------------------------------------------------------
// 401 policy
// ---------------------------------------------------------------------------

func unauthorizedHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":""}`))
}

func TestUnauthorizedRevokesSession(t *testing.T) {
	var revoked string
	c, _, _ := newTestClient(t, unauthorizedHandler,
		WithOnUnauthorized(func(_ context.Context, token string) { revoked = token }),
	)

	ctx := WithToken(context.Background(), "tok-123")
	err := c.Get(ctx, "/properties", nil)
	ue, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ue.Message != msgUnauthorized {
		t.Fatalf("unexpected message: %q", ue.Message)
	}
	if revoked != "tok-123" {
		t.Fatalf("expected session revocation with token, got %q", revoked)
	}
}

func TestUnauthorizedOnLoginIsExempt(t *testing.T) {
	called := false
	c, _, _ := newTestClient(t, unauthorizedHandler,
		WithOnUnauthorized(func(context.Context, string) { called = true }),
	)

	err := c.Post(context.Background(), "/auth/login", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if called {
		t.Fatal("login failures must not trigger the unauthorized hook")
	}
}

func TestUnauthorizedOnPublicTraceIsExempt(t *testing.T) {
	called := false
	c, _, _ := newTestClient(t, unauthorizedHandler,
		WithOnUnauthorized(func(context.Context, string) { called = true }),
	)

	err := c.Get(WithToken(context.Background(), "guest"), "/traces/t1", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if called {
		t.Fatal("public certificate reads must not trigger the unauthorized hook")
	}
}

func TestUnauthorizedOnNestedTraceIsNotExempt(t *testing.T) {
	called := false
	c, _, _ := newTestClient(t, unauthorizedHandler,
		WithOnUnauthorized(func(context.Context, string) { called = true }),
	)

	_ = c.Get(WithToken(context.Background(), "tok"), "/properties/p1/traces/t1", nil)
	if !called {
		t.Fatal("nested trace reads must trigger the unauthorized hook")
	}
}

// ---------------------------------------------------------------------------
// Metrics and token attachment
// ---------------------------------------------------------------------------

func TestMetricsObserveEveryDispatchedRequest(t *testing.T) {
	metrics := &recordingMetrics{}
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, WithRequestMetrics(metrics))

	_ = c.Get(context.Background(), "/owners/x", nil)
	if len(metrics.obs) != 1 {
		t.Fatalf("expected one observation, got %d", len(metrics.obs))
	}
	if metrics.obs[0].method != http.MethodGet || metrics.obs[0].status != http.StatusNotFound {
		t.Fatalf("unexpected observation: %+v", metrics.obs[0])
	}
}

func TestBearerTokenAttachedFromContext(t *testing.T) {
	var got string
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"message":"","data":null}`))
	})

	ctx := WithToken(context.Background(), "jwt-token")
	if err := c.Get(ctx, "/owners", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "Bearer jwt-token" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Multipart uploads
// ---------------------------------------------------------------------------

func TestUploadDispatchesMultipartForm(t *testing.T) {
	var (
		gotField string
		gotName  string
		gotFile  string
		gotAuth  string
	)
	c, hooks, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotField = r.FormValue("description")
		gotAuth = r.Header.Get("Authorization")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		gotName = hdr.Filename
		content, _ := io.ReadAll(f)
		gotFile = string(content)
		w.Write([]byte(`{"id":"img-1"}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	ctx := WithToken(context.Background(), "tok")
	err := c.Upload(ctx, "/property-images", map[string]string{"description": "front view"},
		"file", "front.jpg", strings.NewReader("jpeg-bytes"), &out)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotField != "front view" || gotName != "front.jpg" || gotFile != "jpeg-bytes" {
		t.Fatalf("form not transmitted: field=%q name=%q file=%q", gotField, gotName, gotFile)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if out.ID != "img-1" {
		t.Fatalf("expected decoded response, got %+v", out)
	}
	if hooks.starts != 1 || hooks.stops != 1 {
		t.Fatalf("expected 1 start / 1 stop, got %d / %d", hooks.starts, hooks.stops)
	}
}

func TestUploadDoesNotUnwrapEnvelope(t *testing.T) {
	// Upload responses are handed back verbatim, so an envelope-shaped body
	// keeps its outer keys instead of being reduced to its data field.
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"stored","data":{"id":"img-2"}}`))
	})

	var out map[string]any
	if err := c.Upload(context.Background(), "/property-images", nil,
		"file", "a.png", strings.NewReader("png"), &out); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, ok := out["success"]; !ok {
		t.Fatalf("envelope was unwrapped: %v", out)
	}
}

func TestUploadFailureIsNormalized(t *testing.T) {
	c, hooks, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := c.Upload(context.Background(), "/property-images", nil,
		"file", "a.png", strings.NewReader("png"), nil)
	var uerr *Error
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if uerr.Message != msgForbidden {
		t.Fatalf("expected %q, got %q", msgForbidden, uerr.Message)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != msgForbidden {
		t.Fatalf("expected one error toast, got %v", notifier.errors)
	}
	if hooks.starts != 1 || hooks.stops != 1 {
		t.Fatalf("expected 1 start / 1 stop, got %d / %d", hooks.starts, hooks.stops)
	}
}
