// Package metrics defines and registers all custom Prometheus metrics for
// the real-estate admin gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metric variables register themselves with the default registry at init
// time; the router exposes them on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realestate_gateway"

// ── Upstream request metrics ─────────────────────────────────────────────────

// UpstreamInFlight tracks outbound requests currently awaiting a response.
// This is the server-side rendition of the dashboard's global loading
// indicator: advisory, not a correctness signal.
var UpstreamInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "upstream_in_flight_requests",
		Help:      "Number of upstream API requests currently in flight.",
	},
)

// UpstreamRequestDuration measures upstream call latency end-to-end.
// Labels:
//   - method: HTTP method of the outbound request
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream API requests from dispatch to settle.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// UpstreamErrorsTotal counts settled upstream requests that did not return a
// 2xx, labelled by status class ("4xx", "5xx", "network").
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total upstream API failures by status class.",
	},
	[]string{"class"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts through the gateway.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total login attempts, by result.",
	},
	[]string{"result"},
)

// GuestTokensIssuedTotal counts fresh guest tokens fetched for the public
// certificate view. Cache hits do not increment it.
var GuestTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guest_tokens_issued_total",
		Help:      "Total guest tokens fetched from the upstream anonymous endpoint.",
	},
)

// ── Access-layer adapters ────────────────────────────────────────────────────

// LoadingHooks adapts the in-flight gauge to the access layer's start/stop
// loading callbacks.
type LoadingHooks struct{}

func (LoadingHooks) Start() { UpstreamInFlight.Inc() }
func (LoadingHooks) Stop()  { UpstreamInFlight.Dec() }

// RequestObserver records per-request latency and failures.
type RequestObserver struct{}

func (RequestObserver) Observe(method string, status int, elapsed time.Duration) {
	UpstreamRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())

	switch {
	case status == 0:
		UpstreamErrorsTotal.WithLabelValues("network").Inc()
	case status >= 500:
		UpstreamErrorsTotal.WithLabelValues("5xx").Inc()
	case status >= 400:
		UpstreamErrorsTotal.WithLabelValues("4xx").Inc()
	}
}
