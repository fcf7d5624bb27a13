package ports

import "time"

// LoadingHooks is the pair of callbacks driving the global loading signal.
// The access layer guarantees Start is invoked exactly once before a request
// is dispatched and Stop exactly once after it settles, success or failure.
// Requests that fail before dispatch never touch the hooks.
type LoadingHooks interface {
	Start()
	Stop()
}

// RequestMetrics observes one settled upstream request. Status is zero when
// no response was received.
type RequestMetrics interface {
	Observe(method string, status int, elapsed time.Duration)
}
