package fetch

import (
	"context"
	"sync"
	"time"
)

// Analytics accumulates per-client request counters. One observation is
// recorded for every received response, success or declared failure alike;
// transport-level errors (no response) are never observed.
//
// Observations are recorded when the response arrives, before the body is
// decoded. A decode failure after a 2xx response therefore counts as a
// success here even though the caller ultimately receives an error.
//
// The full latency list is retained for the lifetime of the accumulator
// and the mean is recomputed on every observation. This is a known scaling
// limit for very long-lived processes; call Reset to reclaim the list.
//
// Analytics is safe for concurrent use.
type Analytics struct {
	mu         sync.Mutex
	methods    map[string]int64
	errorCodes map[int]int64
	total      int64
	succeeded  int64
	failed     int64
	latencies  []time.Duration
	mean       time.Duration

	otel *otelInstruments
}

// AnalyticsSnapshot is an immutable copy of the counters at one point in
// time. The maps and slice are deep copies; mutating them does not affect
// the live accumulator.
//
// Invariants, once any observation has been recorded:
//
//	TotalRequests == SuccessfulRequests + FailedRequests
//	sum(RequestMethods) == TotalRequests
//	sum(ErrorCodes)     == FailedRequests
type AnalyticsSnapshot struct {
	// TotalRequests counts all observations.
	TotalRequests int64

	// SuccessfulRequests counts observations with a 2xx status.
	SuccessfulRequests int64

	// FailedRequests counts observations with a non-2xx status.
	FailedRequests int64

	// RequestMethods maps HTTP method to observation count.
	RequestMethods map[string]int64

	// ErrorCodes maps non-2xx status code to observation count.
	ErrorCodes map[int]int64

	// Latencies lists every observed response latency in order.
	Latencies []time.Duration

	// AverageLatency is the arithmetic mean of Latencies, zero when no
	// observations have been recorded.
	AverageLatency time.Duration
}

// AnalyticsOption configures an Analytics accumulator.
type AnalyticsOption func(*Analytics)

// NewAnalytics creates a zeroed accumulator.
func NewAnalytics(opts ...AnalyticsOption) *Analytics {
	a := &Analytics{
		methods:    make(map[string]int64),
		errorCodes: make(map[int]int64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Record registers one completed request attempt. All counters update
// under a single lock, so concurrent snapshots never observe a torn
// update.
func (a *Analytics) Record(method string, statusCode int, elapsed time.Duration) {
	if a == nil {
		return
	}

	a.mu.Lock()
	a.total++
	a.methods[method]++
	success := statusCode >= 200 && statusCode < 300
	if success {
		a.succeeded++
	} else {
		a.failed++
		a.errorCodes[statusCode]++
	}
	a.latencies = append(a.latencies, elapsed)

	// Recomputed from the full list per observation; see the type doc
	// for the growth limit.
	var sum time.Duration
	for _, l := range a.latencies {
		sum += l
	}
	a.mean = sum / time.Duration(len(a.latencies))
	a.mu.Unlock()

	a.otel.record(context.Background(), method, statusCode, elapsed)
}

// Snapshot returns an immutable copy of the current counters, never the
// live structures.
func (a *Analytics) Snapshot() AnalyticsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := AnalyticsSnapshot{
		TotalRequests:      a.total,
		SuccessfulRequests: a.succeeded,
		FailedRequests:     a.failed,
		RequestMethods:     make(map[string]int64, len(a.methods)),
		ErrorCodes:         make(map[int]int64, len(a.errorCodes)),
		Latencies:          append([]time.Duration(nil), a.latencies...),
		AverageLatency:     a.mean,
	}
	for k, v := range a.methods {
		snap.RequestMethods[k] = v
	}
	for k, v := range a.errorCodes {
		snap.ErrorCodes[k] = v
	}
	return snap
}

// Reset zeroes all counters and clears the latency list.
func (a *Analytics) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.methods = make(map[string]int64)
	a.errorCodes = make(map[int]int64)
	a.total = 0
	a.succeeded = 0
	a.failed = 0
	a.latencies = nil
	a.mean = 0
}
