// Package fetch is a thin convenience wrapper around net/http. It adds
// method shortcuts, layered configuration merging, pluggable lifecycle
// observers, content-type based response decoding, and in-process
// analytics counters.
//
// It deliberately contains no retry engine, no circuit breaker, and no
// request coalescing: one call is one network request. Callers wanting
// resilience wrap the client externally.
//
// # Quick Start
//
// The package-level functions use a shared default client:
//
//	fetch.Configure(fetch.Config{
//	    BaseURL: "https://api.example.com",
//	    Header:  http.Header{"Authorization": {"Bearer " + token}},
//	})
//
//	user, err := fetch.Get[User](ctx, "/users/1", nil)
//
// Or construct a client explicitly:
//
//	client := fetch.New(
//	    fetch.WithBaseURL("https://api.example.com"),
//	    fetch.WithTimeout(10*time.Second),
//	)
//	resp, err := client.Get(ctx, "/users", nil)
//
// # Configuration Layers
//
// Every request merges two layers: the client's Config snapshot and the
// per-call RequestOptions. Per-request values win on every field except
// headers and query parameters, which merge key-by-key. Configure never
// mutates the current snapshot; it publishes a new one, so in-flight
// requests are unaffected.
//
// # Lifecycle Observers
//
// An Observer carries up to three optional hooks, fired in a fixed order
// for each request:
//
//	OnRequest -> (dispatch) -> OnResponse or OnError
//
// OnResponse fires for 2xx responses, OnError for failures; when a 2xx
// body fails to decode, OnResponse fires first and OnError follows with
// the decode error. A per-request
// observer fully replaces the client-wide one for that call. Built-in
// observers cover structured logging (LoggingObserver) and request-ID
// injection (CorrelationObserver); combine them with ChainObservers.
//
// # Response Decoding
//
// Successful responses are decoded by declared content type, first match
// wins: application/json (into any or the Into target), text/* (string),
// application/octet-stream ([]byte), application/blob (*Blob). Unrecognized
// types fail under DecodeStrict (the default) or decode to nil under
// DecodeLenient.
//
// # Errors
//
// A non-2xx response yields a *StatusError with the fixed message
//
//	fetch: Request failed with status {status}: {statusText}
//
// and an unrecognized content type a *ContentTypeError with
//
//	fetch: Unsupported response content type: {contentType}
//
// Errors pass through the observer's OnError hook exactly once and reach
// the caller unchanged: no wrapping, no swallowing, no retries.
//
// # Analytics
//
// Each client owns an Analytics accumulator recording one observation per
// received response: per-method counts, per-status failure counts, and
// latency statistics. Snapshot returns immutable copies; Reset zeroes the
// state. Observations can additionally be mirrored to OpenTelemetry
// metrics (WithMeterProvider) or scraped via a Prometheus collector
// (Analytics.Collector).
//
// # Testing
//
// MockTransport stubs responses by path, method, or predicate and records
// every request:
//
//	mock := fetch.NewMockTransport().StubJSON(200, user)
//	client := fetch.New(fetch.WithTransport(mock))
package fetch
