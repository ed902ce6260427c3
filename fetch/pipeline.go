package fetch

import (
	"context"
	"time"
)

// Do executes one HTTP request end-to-end: it merges the configuration
// layers, invokes lifecycle hooks, performs the network call, classifies
// the outcome, decodes the body, and records one analytics observation.
//
// An empty method defaults to GET. The target URL is opaque to the
// pipeline; no validation is performed.
//
// Lifecycle for one call:
//
//  1. The client state snapshot is loaded once; a per-request Observer
//     supersedes the client-wide one wholesale, and later Configure or
//     SetObserver calls cannot affect this in-flight request.
//  2. Effective options are built: per-request options win on every field
//     except headers and query parameters, which merge key-by-key.
//  3. OnRequest fires, then the request is dispatched.
//  4. A transport-level error (DNS, connection, timeout) skips
//     classification and analytics and goes straight to OnError.
//  5. Every received response records exactly one analytics observation,
//     success or declared failure alike. The observation happens before
//     decoding, so a decode failure after a 2xx still counts as a success
//     in analytics.
//  6. Non-2xx responses return a *StatusError; 2xx responses fire
//     OnResponse and are decoded by content type.
//
// Every error — transport, declared failure, or decode — reaches OnError
// exactly once and is returned unchanged: no wrapping, no retries, no
// suppression. Repeated identical calls produce independent network calls
// and independent analytics observations; there is no coalescing or
// de-duplication.
func (c *Client) Do(ctx context.Context, method, target string, opts *RequestOptions) (*Response, error) {
	state := c.state.Load()
	observer := state.observer
	if opts != nil && opts.Observer != nil {
		observer = *opts.Observer
	}

	eff := mergeOptions(state.config, opts, method, target)

	if eff.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, eff.timeout)
		defer cancel()
	}

	req, err := eff.buildRequest(ctx)
	if err != nil {
		observer.failure(ctx, target, err)
		return nil, err
	}

	observer.request(ctx, req)

	if c.debug {
		logRequest(c.logger, req)
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failure: no response was received, so no
		// analytics observation is recorded.
		observer.failure(ctx, target, err)
		return nil, err
	}

	elapsed := time.Since(start)

	if c.debug {
		logResponse(c.logger, httpResp, elapsed)
	}

	c.analytics.Record(eff.method, httpResp.StatusCode, elapsed)

	resp := &Response{Response: httpResp}

	if !resp.IsSuccess() {
		statusErr := &StatusError{
			Status:     httpResp.StatusCode,
			StatusText: statusText(httpResp),
		}
		observer.failure(ctx, target, statusErr)
		return resp, statusErr
	}

	observer.response(ctx, httpResp)

	if err := resp.decode(eff.into, eff.decodePolicy); err != nil {
		observer.failure(ctx, target, err)
		return resp, err
	}

	return resp, nil
}

// Do executes a request on the package-level client. See (*Client).Do.
func Do(ctx context.Context, method, target string, opts *RequestOptions) (*Response, error) {
	return Default().Do(ctx, method, target, opts)
}
