package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestOptions carries per-call overrides for a single request. A nil
// *RequestOptions is equivalent to the zero value. Options are constructed
// fresh per call and never persisted by the client.
//
// Merge semantics against the client Config: per-request values win on
// every top-level field, except Header and Query which merge key-by-key
// onto the configured defaults (per-request keys win).
type RequestOptions struct {
	// Header holds per-request headers, overriding configured defaults
	// key-by-key.
	Header http.Header

	// Query holds per-request query parameters, overriding configured
	// defaults key-by-key.
	Query url.Values

	// Body is the request body. The body-bearing façade methods (Post,
	// Put, Patch) populate this from their payload argument; setting it
	// directly bypasses JSON encoding.
	Body io.Reader

	// Observer, when non-nil, entirely supersedes the client-wide
	// observer for this single request.
	Observer *Observer

	// Into, when non-nil, is the decode target for JSON responses.
	Into any

	// Timeout overrides the configured per-request timeout.
	Timeout time.Duration

	// DecodePolicy overrides the configured policy for unrecognized
	// response content types.
	DecodePolicy DecodePolicy
}

// clone returns a shallow copy with its own non-nil header map, so the
// façade can inject headers without mutating the caller's options.
func (o *RequestOptions) clone() *RequestOptions {
	out := &RequestOptions{}
	if o != nil {
		*out = *o
	}
	out.Header = mergeHeaders(nil, out.Header)
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	return out
}

// effectiveOptions is the fully merged configuration used for one network
// call: client defaults overlaid with per-request options.
type effectiveOptions struct {
	method       string
	url          string
	header       http.Header
	query        url.Values
	body         io.Reader
	timeout      time.Duration
	into         any
	decodePolicy DecodePolicy
}

// mergeOptions builds the effective options for one call. Method defaults
// to GET when unspecified anywhere.
func mergeOptions(cfg Config, opts *RequestOptions, method, target string) effectiveOptions {
	if opts == nil {
		opts = &RequestOptions{}
	}
	if method == "" {
		method = http.MethodGet
	}

	eff := effectiveOptions{
		method:       method,
		url:          resolveURL(cfg.BaseURL, target),
		header:       mergeHeaders(cfg.Header, opts.Header),
		query:        mergeValues(cfg.Query, opts.Query),
		body:         opts.Body,
		timeout:      cfg.Timeout,
		into:         opts.Into,
		decodePolicy: cfg.DecodePolicy,
	}
	if opts.Timeout != 0 {
		eff.timeout = opts.Timeout
	}
	if opts.DecodePolicy != DecodeDefault {
		eff.decodePolicy = opts.DecodePolicy
	}
	if eff.decodePolicy == DecodeDefault {
		eff.decodePolicy = DecodeStrict
	}
	if eff.header == nil {
		eff.header = make(http.Header)
	}
	if cfg.UserAgent != "" && eff.header.Get("User-Agent") == "" {
		eff.header.Set("User-Agent", cfg.UserAgent)
	}
	return eff
}

// resolveURL prefixes the configured base URL onto targets that do not
// carry their own scheme. Target URLs are otherwise opaque to the pipeline;
// no validation is performed.
func resolveURL(baseURL, target string) string {
	if baseURL == "" || strings.Contains(target, "://") {
		return target
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(target, "/")
}

// buildRequest materializes the effective options into an *http.Request.
func (eff *effectiveOptions) buildRequest(ctx context.Context) (*http.Request, error) {
	target := eff.url
	if len(eff.query) > 0 {
		u, err := url.Parse(target)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		for k, vs := range eff.query {
			q[k] = vs
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, eff.method, target, eff.body)
	if err != nil {
		return nil, err
	}
	// Copied slices: hooks may mutate the request header without aliasing
	// the merged options.
	for k, vs := range eff.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}
