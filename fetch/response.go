package fetch

import (
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// DecodePolicy controls how the decoder treats a response whose declared
// content type matches no known decode strategy.
type DecodePolicy int

const (
	// DecodeDefault inherits the policy from the client configuration.
	// The zero configuration resolves to DecodeStrict.
	DecodeDefault DecodePolicy = iota

	// DecodeStrict fails with a *ContentTypeError on unrecognized
	// content types.
	DecodeStrict

	// DecodeLenient leaves the decoded value nil on unrecognized
	// content types instead of failing.
	DecodeLenient
)

// Blob is an opaque handle for an "application/blob" response body.
// It pairs the raw bytes with the declared content type.
type Blob struct {
	ContentType string
	Data        []byte
}

// Response wraps http.Response with cached body reading and the decoded
// value produced by the content-type decoder.
//
// The body is read at most once; Bytes, Text and the decoder all share the
// same cached copy.
type Response struct {
	// Response embeds the standard http.Response.
	// All http.Response fields remain accessible, e.g. resp.StatusCode.
	*http.Response

	// body is the cached response body, populated on first read.
	body     []byte
	bodyRead bool

	// value is the decoded body: the Into target for JSON, a string for
	// text/*, []byte for application/octet-stream, or *Blob for
	// application/blob. Nil for empty bodies and under DecodeLenient
	// when no strategy matched.
	value any
}

// Bytes returns the response body, reading and caching it on first access.
// Subsequent calls return the cached copy.
func (r *Response) Bytes() ([]byte, error) {
	if r.bodyRead {
		return r.body, nil
	}
	if r.Response.Body == nil {
		r.bodyRead = true
		return nil, nil
	}

	defer r.Response.Body.Close()
	body, err := io.ReadAll(r.Response.Body)
	if err != nil {
		return nil, err
	}

	r.body = body
	r.bodyRead = true
	return r.body, nil
}

// Text returns the response body as a string.
func (r *Response) Text() (string, error) {
	body, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Value returns the decoded response body. See the field doc on value for
// the possible dynamic types.
func (r *Response) Value() any {
	return r.value
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports whether the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// decodeStrategy pairs a content-type predicate with a decode function.
// Strategies are evaluated in order; the first match wins. New content
// types slot in by appending to decodeStrategies.
type decodeStrategy struct {
	match  func(contentType string) bool
	decode func(r *Response, body []byte, into any) error
}

var decodeStrategies = []decodeStrategy{
	{
		match: func(ct string) bool { return strings.Contains(ct, "application/json") },
		decode: func(r *Response, body []byte, into any) error {
			if into == nil {
				var v any
				if err := json.Unmarshal(body, &v); err != nil {
					return err
				}
				r.value = v
				return nil
			}
			if err := json.Unmarshal(body, into); err != nil {
				return err
			}
			r.value = into
			return nil
		},
	},
	{
		match: func(ct string) bool { return strings.HasPrefix(ct, "text/") },
		decode: func(r *Response, body []byte, _ any) error {
			r.value = string(body)
			return nil
		},
	},
	{
		match: func(ct string) bool { return strings.Contains(ct, "application/octet-stream") },
		decode: func(r *Response, body []byte, _ any) error {
			r.value = body
			return nil
		},
	},
	{
		match: func(ct string) bool { return strings.Contains(ct, "application/blob") },
		decode: func(r *Response, body []byte, _ any) error {
			r.value = &Blob{ContentType: r.Header.Get("Content-Type"), Data: body}
			return nil
		},
	},
}

// decode consumes the body exactly once and applies the first matching
// strategy. Empty bodies (HEAD, 204) are skipped entirely and leave the
// value nil. Runs at most once per response.
func (r *Response) decode(into any, policy DecodePolicy) error {
	body, err := r.Bytes()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}

	contentType := r.Header.Get("Content-Type")
	for _, s := range decodeStrategies {
		if s.match(contentType) {
			return s.decode(r, body, into)
		}
	}

	if policy == DecodeLenient {
		return nil
	}
	return &ContentTypeError{ContentType: contentType}
}
