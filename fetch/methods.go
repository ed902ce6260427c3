package fetch

import (
	"bytes"
	"context"
	"net/http"

	json "github.com/goccy/go-json"
)

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, opts)
}

// Head executes a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodHead, url, opts)
}

// Options executes an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodOptions, url, opts)
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, url, opts)
}

// Post executes a POST request. The payload is JSON-encoded into the body
// and Content-Type: application/json is injected unless the per-request
// headers already carry one.
func (c *Client) Post(ctx context.Context, url string, payload any, opts *RequestOptions) (*Response, error) {
	return c.send(ctx, http.MethodPost, url, payload, opts)
}

// Put executes a PUT request with a JSON-encoded payload. See Post.
func (c *Client) Put(ctx context.Context, url string, payload any, opts *RequestOptions) (*Response, error) {
	return c.send(ctx, http.MethodPut, url, payload, opts)
}

// Patch executes a PATCH request with a JSON-encoded payload. See Post.
func (c *Client) Patch(ctx context.Context, url string, payload any, opts *RequestOptions) (*Response, error) {
	return c.send(ctx, http.MethodPatch, url, payload, opts)
}

// send JSON-encodes the payload and delegates to the pipeline. An explicit
// per-request Content-Type wins over the injected one; the injection never
// looks at client-wide default headers, only at the single call's options.
func (c *Client) send(ctx context.Context, method, url string, payload any, opts *RequestOptions) (*Response, error) {
	opts = opts.clone()
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		opts.Body = bytes.NewReader(data)
	}
	if opts.Header.Get("Content-Type") == "" {
		opts.Header.Set("Content-Type", "application/json")
	}
	return c.Do(ctx, method, url, opts)
}

// Typed convenience functions on the package-level client. Each decodes the
// response into a T: JSON responses unmarshal into T, text responses
// require T to be string, octet-stream responses []byte, and blob
// responses *Blob. Any Into target in opts is ignored here.

// Get executes a GET on the package-level client and returns the decoded T.
func Get[T any](ctx context.Context, url string, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodGet, url, nil, false, opts)
}

// Head executes a HEAD on the package-level client. HEAD responses carry no
// body, so the returned T is its zero value.
func Head[T any](ctx context.Context, url string, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodHead, url, nil, false, opts)
}

// Options executes an OPTIONS on the package-level client and returns the
// decoded T.
func Options[T any](ctx context.Context, url string, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodOptions, url, nil, false, opts)
}

// Delete executes a DELETE on the package-level client and returns the
// decoded T.
func Delete[T any](ctx context.Context, url string, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodDelete, url, nil, false, opts)
}

// Post executes a POST on the package-level client with a JSON-encoded
// payload and returns the decoded T.
func Post[T any](ctx context.Context, url string, payload any, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodPost, url, payload, true, opts)
}

// Put executes a PUT on the package-level client with a JSON-encoded
// payload and returns the decoded T.
func Put[T any](ctx context.Context, url string, payload any, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodPut, url, payload, true, opts)
}

// Patch executes a PATCH on the package-level client with a JSON-encoded
// payload and returns the decoded T.
func Patch[T any](ctx context.Context, url string, payload any, opts *RequestOptions) (T, error) {
	return typed[T](ctx, http.MethodPatch, url, payload, true, opts)
}

func typed[T any](ctx context.Context, method, url string, payload any, hasBody bool, opts *RequestOptions) (T, error) {
	var out T

	opts = opts.clone()
	opts.Into = &out

	c := Default()
	var (
		resp *Response
		err  error
	)
	if hasBody {
		resp, err = c.send(ctx, method, url, payload, opts)
	} else {
		resp, err = c.Do(ctx, method, url, opts)
	}
	if err != nil {
		return out, err
	}

	// Non-JSON strategies decode to a fixed dynamic type; surface it when
	// it matches T. JSON decodes straight into out via Into.
	if v, ok := resp.Value().(T); ok {
		return v, nil
	}
	return out, nil
}
