package fetch

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
)

// MockTransport is a configurable http.RoundTripper for testing. It stubs
// responses by matcher, records every request, and understands the
// decoder's content types via the StubJSON/StubText/StubBytes helpers.
//
//	mock := fetch.NewMockTransport().StubJSON(200, user)
//	client := fetch.New(fetch.WithTransport(mock))
type MockTransport struct {
	mu          sync.RWMutex
	stubs       []stub
	defaultResp *http.Response
	defaultErr  error
	requests    []*http.Request
}

type stub struct {
	matcher  func(*http.Request) bool
	response *http.Response
	err      error
}

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func stubResponse(statusCode int, contentType string, body []byte) *http.Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// StubResponse stubs all unmatched requests with the given status, content
// type, and body.
func (m *MockTransport) StubResponse(statusCode int, contentType, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResp = stubResponse(statusCode, contentType, []byte(body))
	return m
}

// StubJSON stubs all unmatched requests with the JSON encoding of v and
// Content-Type: application/json. Panics if v cannot be encoded; mock
// setup errors are programmer errors.
func (m *MockTransport) StubJSON(statusCode int, v any) *MockTransport {
	data, err := json.Marshal(v)
	if err != nil {
		panic("fetch: StubJSON: " + err.Error())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResp = stubResponse(statusCode, "application/json", data)
	return m
}

// StubText stubs all unmatched requests with a text/plain body.
func (m *MockTransport) StubText(statusCode int, body string) *MockTransport {
	return m.StubResponse(statusCode, "text/plain; charset=utf-8", body)
}

// StubBytes stubs all unmatched requests with an application/octet-stream
// body.
func (m *MockTransport) StubBytes(statusCode int, body []byte) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResp = stubResponse(statusCode, "application/octet-stream", body)
	return m
}

// StubError stubs all unmatched requests to fail with a transport-level
// error.
func (m *MockTransport) StubError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
	return m
}

// StubPath stubs requests whose URL path matches exactly.
func (m *MockTransport) StubPath(path string, statusCode int, contentType, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.URL.Path == path
	}, statusCode, contentType, body)
}

// StubMethod stubs requests with the given HTTP method.
func (m *MockTransport) StubMethod(method string, statusCode int, contentType, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.Method == method
	}, statusCode, contentType, body)
}

// StubFunc stubs requests matching the predicate. Stubs are checked in
// order; first match wins.
func (m *MockTransport) StubFunc(matcher func(*http.Request) bool, statusCode int, contentType, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{
		matcher:  matcher,
		response: stubResponse(statusCode, contentType, []byte(body)),
	})
	return m
}

// StubFuncError stubs requests matching the predicate to fail with a
// transport-level error.
func (m *MockTransport) StubFuncError(matcher func(*http.Request) bool, err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{matcher: matcher, err: err})
	return m
}

// RoundTrip implements http.RoundTripper. The write lock is held for the
// whole call: cloning resets the stubbed response body, so concurrent
// readers are not safe.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	for _, s := range m.stubs {
		if s.matcher(req) {
			if s.err != nil {
				return nil, s.err
			}
			return cloneResponse(s.response), nil
		}
	}

	if m.defaultErr != nil {
		return nil, m.defaultErr
	}
	if m.defaultResp != nil {
		return cloneResponse(m.defaultResp), nil
	}

	return nil, errors.New("fetch: no stub for request: " + req.Method + " " + req.URL.String())
}

// Requests returns a copy of all requests seen by this transport.
func (m *MockTransport) Requests() []*http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*http.Request{}, m.requests...)
}

// RequestCount returns the number of requests seen.
func (m *MockTransport) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or nil.
func (m *MockTransport) LastRequest() *http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Reset clears all stubs and recorded requests.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.stubs = nil
	m.defaultResp = nil
	m.defaultErr = nil
}

// cloneResponse copies a stubbed response so each request gets a fresh,
// independently readable body.
func cloneResponse(resp *http.Response) *http.Response {
	var bodyBytes []byte
	if resp.Body != nil {
		bodyBytes, _ = io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}

	return &http.Response{
		Status:        resp.Status,
		StatusCode:    resp.StatusCode,
		Header:        resp.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(bodyBytes)),
		ContentLength: resp.ContentLength,
		Request:       resp.Request,
	}
}
