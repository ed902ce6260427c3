package fetch

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError is returned when a response is received but its status code
// falls outside the 2xx success range (a declared failure).
//
// The message format is fixed and matched on by dependents:
//
//	fetch: Request failed with status 404: Not Found
//
// Use errors.As to recover the status code:
//
//	var statusErr *fetch.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println(statusErr.Status)
//	}
type StatusError struct {
	// Status is the numeric HTTP status code.
	Status int

	// StatusText is the reason phrase reported by the server,
	// e.g. "Not Found".
	StatusText string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: Request failed with status %d: %s", e.Status, e.StatusText)
}

// ContentTypeError is returned under DecodeStrict when a successful response
// declares a content type the decoder does not recognize.
//
// The message format is fixed and matched on by dependents:
//
//	fetch: Unsupported response content type: text/csv
type ContentTypeError struct {
	// ContentType is the declared Content-Type of the response.
	ContentType string
}

// Error implements error.
func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("fetch: Unsupported response content type: %s", e.ContentType)
}

// statusText extracts the reason phrase from a response. The standard
// library formats Status as "404 Not Found"; mock transports sometimes set
// only the phrase. Falls back to http.StatusText for bare status codes.
func statusText(resp *http.Response) string {
	s := resp.Status
	if prefix := strconv.Itoa(resp.StatusCode) + " "; strings.HasPrefix(s, prefix) {
		s = strings.TrimPrefix(s, prefix)
	}
	if s == "" {
		s = http.StatusText(resp.StatusCode)
	}
	return s
}
