// Package clients provides HTTP client adapters for upstream services.
package clients

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBodyBytes caps how much of an error response body is kept.
const maxErrorBodyBytes = 4 << 10

// ErrNoResponse wraps failures where the upstream produced no HTTP response:
// connection refused, DNS failure, timeout and the like.
// These are infrastructure failures; callers translate them into domain errors.
var ErrNoResponse = errors.New("upstream request failed")

// StatusError reports a non-2xx response returned by an upstream.
// It is distinct from domain errors: the ACL decides what it means.
type StatusError struct {
	StatusCode int
	// Status is the status line text, e.g. "404 Not Found".
	Status string
	// Body holds the start of the response body.
	Body   string
	Method string
	URL    string
}

// NewStatusError builds a StatusError from resp and drains a bounded prefix
// of its body. The caller still owns closing resp.Body.
func NewStatusError(resp *http.Response) *StatusError {
	e := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	if e.Status == "" {
		e.Status = strings.TrimSpace(fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	if resp.Request != nil {
		e.Method = resp.Request.Method
		e.URL = resp.Request.URL.String()
	}

	if resp.Body != nil {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		e.Body = strings.TrimSpace(string(body))
	}

	return e
}

// Error renders the status line followed by the quoted body,
// e.g. `404 Not Found: "{}"`.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: \"%s\"", e.Status, e.Body)
}

// IsClientError reports a 4xx status.
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// IsServerError reports a 5xx status.
func (e *StatusError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError && e.StatusCode < 600
}

// AsStatusError extracts a StatusError from anywhere in the error chain.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
