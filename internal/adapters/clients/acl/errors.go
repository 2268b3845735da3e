package acl

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients"
)

// ErrEmptyBody is returned when a successful response has no body or a JSON null body.
var ErrEmptyBody = errors.New("empty response body")

// failureClass groups fetch failures by how the ACL must react to them.
type failureClass int

const (
	// failureUnexpected covers transport errors, timeouts and undecodable bodies.
	failureUnexpected failureClass = iota

	// failureNotFound is an upstream 404.
	failureNotFound

	// failureUpstream is any other 4xx or 5xx.
	failureUpstream

	// failureUnexpectedStatus is a 1xx or 3xx that reached the caller.
	failureUnexpectedStatus

	// failureEmptyBody is a 2xx without a usable body.
	failureEmptyBody
)

func (f failureClass) String() string {
	switch f {
	case failureNotFound:
		return "not_found"
	case failureUpstream:
		return "upstream_error"
	case failureUnexpectedStatus:
		return "unexpected_status"
	case failureEmptyBody:
		return "empty_body"
	default:
		return "unexpected"
	}
}

// classify maps a Fetch or decode error onto a failure class.
// The StatusError is returned when err carries one.
func classify(err error) (failureClass, *clients.StatusError) {
	if errors.Is(err, ErrEmptyBody) {
		return failureEmptyBody, nil
	}

	statusErr, ok := clients.AsStatusError(err)
	if !ok {
		return failureUnexpected, nil
	}

	switch {
	case statusErr.StatusCode == http.StatusNotFound:
		return failureNotFound, statusErr
	case statusErr.IsClientError(), statusErr.IsServerError():
		return failureUpstream, statusErr
	default:
		return failureUnexpectedStatus, statusErr
	}
}
