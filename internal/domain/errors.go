// Package domain contains business logic types and errors.
// Domain errors carry the status, title and detail a caller should see, but
// they are not HTTP responses: the HTTP adapter decides how to render them.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Titles used by the upstream failure classes.
const (
	TitleNotFound         = "Resource Not Found"
	TitleExternalAPIError = "External API Error"
	TitleInternalError    = "Internal Server Error"
	TitleInvalidRequest   = "Invalid Request"
)

// Error is a structured failure raised when a business or integration rule
// fails. StatusCode is caller-supplied and is not validated here; the HTTP
// translator falls back to 500 when it is not a registered status.
//
// Values are read-only once constructed.
type Error struct {
	StatusCode int
	Title      string
	Detail     string
	Cause      error
}

// NewError creates a domain error without an underlying cause.
func NewError(detail, title string, statusCode int) *Error {
	return &Error{
		StatusCode: statusCode,
		Title:      title,
		Detail:     detail,
	}
}

// NewErrorWithCause creates a domain error wrapping the failure that caused it.
func NewErrorWithCause(detail, title string, statusCode int, cause error) *Error {
	return &Error{
		StatusCode: statusCode,
		Title:      title,
		Detail:     detail,
		Cause:      cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Detail
}

// Unwrap returns the cause for errors.Is() and errors.As() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFoundError reports a primary resource the upstream does not have.
func NewNotFoundError(entity, id string) *Error {
	return NewError(
		fmt.Sprintf("Cannot find a %s with id %s", entity, id),
		TitleNotFound,
		http.StatusNotFound,
	)
}

// NewExternalAPIError reports an upstream error response, keeping its status.
func NewExternalAPIError(detail string, statusCode int, cause error) *Error {
	return NewErrorWithCause(detail, TitleExternalAPIError, statusCode, cause)
}

// NewInternalError reports a failure that could not be classified further.
func NewInternalError(detail string, cause error) *Error {
	return NewErrorWithCause(detail, TitleInternalError, http.StatusInternalServerError, cause)
}

// NewBadRequestError reports a request rejected before reaching the upstream.
func NewBadRequestError(detail string) *Error {
	return NewError(detail, TitleInvalidRequest, http.StatusBadRequest)
}

// AsError extracts a domain error from anywhere in the error chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}

	return nil, false
}

// IsNotFound checks if an error is a domain error with status 404.
func IsNotFound(err error) bool {
	return StatusCodeOf(err) == http.StatusNotFound
}

// StatusCodeOf returns the status code of a domain error, or 0 if err is not one.
func StatusCodeOf(err error) int {
	if domainErr, ok := AsError(err); ok {
		return domainErr.StatusCode
	}

	return 0
}
