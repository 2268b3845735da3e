package problem

import "fmt"

// MethodNotAllowedError reports a known route requested with an unsupported verb.
type MethodNotAllowedError struct {
	Method string
	Path   string
}

// Error implements the error interface.
func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("Request method '%s' is not supported", e.Method)
}

// RouteNotFoundError reports a request for a path no route serves.
type RouteNotFoundError struct {
	Method string
	Path   string
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("No endpoint %s %s", e.Method, e.Path)
}
