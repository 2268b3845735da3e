// Package problem turns every failure that reaches the HTTP edge into a
// dto.Problem response.
//
// Four kinds of failure are recognized, most specific first:
//
//   - *domain.Error: status, title and detail are taken from the error. A
//     status that is not a registered HTTP status becomes 500.
//   - *clients.StatusError: an upstream error response that reached the edge
//     unclassified. Status is carried over, title is "API Error Occurred".
//   - *MethodNotAllowedError: 405 "API Error Occurred".
//   - *RouteNotFoundError: 404 "Resource Not Found".
//   - anything else: 500 "Unexpected Error".
//
// Every translation is logged at ERROR twice: the error with its cause chain,
// then the rendered problem.
package problem
