// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"strconv"
	"strings"
)

// ContentTypeProblem is the media type of every error response.
const ContentTypeProblem = "application/problem+json"

// DefaultProblemType is used when a problem carries no more specific type URI.
const DefaultProblemType = "about:blank"

// Problem is the error body returned for every failed request.
// Status is always a registered HTTP status code.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`

	// TraceID correlates the response with server-side traces and logs.
	TraceID string `json:"traceId,omitempty"`
}

// NewProblem creates a problem with the default type.
func NewProblem(status int, title, detail string) *Problem {
	return &Problem{
		Type:   DefaultProblemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// WithInstance sets the URI identifying this occurrence of the problem.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

// WithTraceID adds a trace ID to the problem.
func (p *Problem) WithTraceID(traceID string) *Problem {
	p.TraceID = traceID
	return p
}

// String renders the multi-line form written to the error log.
// The Instance line is present only when an instance is set.
func (p *Problem) String() string {
	var sb strings.Builder

	sb.WriteString("Problem Detail:\n")
	sb.WriteString("Status: " + strconv.Itoa(p.Status) + "\n")
	sb.WriteString("Title: " + p.Title + "\n")
	sb.WriteString("Detail: " + p.Detail + "\n")
	sb.WriteString("Type: " + p.Type + "\n")

	if p.Instance != "" {
		sb.WriteString("Instance: " + p.Instance + "\n")
	}

	return sb.String()
}
