package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/posts-gateway/telemetry"

	// HeaderTraceID carries the active trace id on every response.
	HeaderTraceID = "X-Trace-ID"

	// HeaderSpanID carries the server span id on every response.
	HeaderSpanID = "X-Span-ID"
)

// Metrics holds the HTTP server instruments.
type Metrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

// NewMetrics creates the server instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	var (
		m    Metrics
		errs [3]error
	)

	m.duration, errs[0] = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of inbound HTTP requests"), metric.WithUnit("s"))
	m.requests, errs[1] = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Inbound HTTP requests by route and status"))
	m.inFlight, errs[2] = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Inbound HTTP requests in flight"))

	if err := errors.Join(errs[:]...); err != nil {
		return nil, fmt.Errorf("creating server metrics: %w", err)
	}

	return &m, nil
}

// Tracing returns the otelgin middleware that opens the server span.
// It must run before Middleware so the span is in the request context.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// Middleware exposes the trace and span ids as response headers and log
// attributes, then records the request in the server metrics.
func Middleware() gin.HandlerFunc {
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()

		// Headers go out before the handler writes the body.
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			traceID, spanID := sc.TraceID().String(), sc.SpanID().String()

			c.Header(HeaderTraceID, traceID)
			c.Header(HeaderSpanID, spanID)

			ctx := logging.WithSpanID(logging.WithTraceID(c.Request.Context(), traceID), spanID)
			c.Request = c.Request.WithContext(ctx)
		}

		if metrics == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)

		metrics.inFlight.Add(ctx, 1, metric.WithAttributes(method, route))
		defer metrics.inFlight.Add(ctx, -1, metric.WithAttributes(method, route))

		c.Next()

		done := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
		metrics.duration.Record(ctx, time.Since(start).Seconds(), done)
		metrics.requests.Add(ctx, 1, done)
	}
}

// TraceID returns the trace id carried by the request context, or "".
func TraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}
