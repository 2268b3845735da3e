package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/posts-gateway/internal/platform/config"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/posts-gateway/internal/adapters/clients"

// Fallbacks for zero Config values.
const (
	defaultTimeout             = 10 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Config configures a Client. New copies it.
type Config struct {
	// BaseURL is the collection endpoint request paths are appended to,
	// e.g. https://jsonplaceholder.typicode.com/posts.
	BaseURL string

	// ServiceName names the upstream in logs, spans and metrics.
	ServiceName string

	// Timeout bounds each call from dial to the last body byte.
	Timeout time.Duration

	Transport config.TransportConfig

	// HeaderFunc adds headers derived from the request context, such as
	// the inbound request and correlation ids.
	HeaderFunc func(ctx context.Context, h http.Header)

	Logger *slog.Logger
}

// Client calls one upstream endpoint with tracing, metrics and logging.
// It never retries and is shared by all requests.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	headerFunc  func(ctx context.Context, h http.Header)
	logger      *slog.Logger
	inst        *instruments
}

type instruments struct {
	tracer   trace.Tracer
	duration metric.Float64Histogram
	requests metric.Int64Counter
}

func newInstruments() (*instruments, error) {
	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of upstream HTTP requests"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	requests, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Upstream HTTP requests by outcome"))
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &instruments{tracer: otel.Tracer(instrumentationName), duration: duration, requests: requests}, nil
}

// New validates cfg and builds a client with its own connection pool.
func New(cfg *Config) (*Client, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case cfg.ServiceName == "":
		return nil, errors.New("service name is required")
	}

	if base, err := url.Parse(cfg.BaseURL); err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	inst, err := newInstruments()
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:        &http.Client{Timeout: timeout, Transport: newTransport(cfg.Transport)},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		headerFunc:  cfg.HeaderFunc,
		logger:      withClientAttrs(logger, cfg.ServiceName),
		inst:        inst,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        positiveOr(cfg.MaxIdleConns, defaultMaxIdleConns),
		MaxIdleConnsPerHost: positiveOr(cfg.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost),
		IdleConnTimeout:     positiveOr(cfg.IdleConnTimeout, defaultIdleConnTimeout),
	}
}

func positiveOr[T int | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}

func withClientAttrs(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String("component", "clients.Client"), slog.String("upstream", service))
}

// ServiceName returns the upstream name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// BaseURL returns the endpoint requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the response whatever its status; callers
// classify non-2xx. A failure to get any response wraps ErrNoResponse.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.headerFunc != nil {
		c.headerFunc(ctx, req.Header)
	}

	ctx, span := c.inst.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		))
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	logger := c.loggerFor(ctx).With(slog.String("method", req.Method), slog.String("url", req.URL.String()))
	logger.InfoContext(ctx, "calling upstream")

	start := time.Now()
	resp, err := c.http.Do(req.WithContext(ctx))
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.observe(ctx, req.Method, 0, elapsed)
		logger.DebugContext(ctx, "upstream call failed", slog.Duration("duration", elapsed), slog.Any("error", err))

		return nil, fmt.Errorf("%w: %w", ErrNoResponse, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.observe(ctx, req.Method, resp.StatusCode, elapsed)
	logger.DebugContext(ctx, "upstream responded", slog.Int("status", resp.StatusCode), slog.Duration("duration", elapsed))

	return resp, nil
}

// Get sends a GET to path under the base URL. An empty path targets the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.GetWithQuery(ctx, path, nil)
}

// GetWithQuery is Get with query parameters, encoded in sorted key order.
func (c *Client) GetWithQuery(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.buildURL(path)
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

func (c *Client) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return withClientAttrs(logger, c.serviceName)
	}
	return c.logger
}

func (c *Client) buildURL(path string) string {
	switch {
	case path == "":
		return c.baseURL
	case strings.HasPrefix(path, "/"):
		return c.baseURL + path
	default:
		return c.baseURL + "/" + path
	}
}

// observe records one call. A zero status means no response arrived.
func (c *Client) observe(ctx context.Context, method string, status int, elapsed time.Duration) {
	result := "error"
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
	}

	if status > 0 {
		result = strconv.Itoa(status/100) + "xx"
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}
	attrs = append(attrs, attribute.String("result", result))

	opt := metric.WithAttributes(attrs...)
	c.inst.duration.Record(ctx, elapsed.Seconds(), opt)
	c.inst.requests.Add(ctx, 1, opt)
}
