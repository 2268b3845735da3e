package problem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/posts-gateway/internal/domain"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
	"github.com/jsamuelsen/posts-gateway/internal/platform/telemetry"
)

// Titles and details used when the error does not supply its own.
const (
	TitleDefault    = "API Error Occurred"
	TitleUnexpected = "Unexpected Error"
	DetailDefault   = "API Error occurred. Please contact support or administrator."
)

// Config configures a Translator.
type Config struct {
	// Logger is used when the request context carries no logger.
	Logger *slog.Logger

	// Registerer receives the problem response counter.
	// Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Translator maps errors to problem responses. It is safe for concurrent use.
type Translator struct {
	logger    *slog.Logger
	responses *prometheus.CounterVec
}

// NewTranslator creates a translator.
func NewTranslator(cfg Config) *Translator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Translator{
		logger:    logger.With(slog.String("component", "problem.Translator")),
		responses: responsesMetric(reg),
	}
}

// Translate dispatches err to the most specific translation.
func (t *Translator) Translate(ctx context.Context, err error) *dto.Problem {
	p, msg := t.build(ctx, err)
	t.report(ctx, msg, err, p)

	return p
}

// TranslateStatusError translates an upstream error response.
func (t *Translator) TranslateStatusError(ctx context.Context, err *clients.StatusError) *dto.Problem {
	p := statusErrorProblem(err)
	t.report(ctx, "upstream error response reached the edge", err, p)

	return p
}

// TranslateDomainError translates a domain error.
func (t *Translator) TranslateDomainError(ctx context.Context, err *domain.Error) *dto.Problem {
	p := t.domainErrorProblem(ctx, err)
	t.report(ctx, "domain error occurred", err, p)

	return p
}

// TranslateMethodNotAllowed translates an unsupported verb on a known route.
func (t *Translator) TranslateMethodNotAllowed(ctx context.Context, err *MethodNotAllowedError) *dto.Problem {
	p := methodNotAllowedProblem(err)
	t.report(ctx, "unhandled error occurred", err, p)

	return p
}

// TranslateUnexpected translates any other error.
func (t *Translator) TranslateUnexpected(ctx context.Context, err error) *dto.Problem {
	p := unexpectedProblem(err)
	t.report(ctx, "unhandled error occurred", err, p)

	return p
}

// Respond translates err, writes it as application/problem+json and aborts the chain.
// The problem carries the request path as instance and the active trace id.
func (t *Translator) Respond(c *gin.Context, err error) {
	ctx := c.Request.Context()

	p, msg := t.build(ctx, err)
	p.WithInstance(c.Request.URL.Path).WithTraceID(telemetry.TraceID(c))

	t.report(ctx, msg, err, p)

	c.Header("Content-Type", dto.ContentTypeProblem)
	c.AbortWithStatusJSON(p.Status, p)
}

// build picks the translation for err without reporting it.
func (t *Translator) build(ctx context.Context, err error) (*dto.Problem, string) {
	var (
		domainErr     *domain.Error
		statusErr     *clients.StatusError
		notAllowedErr *MethodNotAllowedError
		routeNotFound *RouteNotFoundError
	)

	switch {
	case errors.As(err, &domainErr):
		return t.domainErrorProblem(ctx, domainErr), "domain error occurred"
	case errors.As(err, &statusErr):
		return statusErrorProblem(statusErr), "upstream error response reached the edge"
	case errors.As(err, &notAllowedErr):
		return methodNotAllowedProblem(notAllowedErr), "unhandled error occurred"
	case errors.As(err, &routeNotFound):
		return dto.NewProblem(http.StatusNotFound, domain.TitleNotFound, routeNotFound.Error()), "route not found"
	default:
		return unexpectedProblem(err), "unhandled error occurred"
	}
}

func statusErrorProblem(err *clients.StatusError) *dto.Problem {
	return dto.NewProblem(validStatus(err.StatusCode), TitleDefault, messageOrDefault(err))
}

func (t *Translator) domainErrorProblem(ctx context.Context, err *domain.Error) *dto.Problem {
	status := err.StatusCode
	if !isValidStatus(status) {
		t.loggerFor(ctx).InfoContext(ctx, fmt.Sprintf(
			"error code from exception could not be mapped to a valid HTTP status code - %d", status))
		status = http.StatusInternalServerError
	}

	return dto.NewProblem(status, err.Title, err.Detail)
}

func methodNotAllowedProblem(err *MethodNotAllowedError) *dto.Problem {
	return dto.NewProblem(http.StatusMethodNotAllowed, TitleDefault, messageOrDefault(err))
}

func unexpectedProblem(err error) *dto.Problem {
	return dto.NewProblem(http.StatusInternalServerError, TitleUnexpected, messageOrDefault(err))
}

// report logs err with its cause chain, then the rendered problem, and counts the response.
func (t *Translator) report(ctx context.Context, msg string, err error, p *dto.Problem) {
	logger := t.loggerFor(ctx)

	logger.ErrorContext(ctx, msg,
		slog.String("error", errorText(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.Any("causes", causeChain(err)),
	)
	logger.ErrorContext(ctx, p.String())

	t.responses.WithLabelValues(statusLabel(p.Status), p.Title).Inc()
}

func (t *Translator) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger.With(slog.String("component", "problem.Translator"))
	}
	return t.logger
}

// causeChain lists the messages of every error wrapped by err, outermost first.
func causeChain(err error) []string {
	var chain []string

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		chain = append(chain, cause.Error())
	}

	return chain
}

func isValidStatus(code int) bool {
	return http.StatusText(code) != ""
}

func validStatus(code int) int {
	if isValidStatus(code) {
		return code
	}
	return http.StatusInternalServerError
}

func messageOrDefault(err error) string {
	if msg := errorText(err); strings.TrimSpace(msg) != "" {
		return msg
	}
	return DetailDefault
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
