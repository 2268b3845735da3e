package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
)

// BaseAdapter provides common functionality for ACL adapters.
// Embed this in your service-specific adapters.
type BaseAdapter struct {
	client *clients.Client
	logger *slog.Logger
}

// NewBaseAdapter creates a base adapter over one upstream client.
func NewBaseAdapter(client *clients.Client, logger *slog.Logger) BaseAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return BaseAdapter{
		client: client,
		logger: logger.With(slog.String("upstream", client.ServiceName())),
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the upstream service.
func (a *BaseAdapter) ServiceName() string {
	return a.client.ServiceName()
}

// Logger returns the request-scoped logger when ctx carries one,
// otherwise the adapter's own.
func (a *BaseAdapter) Logger(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger.With(slog.String("upstream", a.ServiceName()))
	}
	return a.logger
}

// Fetch performs a GET and returns the body of a 2xx response (caller must close).
// Any other status is returned as *clients.StatusError with the body drained.
// Transport failures are returned as they come from the client.
func (a *BaseAdapter) Fetch(ctx context.Context, path string, query url.Values) (io.ReadCloser, error) {
	resp, err := a.client.GetWithQuery(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, clients.NewStatusError(resp)
	}

	return resp.Body, nil
}

// DecodeResponse reads and decodes a JSON response body into the target type.
// Closes the body after reading. An absent or null body yields ErrEmptyBody.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, ErrEmptyBody
	}
	defer func() { _ = body.Close() }()

	var result *T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBody
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if result == nil {
		return nil, ErrEmptyBody
	}

	return result, nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) Domain

// TranslateSlice applies a translator to every DTO.
// The result is never nil, so an empty upstream list stays an empty list.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) []D {
	result := make([]D, 0, len(items))

	for i := range items {
		result = append(result, translate(&items[i]))
	}

	return result
}
