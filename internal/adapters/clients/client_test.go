package clients

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/posts-gateway/internal/platform/config"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
)

func defaultConfig() *Config {
	return &Config{
		BaseURL:     "https://jsonplaceholder.typicode.com/posts",
		ServiceName: "posts-api",
		Timeout:     5 * time.Second,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	require.NoError(t, resp.Body.Close())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config) *Config
		expectedErr string
	}{
		{name: "valid", mutate: func(c *Config) *Config { return c }},
		{name: "trailing slash trimmed", mutate: func(c *Config) *Config { c.BaseURL += "/"; return c }},
		{name: "nil config", mutate: func(*Config) *Config { return nil }, expectedErr: "config is required"},
		{name: "no service name", mutate: func(c *Config) *Config { c.ServiceName = ""; return c }, expectedErr: "service name is required"},
		{name: "empty base url", mutate: func(c *Config) *Config { c.BaseURL = ""; return c }, expectedErr: "invalid base URL"},
		{name: "base url without scheme", mutate: func(c *Config) *Config {
			c.BaseURL = "jsonplaceholder.typicode.com/posts"
			return c
		}, expectedErr: "invalid base URL"},
		{name: "unparsable base url", mutate: func(c *Config) *Config { c.BaseURL = "://bad"; return c }, expectedErr: "invalid base URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.mutate(defaultConfig()))

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://jsonplaceholder.typicode.com/posts", client.BaseURL())
			assert.Equal(t, "posts-api", client.ServiceName())
		})
	}
}

func TestNewTransport_Defaults(t *testing.T) {
	transport := newTransport(config.TransportConfig{MaxIdleConnsPerHost: 4})

	assert.Equal(t, defaultMaxIdleConns, transport.MaxIdleConns)
	assert.Equal(t, 4, transport.MaxIdleConnsPerHost)
	assert.Equal(t, defaultIdleConnTimeout, transport.IdleConnTimeout)
}

func TestNew_ConfigIsCopied(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL + "/posts"

	client, err := New(cfg)
	require.NoError(t, err)

	// Mutating the source after construction must not affect the client
	cfg.BaseURL = "http://127.0.0.1:1/elsewhere"
	cfg.ServiceName = "changed"
	cfg.HeaderFunc = func(context.Context, http.Header) { t.Fatal("late header func must not run") }

	resp, err := client.Get(context.Background(), "")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, server.URL+"/posts", client.BaseURL())
	assert.Equal(t, "posts-api", client.ServiceName())
}

func TestClient_HeaderFunc(t *testing.T) {
	type ctxKey struct{}

	var receivedRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	cfg.HeaderFunc = func(ctx context.Context, h http.Header) {
		if id, ok := ctx.Value(ctxKey{}).(string); ok {
			h.Set("X-Request-ID", id)
		}
	}

	client, err := New(cfg)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "test-request-123")

	resp, err := client.Get(ctx, "/1")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "test-request-123", receivedRequestID)
}

func TestClient_NoRetry(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				attempts.Add(1)
				w.WriteHeader(status)
			}))
			defer server.Close()

			cfg := defaultConfig()
			cfg.BaseURL = server.URL

			client, err := New(cfg)
			require.NoError(t, err)

			resp, err := client.Get(context.Background(), "/1")
			require.NoError(t, err)
			defer closeBody(t, resp)

			assert.Equal(t, status, resp.StatusCode)
			assert.Equal(t, int32(1), attempts.Load())
		})
	}
}

func TestClient_TransportFailureWrapsErrNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	baseURL := server.URL
	server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = baseURL

	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = 50 * time.Millisecond

	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestClient_GetWithQuery(t *testing.T) {
	var receivedQuery string
	var receivedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL + "/comments"

	client, err := New(cfg)
	require.NoError(t, err)

	query := url.Values{}
	query.Set("postId", "1")
	query.Set("email", "a b&c@example.com")

	resp, err := client.GetWithQuery(context.Background(), "", query)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "/comments", receivedPath)
	assert.Equal(t, "email=a+b%26c%40example.com&postId=1", receivedQuery)
}

func TestClient_LogsBeforeAndAfterCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := New(cfg)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/7")
	require.NoError(t, err)
	defer closeBody(t, resp)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "calling upstream")
	assert.Contains(t, lines[0], "method=GET")
	assert.Contains(t, lines[0], "url="+server.URL+"/7")

	assert.Contains(t, lines[1], "level=DEBUG")
	assert.Contains(t, lines[1], "status=200")
}

func TestClient_PrefersContextLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var clientBuf, ctxBuf bytes.Buffer

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	cfg.Logger = slog.New(slog.NewTextHandler(&clientBuf, nil))

	client, err := New(cfg)
	require.NoError(t, err)

	ctx := logging.WithContext(context.Background(), slog.New(slog.NewTextHandler(&ctxBuf, nil)))
	ctx = logging.WithRequestID(ctx, "req-42")

	resp, err := client.Get(ctx, "/1")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Empty(t, clientBuf.String())
	assert.Contains(t, ctxBuf.String(), "request_id=req-42")
	assert.Contains(t, ctxBuf.String(), "upstream=posts-api")
}

func TestClient_BuildURL(t *testing.T) {
	tests := []struct {
		base     string
		path     string
		expected string
	}{
		{base: "https://jsonplaceholder.typicode.com/posts", path: "", expected: "https://jsonplaceholder.typicode.com/posts"},
		{base: "https://jsonplaceholder.typicode.com/posts", path: "/1", expected: "https://jsonplaceholder.typicode.com/posts/1"},
		{base: "https://jsonplaceholder.typicode.com/posts", path: "1", expected: "https://jsonplaceholder.typicode.com/posts/1"},
		{base: "https://jsonplaceholder.typicode.com/posts/", path: "/1", expected: "https://jsonplaceholder.typicode.com/posts/1"},
	}

	for _, tt := range tests {
		t.Run(tt.base+" "+tt.path, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.BaseURL = tt.base

			client, err := New(cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, client.buildURL(tt.path))
		})
	}
}

func TestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{}\n"))
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.BaseURL = server.URL

	client, err := New(cfg)
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/999")
	require.NoError(t, err)
	defer closeBody(t, resp)

	statusErr := NewStatusError(resp)

	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, `404 Not Found: "{}"`, statusErr.Error())
	assert.Equal(t, http.MethodGet, statusErr.Method)
	assert.Equal(t, server.URL+"/999", statusErr.URL)
	assert.True(t, statusErr.IsClientError())
	assert.False(t, statusErr.IsServerError())
}

func TestStatusError_WithoutStatusLine(t *testing.T) {
	statusErr := NewStatusError(&http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader("upstream down")),
	})

	assert.Equal(t, `502 Bad Gateway: "upstream down"`, statusErr.Error())
	assert.True(t, statusErr.IsServerError())
}

func TestStatusError_BodyIsBounded(t *testing.T) {
	statusErr := NewStatusError(&http.Response{
		StatusCode: http.StatusInternalServerError,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", 2*maxErrorBodyBytes))),
	})

	assert.Len(t, statusErr.Body, maxErrorBodyBytes)
}

func TestAsStatusError(t *testing.T) {
	original := &StatusError{StatusCode: http.StatusTeapot, Status: "418 I'm a teapot"}
	wrapped := errors.Join(errors.New("context"), original)

	got, ok := AsStatusError(wrapped)
	require.True(t, ok)
	assert.Same(t, original, got)

	_, ok = AsStatusError(errors.New("plain"))
	assert.False(t, ok)
}
