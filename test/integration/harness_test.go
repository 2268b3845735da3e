//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/posts-gateway/internal/adapters/http"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/problem"
	"github.com/jsamuelsen/posts-gateway/internal/app"
	"github.com/jsamuelsen/posts-gateway/internal/platform/config"
	"github.com/jsamuelsen/posts-gateway/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type upstreamPost struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type upstreamComment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

var (
	fixturePosts = []upstreamPost{
		{UserID: 1, ID: 1, Title: "sunt aut facere", Body: "quia et suscipit"},
		{UserID: 1, ID: 2, Title: "qui est esse", Body: "est rerum tempore"},
		{UserID: 2, ID: 3, Title: "ea molestias", Body: "et iusto sed"},
	}

	fixtureComments = []upstreamComment{
		{PostID: 1, ID: 1, Name: "id labore", Email: "Eliseo@gardner.biz", Body: "laudantium"},
		{PostID: 1, ID: 2, Name: "quo vero", Email: "Jayne_Kuhic@sydney.com", Body: "est natus"},
		{PostID: 2, ID: 3, Name: "odio adipisci", Email: "Nikita@garfield.biz", Body: "quia molestiae"},
	}
)

// upstream is a JSONPlaceholder-style stub.
// Post 500 answers 500, post 503 answers 503, any other unknown post 404.
// Comments for post 13 answer 500.
type upstream struct {
	*httptest.Server

	calls      atomic.Int64
	lastHeader atomic.Pointer[http.Header]
}

func newUpstream() *upstream {
	u := &upstream{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, fixturePosts)
	})
	mux.HandleFunc("GET /posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))

		switch id {
		case http.StatusInternalServerError, http.StatusServiceUnavailable:
			w.WriteHeader(id)
			_, _ = w.Write([]byte("upstream down"))
			return
		}

		for _, p := range fixturePosts {
			if p.ID == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}

		writeJSON(w, http.StatusNotFound, map[string]any{})
	})
	mux.HandleFunc("GET /comments", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("postId") == "13" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		result := []upstreamComment{}
		for _, c := range fixtureComments {
			if matchesComment(c, r) {
				result = append(result, c)
			}
		}

		writeJSON(w, http.StatusOK, result)
	})

	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		h := r.Header.Clone()
		u.lastHeader.Store(&h)
		mux.ServeHTTP(w, r)
	}))

	return u
}

func matchesComment(c upstreamComment, r *http.Request) bool {
	q := r.URL.Query()

	if v := q.Get("postId"); v != "" && v != strconv.Itoa(c.PostID) {
		return false
	}
	if v := q.Get("id"); v != "" && v != strconv.Itoa(c.ID) {
		return false
	}
	if v := q.Get("email"); v != "" && v != c.Email {
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newGateway serves the full router against upstreamURL.
func newGateway(upstreamURL string) (*httptest.Server, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newClient := func(path, name string) (*clients.Client, error) {
		return clients.New(&clients.Config{
			BaseURL:     upstreamURL + path,
			ServiceName: name,
			Timeout:     2 * time.Second,
			HeaderFunc:  middleware.PropagateIDs,
			Logger:      logger,
		})
	}

	postsHTTP, err := newClient("/posts", "posts-api")
	if err != nil {
		return nil, fmt.Errorf("creating posts client: %w", err)
	}

	commentsHTTP, err := newClient("/comments", "comments-api")
	if err != nil {
		return nil, fmt.Errorf("creating comments client: %w", err)
	}

	postsClient := acl.NewPostsClient(acl.PostsClientConfig{
		Posts:    postsHTTP,
		Comments: commentsHTTP,
		Logger:   logger,
	})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(postsClient); err != nil {
		return nil, fmt.Errorf("registering health check: %w", err)
	}

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		AppConfig:     &config.AppConfig{Name: "posts-gateway", Version: "test", Environment: "test"},
		Translator:    problem.NewTranslator(problem.Config{Logger: logger, Registerer: prometheus.NewRegistry()}),
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		PostHandler: handlers.NewPostHandler(app.NewPostService(app.PostServiceConfig{
			PostsClient: postsClient,
			Logger:      logger,
		})),
	})

	return httptest.NewServer(engine), nil
}

// get issues a GET and returns the status, headers and body.
func get(client *http.Client, target string, header http.Header) (int, http.Header, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, nil, err
	}

	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	return resp.StatusCode, resp.Header, body, err
}

func isProblem(h http.Header) bool {
	return strings.HasPrefix(h.Get("Content-Type"), "application/problem+json")
}
