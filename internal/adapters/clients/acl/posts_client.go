package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/posts-gateway/internal/domain"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
)

// PostsClientConfig contains configuration for the posts client.
type PostsClientConfig struct {
	// Posts is the client for the posts endpoint; its base URL is the
	// collection URL, e.g. https://jsonplaceholder.typicode.com/posts.
	Posts *clients.Client

	// Comments is the client for the comments collection endpoint.
	Comments *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// PostsClient implements ports.PostsClient against a JSONPlaceholder-style API.
//
// Posts are the primary resource: every GetPost failure becomes a
// *domain.Error. Comments are best-effort enrichment: ListComments never
// fails and degrades to an empty list.
type PostsClient struct {
	posts    BaseAdapter
	comments BaseAdapter
}

// NewPostsClient creates a new posts client adapter.
// Panics if either client is nil. Defaults logger to slog.Default() if nil.
func NewPostsClient(cfg PostsClientConfig) *PostsClient {
	if cfg.Posts == nil || cfg.Comments == nil {
		panic("PostsClient: Posts and Comments clients are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "acl.PostsClient"))

	return &PostsClient{
		posts:    NewBaseAdapter(cfg.Posts, logger),
		comments: NewBaseAdapter(cfg.Comments, logger),
	}
}

// postDTO is the upstream post representation.
// This is an internal type - never exposed outside the ACL.
type postDTO struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// commentDTO is the upstream comment representation.
type commentDTO struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

func translatePost(ext *postDTO) domain.Post {
	return domain.Post{
		ID:     ext.ID,
		UserID: ext.UserID,
		Title:  ext.Title,
		Body:   ext.Body,
	}
}

func translateComment(ext *commentDTO) domain.Comment {
	return domain.Comment{
		ID:     ext.ID,
		PostID: ext.PostID,
		Name:   ext.Name,
		Email:  ext.Email,
		Body:   ext.Body,
	}
}

// ListPosts fetches every post. An empty or null body yields an empty list.
// Failures are returned unclassified: a non-2xx status as *clients.StatusError,
// anything else as the wrapped transport or decode error.
func (c *PostsClient) ListPosts(ctx context.Context) ([]domain.Post, error) {
	body, err := c.posts.Fetch(ctx, "", nil)
	if err != nil {
		return nil, err
	}

	external, err := DecodeResponse[[]postDTO](body)
	if err != nil {
		if class, _ := classify(err); class == failureEmptyBody {
			return []domain.Post{}, nil
		}
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	posts := TranslateSlice(*external, translatePost)

	c.posts.Logger(ctx).DebugContext(ctx, "listed posts", slog.Int("count", len(posts)))

	return posts, nil
}

// GetPost fetches one post. Every failure is a *domain.Error:
//   - upstream 404: 404 "Resource Not Found"
//   - other upstream 4xx/5xx: the upstream status, "External API Error"
//   - anything else: 500 "Internal Server Error"
func (c *PostsClient) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	body, err := c.posts.Fetch(ctx, "/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, postError(id, err)
	}

	external, err := DecodeResponse[postDTO](body)
	if err != nil {
		return nil, postError(id, err)
	}

	post := translatePost(external)

	c.posts.Logger(ctx).Log(ctx, logging.LevelTrace, "translated upstream post",
		slog.Int("post_id", post.ID),
		slog.Int("user_id", post.UserID))

	return &post, nil
}

// postError classifies a GetPost failure.
func postError(id string, err error) *domain.Error {
	class, statusErr := classify(err)

	switch class {
	case failureNotFound:
		return domain.NewNotFoundError("Post", id)
	case failureUpstream:
		return domain.NewExternalAPIError(
			fmt.Sprintf("Error occurred while fetching post with id %s: %s", id, statusErr.Error()),
			statusErr.StatusCode,
			statusErr,
		)
	default:
		return domain.NewInternalError(
			fmt.Sprintf("Unexpected error occurred while fetching post with id %s", id),
			err,
		)
	}
}

// ListComments fetches comments matching filters, e.g. {"postId": "1"}.
// It never fails: every failure is logged and yields an empty list.
func (c *PostsClient) ListComments(ctx context.Context, filters map[string]string) []domain.Comment {
	query := make(url.Values, len(filters))
	for k, v := range filters {
		query.Set(k, v)
	}

	logger := c.comments.Logger(ctx)

	body, err := c.comments.Fetch(ctx, "", query)
	if err != nil {
		c.logCommentFailure(ctx, logger, err)
		return []domain.Comment{}
	}

	external, err := DecodeResponse[[]commentDTO](body)
	if err != nil {
		c.logCommentFailure(ctx, logger, err)
		return []domain.Comment{}
	}

	comments := TranslateSlice(*external, translateComment)

	logger.DebugContext(ctx, "listed comments", slog.Int("count", len(comments)))

	return comments
}

func (c *PostsClient) logCommentFailure(ctx context.Context, logger *slog.Logger, err error) {
	class, statusErr := classify(err)
	logger = logger.With(slog.String("failure", class.String()))

	switch class {
	case failureUnexpectedStatus:
		logger.WarnContext(ctx, "comments request returned a non-success status",
			slog.Int("status", statusErr.StatusCode))
	case failureNotFound:
		logger.WarnContext(ctx, "comments not found",
			slog.Int("status", statusErr.StatusCode))
	case failureEmptyBody:
		logger.WarnContext(ctx, "comments response had no body")
	case failureUpstream:
		logger.ErrorContext(ctx, "comments request failed",
			slog.Int("status", statusErr.StatusCode),
			slog.String("error", statusErr.Error()))
	default:
		logger.ErrorContext(ctx, "comments request failed", slog.Any("error", err))
	}
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *PostsClient) Name() string {
	return c.posts.ServiceName()
}

// Check verifies the posts endpoint serves a known post.
// Implements ports.HealthChecker.
func (c *PostsClient) Check(ctx context.Context) error {
	body, err := c.posts.Fetch(ctx, "/1", nil)
	if err != nil {
		return fmt.Errorf("posts endpoint unavailable: %w", err)
	}

	return body.Close()
}
