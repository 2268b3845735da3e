// Package app contains application services that orchestrate use cases.
// This is the application layer: it coordinates the upstream posts client
// through ports and never sees HTTP or upstream wire types.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/posts-gateway/internal/domain"
	"github.com/jsamuelsen/posts-gateway/internal/platform/logging"
	"github.com/jsamuelsen/posts-gateway/internal/ports"
)

// PostService orchestrates the post and comment use cases.
// It depends on port interfaces, not concrete implementations.
type PostService struct {
	client ports.PostsClient
	logger *slog.Logger
}

// PostServiceConfig contains configuration for the post service.
type PostServiceConfig struct {
	PostsClient ports.PostsClient
	Logger      *slog.Logger
}

// NewPostService creates a new post service with the provided dependencies.
// Panics if PostsClient is nil. Defaults logger to slog.Default() if nil.
func NewPostService(cfg PostServiceConfig) *PostService {
	if cfg.PostsClient == nil {
		panic("PostService: PostsClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PostService{
		client: cfg.PostsClient,
		logger: logger.With(slog.String("component", "app.PostService")),
	}
}

// ListPosts returns every post.
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.client.ListPosts(ctx)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		return nil, err
	}

	s.log(ctx).InfoContext(ctx, "listed posts", slog.Int("count", len(posts)))

	return posts, nil
}

// GetPost returns one post without comments.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.client.GetPost(ctx, id)
	if err != nil {
		s.log(ctx).WarnContext(ctx, "failed to fetch post",
			slog.String("post_id", id),
			slog.Int("status", domain.StatusCodeOf(err)),
		)
		return nil, err
	}

	return post, nil
}

// GetPostWithComments returns one post with its comments attached.
// The post and its comments are fetched concurrently. Only the post can
// fail the call; missing comments leave an empty list on the post.
func (s *PostService) GetPostWithComments(ctx context.Context, id string) (*domain.Post, error) {
	post, comments, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.Post, error) {
			return s.client.GetPost(ctx, id)
		},
		func(ctx context.Context) ([]domain.Comment, error) {
			return s.client.ListComments(ctx, map[string]string{"postId": id}), nil
		},
	)
	if err != nil {
		s.log(ctx).WarnContext(ctx, "failed to fetch post with comments",
			slog.String("post_id", id),
			slog.Int("status", domain.StatusCodeOf(err)),
		)
		return nil, err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	post.SetComments(comments)

	s.log(ctx).DebugContext(ctx, "fetched post with comments",
		slog.String("post_id", id),
		slog.Int("comments", len(comments)),
	)

	return post, nil
}

// ListComments returns the comments matching filters. It never fails.
func (s *PostService) ListComments(ctx context.Context, filters map[string]string) []domain.Comment {
	comments := s.client.ListComments(ctx, filters)
	if comments == nil {
		return []domain.Comment{}
	}

	return comments
}

// ListCommentsForPost returns the comments of one post. It never fails.
func (s *PostService) ListCommentsForPost(ctx context.Context, postID string) []domain.Comment {
	return s.ListComments(ctx, map[string]string{"postId": postID})
}

func (s *PostService) log(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger.With(slog.String("component", "app.PostService"))
	}
	return s.logger
}
