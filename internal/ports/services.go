// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Failures the caller must report are *domain.Error values
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/posts-gateway/internal/domain"
)

// PostsClient is the upstream source of posts and comments.
//
// Posts are the primary resource and their failures are reported.
// Comments are enrichment: a comment lookup never fails and degrades
// to an empty list.
type PostsClient interface {
	// ListPosts returns every post. An empty upstream list is an empty,
	// non-nil slice. Failures are returned as received from the transport,
	// without classification into domain errors.
	ListPosts(ctx context.Context) ([]domain.Post, error)

	// GetPost returns one post. Every failure is a *domain.Error:
	// 404 for an unknown id, the upstream status for other upstream
	// error responses, and 500 for anything else.
	GetPost(ctx context.Context, id string) (*domain.Post, error)

	// ListComments returns the comments matching filters, such as
	// {"postId": "1"}. It never fails; failures yield an empty slice.
	ListComments(ctx context.Context, filters map[string]string) []domain.Comment
}
