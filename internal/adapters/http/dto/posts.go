package dto

import "github.com/jsamuelsen/posts-gateway/internal/domain"

// PostResponse is the HTTP representation of a post.
// Comments is present only when the caller asked for them, even if empty.
type PostResponse struct {
	UserID   int                `json:"userId"`
	ID       int                `json:"id"`
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	Comments *[]CommentResponse `json:"comments,omitempty"`
}

// CommentResponse is the HTTP representation of a comment.
type CommentResponse struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// PostPath binds the :id route parameter of the post endpoints.
type PostPath struct {
	ID string `uri:"id" json:"id" validate:"required,positive_int"`
}

// CommentsQuery binds the optional filters of GET /api/v1/comments.
// Values are passed to the upstream as given.
type CommentsQuery struct {
	PostID *string `form:"postId" json:"postId"`
	ID     *string `form:"id" json:"id"`
	Name   *string `form:"name" json:"name"`
	Email  *string `form:"email" json:"email"`
	Body   *string `form:"body" json:"body"`
}

// Filters returns the upstream query built from the parameters that were present.
func (q *CommentsQuery) Filters() map[string]string {
	filters := make(map[string]string)

	add := func(key string, value *string) {
		if value != nil {
			filters[key] = *value
		}
	}

	add("postId", q.PostID)
	add("id", q.ID)
	add("name", q.Name)
	add("email", q.Email)
	add("body", q.Body)

	return filters
}

// ToPostResponse converts a domain post. Comments are embedded only when attached.
func ToPostResponse(p *domain.Post) *PostResponse {
	resp := &PostResponse{
		UserID: p.UserID,
		ID:     p.ID,
		Title:  p.Title,
		Body:   p.Body,
	}

	if p.HasComments() {
		comments := ToCommentResponses(p.Comments())
		resp.Comments = &comments
	}

	return resp
}

// ToPostResponses converts a list of posts. The result is never nil.
func ToPostResponses(posts []domain.Post) []PostResponse {
	result := make([]PostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, *ToPostResponse(&posts[i]))
	}

	return result
}

// ToCommentResponses converts a list of comments. The result is never nil.
func ToCommentResponses(comments []domain.Comment) []CommentResponse {
	result := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, CommentResponse{
			PostID: c.PostID,
			ID:     c.ID,
			Name:   c.Name,
			Email:  c.Email,
			Body:   c.Body,
		})
	}

	return result
}
