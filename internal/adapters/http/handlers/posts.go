package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/posts-gateway/internal/app"
	"github.com/jsamuelsen/posts-gateway/internal/domain"
)

// includeComments is the value of the include query parameter that embeds comments.
const includeComments = "comments"

// PostHandler handles post and comment endpoints.
// Failures are attached with c.Error and rendered by the error middleware.
type PostHandler struct {
	service *app.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(service *app.PostService) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// ListPosts handles GET /api/v1/posts
//
// @Summary List posts
// @Description Returns every post from the upstream service
// @Tags posts
// @Produce json
// @Success 200 {array} dto.PostResponse
// @Failure 500 {object} dto.Problem
// @Router /api/v1/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// GetPost handles GET /api/v1/posts/:id
// With include=comments the post's comments are embedded.
//
// @Summary Get a post
// @Description Fetches one post; include=comments embeds its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param include query string false "Set to 'comments' to embed comments"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.Problem
// @Failure 404 {object} dto.Problem
// @Failure 500 {object} dto.Problem
// @Router /api/v1/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := bindPostID(c)
	if !ok {
		return
	}

	var (
		post *domain.Post
		err  error
	)

	if c.Query("include") == includeComments {
		post, err = h.service.GetPostWithComments(c.Request.Context(), id)
	} else {
		post, err = h.service.GetPost(c.Request.Context(), id)
	}

	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// ListPostComments handles GET /api/v1/posts/:id/comments
//
// @Summary List a post's comments
// @Description Returns the comments of one post; upstream failures yield an empty list
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 400 {object} dto.Problem
// @Router /api/v1/posts/{id}/comments [get]
func (h *PostHandler) ListPostComments(c *gin.Context) {
	id, ok := bindPostID(c)
	if !ok {
		return
	}

	comments := h.service.ListCommentsForPost(c.Request.Context(), id)

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// ListComments handles GET /api/v1/comments
//
// @Summary List comments
// @Description Returns comments matching the given filters; upstream failures yield an empty list
// @Tags comments
// @Produce json
// @Param postId query string false "Post ID"
// @Param id query string false "Comment ID"
// @Param name query string false "Comment name"
// @Param email query string false "Commenter email"
// @Param body query string false "Comment body"
// @Success 200 {array} dto.CommentResponse
// @Failure 400 {object} dto.Problem
// @Router /api/v1/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	var query dto.CommentsQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		_ = c.Error(domain.NewBadRequestError(dto.ValidationDetail(err)))
		return
	}

	comments := h.service.ListComments(c.Request.Context(), query.Filters())

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// RegisterPostRoutes registers post and comment routes on the given router group.
func (h *PostHandler) RegisterPostRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.GET("/:id", h.GetPost)
	posts.GET("/:id/comments", h.ListPostComments)

	rg.GET("/comments", h.ListComments)
}

// bindPostID validates the :id parameter. On failure it attaches a 400
// domain error and reports false.
func bindPostID(c *gin.Context) (string, bool) {
	var path dto.PostPath
	if err := dto.BindURIAndValidate(c, &path); err != nil {
		_ = c.Error(domain.NewBadRequestError(dto.ValidationDetail(err)))
		return "", false
	}

	return path.ID, true
}
