package handlers

import (
	"net/http"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	defaultPostsPage  = 1
	defaultPostsLimit = 10
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	auditRepository repositories.AuditRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, auditRepo repositories.AuditRepository) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		auditRepository: auditRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/search", h.SearchPosts)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns one page of posts, optionally filtered by title
func (h *PostHandler) ListPosts(c echo.Context) error {
	req := models.ListPostsRequest{Page: defaultPostsPage, Limit: defaultPostsLimit}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	posts, err := h.postRepository.ListPosts(c.Request().Context(), req.Search, req.Page, req.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts").SetInternal(err)
	}

	return c.JSON(http.StatusOK, posts)
}

// SearchPosts matches posts by id, title, topic or sub-topic
func (h *PostHandler) SearchPosts(c echo.Context) error {
	var req models.SearchPostsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters").SetInternal(err)
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	search, err := repositories.NewPostSearch(repositories.ParseSearchField(req.Field), req.Query)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID").SetInternal(err)
	}

	posts, err := h.postRepository.SearchPosts(c.Request().Context(), search)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search posts").SetInternal(err)
	}

	return c.JSON(http.StatusOK, posts)
}

// DeletePost deletes a post together with its comments, reports and images
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPostNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found").SetInternal(err)
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return echo.NewHTTPError(http.StatusConflict, "Cannot delete post due to existing relationships").SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post").SetInternal(err)
		}
	}

	recordAudit(c, h.auditRepository, models.AuditActionDeletePost, id)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post deleted successfully",
	})
}
