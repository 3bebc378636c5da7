package handlers

import (
	"net/http"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	auditRepository   repositories.AuditRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, auditRepo repositories.AuditRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		auditRepository:   auditRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments", h.ListComments)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// ListComments returns the newest comments with post title and author name
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.commentRepository.ListComments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments").SetInternal(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment deletes a comment with its reactions and reports
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCommentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found").SetInternal(err)
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return echo.NewHTTPError(http.StatusConflict, "Cannot delete comment due to existing relationships").SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment").SetInternal(err)
		}
	}

	recordAudit(c, h.auditRepository, models.AuditActionDeleteComment, id)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Comment deleted successfully",
	})
}
