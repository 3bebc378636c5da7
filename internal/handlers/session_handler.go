package handlers

import (
	"net/http"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const defaultSessionsLimit = 50

// SessionHandler handles HTTP requests related to user sessions
type SessionHandler struct {
	sessionRepository repositories.SessionRepository
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionRepo repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{sessionRepository: sessionRepo}
}

// RegisterSessionRoutes registers session-related routes
func (h *SessionHandler) RegisterSessionRoutes(g *echo.Group) {
	g.GET("/sessions", h.ListSessions)
}

// ListSessions returns the most recent sessions, flagging the ones still active
func (h *SessionHandler) ListSessions(c echo.Context) error {
	req := models.ListSessionsRequest{Limit: defaultSessionsLimit}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sessions, err := h.sessionRepository.ListSessions(c.Request().Context(), req.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sessions").SetInternal(err)
	}
	if sessions == nil {
		sessions = []models.SessionRow{}
	}
	return c.JSON(http.StatusOK, sessions)
}
