package handlers

import (
	"strconv"

	"github.com/anonto42/social-admin/backend/internal/middleware"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// recordAudit stores a moderation event for the admin of the current request.
// A failed write is logged; the deletion it describes has already committed.
func recordAudit(c echo.Context, audits repositories.AuditRepository, action string, targetID uint) {
	event := models.AuditEvent{Action: action, TargetID: targetID}
	if claims := middleware.CurrentUser(c); claims != nil {
		event.ActorID = claims.UserID
		event.ActorMail = claims.Email
	}

	if err := audits.Record(c.Request().Context(), event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"target_id": targetID,
		}).Warn("failed to record audit event")
	}
}

// parseID reads a positive integer path parameter
func parseID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
