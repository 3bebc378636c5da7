package handlers

import (
	"net/http"

	"github.com/anonto42/social-admin/backend/internal/auth"
	"github.com/anonto42/social-admin/backend/internal/middleware"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/verify", h.Verify)
}

// invalidCredentials is shared by every login failure so responses cannot be told apart
var invalidCredentials = echo.Map{"message": "Invalid credentials"}

// Login checks an admin's email and password and sets the session cookie
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetAdminByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// same bcrypt cost as a known account
			_ = auth.CheckPassword("", req.Password)
			return c.JSON(http.StatusUnauthorized, invalidCredentials)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed").SetInternal(err)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, invalidCredentials)
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token").SetInternal(err)
	}
	c.SetCookie(h.tokens.Cookie(token))

	logrus.WithField("user_id", user.ID).Info("admin logged in")

	return c.JSON(http.StatusOK, echo.Map{
		"user":    user,
		"message": "Login successful",
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.tokens.ClearCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Verify returns the claims of the current session cookie
func (h *AuthHandler) Verify(c echo.Context) error {
	claims, err := middleware.ClaimsFromCookie(c, h.tokens)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": claims})
}
