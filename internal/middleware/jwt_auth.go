package middleware

import (
	"net/http"

	"github.com/anonto42/social-admin/backend/internal/auth"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// ContextUserKey is where the verified claims are stored on the echo context
const ContextUserKey = "user"

// JWTAuthMiddleware checks the session cookie and stores the user claims in the context.
func JWTAuthMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ClaimsFromCookie(c, tokens)
			if err != nil {
				return err
			}

			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromCookie verifies the session cookie of the request.
// It returns a 401 *echo.HTTPError when the cookie is missing or invalid.
func ClaimsFromCookie(c echo.Context, tokens *auth.TokenManager) (*models.JwtCustomClaims, error) {
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "No token provided").SetInternal(auth.ErrMissingToken)
	}

	claims, err := tokens.Parse(cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
	}
	return claims, nil
}

// CurrentUser returns the claims stored by JWTAuthMiddleware, or nil on unprotected routes.
func CurrentUser(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(ContextUserKey).(*models.JwtCustomClaims)
	return claims
}
