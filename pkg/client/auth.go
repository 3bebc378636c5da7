package client

import (
	"context"
	"net/http"

	"github.com/anonto42/social-admin/backend/internal/models"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
	verifyPath = "/api/auth/verify"
	healthPath = "/health"
)

// Login authenticates an admin and stores the session cookie
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	type loginResponse struct {
		User    *models.User `json:"user"`
		Message string       `json:"message"`
	}

	res, err := c.send(c.r(ctx).
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&loginResponse{}),
		http.MethodPost, loginPath, "Invalid credentials")
	if err != nil {
		return nil, err
	}
	return res.Result().(*loginResponse).User, nil
}

// Logout clears the session cookie
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.send(c.r(ctx), http.MethodPost, logoutPath, "Failed to log out")
	return err
}

// Verify returns the claims of the current session. An expired or missing session is not notified.
func (c *Client) Verify(ctx context.Context) (*models.JwtCustomClaims, error) {
	type verifyResponse struct {
		User *models.JwtCustomClaims `json:"user"`
	}

	res, err := c.send(c.r(ctx).SetResult(&verifyResponse{}), http.MethodGet, verifyPath, "")
	if err != nil {
		return nil, err
	}
	return res.Result().(*verifyResponse).User, nil
}

// Ping checks the API health endpoint
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.send(c.r(ctx), http.MethodGet, healthPath, "API is unreachable")
	return err
}
