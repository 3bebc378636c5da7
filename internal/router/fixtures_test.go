package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/social-admin/backend/internal/auth"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories/memory"
	"github.com/anonto42/social-admin/backend/internal/router"
	"github.com/anonto42/social-admin/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "password123"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func newStore(t *testing.T) *memory.Store {
	t.Helper()

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)

	now := time.Now()
	return &memory.Store{
		Users: []models.User{
			{ID: 1, Email: adminEmail, Name: "Admin", Password: hash, Role: models.RoleAdmin},
			{ID: 2, Email: "member@example.com", Name: "Member", Password: hash, Role: models.RoleUser},
			{ID: 3, Email: "legacy@example.com", Name: "Legacy", Role: models.RoleAdmin},
		},
		Posts: []models.PostRow{
			{ID: 1, Title: "Hello World", CommentsCount: 2, Topic: strPtr("Technology"), SubTopic: strPtr("Go"), CreatedAt: now.Add(-3 * time.Hour)},
			{ID: 2, Title: "Market update", CommentsCount: 1, Topic: strPtr("Finance"), CreatedAt: now.Add(-2 * time.Hour)},
			{ID: 3, Title: "Weekend hiking", Topic: strPtr("Outdoors"), SubTopic: strPtr("Mountains"), CreatedAt: now.Add(-1 * time.Hour)},
		},
		Comments: []models.CommentRow{
			{ID: 10, UserID: 2, PostID: 1, ReplyCount: 1, Content: "first", PostTitle: "Hello World", AuthorName: "Member", CreatedAt: now.Add(-150 * time.Minute)},
			{ID: 11, UserID: 2, PostID: 1, ParentID: uintPtr(10), Content: "reply", PostTitle: "Hello World", AuthorName: "Member", CreatedAt: now.Add(-140 * time.Minute)},
			{ID: 12, UserID: 1, PostID: 2, Content: "noted", PostTitle: "Market update", AuthorName: "Admin", CreatedAt: now.Add(-90 * time.Minute)},
		},
		Sessions: []models.SessionRow{
			{ID: 1, UserID: 2, UserName: "Member", StartTime: now.Add(-20 * time.Minute), LastActivity: now.Add(-5 * time.Minute)},
			{ID: 2, UserID: 2, UserName: "Member", StartTime: now.Add(-3 * time.Hour), EndTime: timePtr(now.Add(-2 * time.Hour)), LastActivity: now.Add(-2 * time.Hour)},
			{ID: 3, UserID: 1, UserName: "Admin", StartTime: now.Add(-5 * time.Hour), EndTime: timePtr(now.Add(-4*time.Hour - 30*time.Minute)), LastActivity: now.Add(-4 * time.Hour)},
		},
		ActiveReports: 4,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func newServer(t *testing.T, store *memory.Store) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Env:            config.EnvDevelopment,
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	deps := &router.Dependencies{
		Users:    store,
		Posts:    store,
		Comments: store,
		Stats:    store,
		Sessions: store,
		Audit:    store,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, false),
		Health:   pinger{},
	}
	return router.New(cfg, deps)
}

func request(e *echo.Echo, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()

	rec := request(e, http.MethodPost, "/api/auth/login",
		`{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
