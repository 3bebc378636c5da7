package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		ping   error
		status int
		body   string
	}{
		{"healthy", nil, http.StatusOK, `{"status":"healthy","service":"social-admin"}`},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, `{"status":"unhealthy","service":"social-admin"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			handler := HealthCheck(pingerFunc(func(context.Context) error { return tc.ping }))
			require.NoError(t, handler(c))
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{"1": true, "42": true, "0": false, "-1": false, "abc": false, "": false, "1.5": false}
	for raw, ok := range cases {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)

		_, got := parseID(c, "id")
		assert.Equal(t, ok, got, "id %q", raw)
	}
}
