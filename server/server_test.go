package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mangomarket/onboard/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	srv := New(testutils.GetTestConfig(), nil)
	require.NotNil(t, srv.Echo())

	srv.Post("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServerGroup(t *testing.T) {
	srv := New(testutils.GetTestConfig(), nil)

	group := srv.Group("/otp")
	group.POST("/issue", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/otp/issue", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerShutdown(t *testing.T) {
	srv := New(testutils.GetTestConfig(), nil)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
