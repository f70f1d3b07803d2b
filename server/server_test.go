package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		App:    config.AppConfig{URL: "http://localhost:3000"},
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
	}
	return New(cfg, nil, nil)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRespond(t *testing.T) {
	srv := newTestServer(t)
	srv.Get("/ok", func(c echo.Context) error {
		return Respond(c, http.StatusOK, "fetched", map[string]string{"id": "1"})
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "fetched", env.Message)
	assert.NotNil(t, env.Result)
}

func TestErrorHandler(t *testing.T) {
	t.Run("app error maps to its status and message", func(t *testing.T) {
		srv := newTestServer(t)
		srv.Get("/missing", func(c echo.Context) error {
			return apperr.NotFound("product not found")
		})

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "product not found", env.Message)
	})

	t.Run("validation error carries field details", func(t *testing.T) {
		srv := newTestServer(t)
		srv.Get("/invalid", func(c echo.Context) error {
			return apperr.Validation("validation failed", map[string]string{"email": "must be a valid email"})
		})

		req := httptest.NewRequest(http.MethodGet, "/invalid", nil)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "must be a valid email", env.Errors["email"])
	})

	t.Run("unknown errors hide details behind a 500", func(t *testing.T) {
		srv := newTestServer(t)
		srv.Get("/boom", func(c echo.Context) error {
			return assert.AnError
		})

		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "internal server error", env.Message)
	})

	t.Run("echo 404 for unregistered route", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
	})
}
