package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, mw echo.MiddlewareFunc, ip string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestMiddleware(t *testing.T) {
	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		mw := Middleware(Config{Rate: 2, Period: time.Minute, KeyPrefix: "login"})

		for i := 0; i < 2; i++ {
			_, err := invoke(t, mw, "1.2.3.4")
			require.NoError(t, err)
		}

		_, err := invoke(t, mw, "1.2.3.4")
		assert.ErrorIs(t, err, apperr.ErrTooManyRequests)
	})

	t.Run("limits are per client IP", func(t *testing.T) {
		mw := Middleware(Config{Rate: 1, Period: time.Minute, KeyPrefix: "login"})

		_, err := invoke(t, mw, "1.2.3.4")
		require.NoError(t, err)

		_, err = invoke(t, mw, "5.6.7.8")
		require.NoError(t, err)
	})

	t.Run("key prefix separates endpoints sharing a store", func(t *testing.T) {
		store := NewMemoryStore()
		loginMw := Middleware(Config{Store: store, Rate: 1, Period: time.Minute, KeyPrefix: "login"})
		resetMw := Middleware(Config{Store: store, Rate: 1, Period: time.Minute, KeyPrefix: "reset"})

		_, err := invoke(t, loginMw, "1.2.3.4")
		require.NoError(t, err)

		_, err = invoke(t, resetMw, "1.2.3.4")
		require.NoError(t, err)
	})

	t.Run("sets rate limit headers", func(t *testing.T) {
		mw := Middleware(Config{Rate: 5, Period: time.Minute, KeyPrefix: "login"})

		rec, err := invoke(t, mw, "1.2.3.4")

		require.NoError(t, err)
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("remaining never goes negative", func(t *testing.T) {
		mw := Middleware(Config{Rate: 1, Period: time.Minute, KeyPrefix: "login"})
		invoke(t, mw, "1.2.3.4")
		invoke(t, mw, "1.2.3.4")

		rec, _ := invoke(t, mw, "1.2.3.4")
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("window resets after the period", func(t *testing.T) {
		store := NewMemoryStore()

		count, _ := store.Increment("k", 10*time.Millisecond)
		assert.Equal(t, 1, count)
		count, _ = store.Increment("k", 10*time.Millisecond)
		assert.Equal(t, 2, count)

		time.Sleep(15 * time.Millisecond)

		count, _ = store.Increment("k", 10*time.Millisecond)
		assert.Equal(t, 1, count)
	})
}
