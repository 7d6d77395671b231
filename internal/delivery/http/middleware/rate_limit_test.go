package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	newEcho := func(rps float64, burst int) *echo.Echo {
		e := echo.New()
		e.Use(RateLimit(rps, burst))
		ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		e.POST("/sessions", ok)
		e.GET("/healthz", ok)
		return e
	}
	hit := func(e *echo.Echo, method, path string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec.Code
	}

	t.Run("Превышение лимита дает 429", func(t *testing.T) {
		e := newEcho(1, 1)
		assert.Equal(t, http.StatusOK, hit(e, http.MethodPost, "/sessions"))
		assert.Equal(t, http.StatusTooManyRequests, hit(e, http.MethodPost, "/sessions"))
	})

	t.Run("Служебные маршруты не ограничиваются", func(t *testing.T) {
		e := newEcho(1, 1)
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, hit(e, http.MethodGet, "/healthz"))
		}
	})

	t.Run("Нулевой лимит отключает ограничение", func(t *testing.T) {
		e := newEcho(0, 0)
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, hit(e, http.MethodPost, "/sessions"))
		}
	})
}
