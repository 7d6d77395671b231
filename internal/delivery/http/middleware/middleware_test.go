package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fate-server/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticVerifier struct {
	id  uuid.UUID
	err error
}

func (v staticVerifier) Verify(string) (uuid.UUID, error) { return v.id, v.err }

func serve(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/game/state", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuth(t *testing.T) {
	sessionID := uuid.New()

	newEcho := func(v TokenVerifier) *echo.Echo {
		e := echo.New()
		e.GET("/game/state", func(c echo.Context) error {
			id, ok := SessionIDFrom(c)
			if !ok {
				return c.NoContent(http.StatusTeapot)
			}
			return c.String(http.StatusOK, id.String())
		}, SessionAuth(v, zap.NewNop()))
		return e
	}

	t.Run("Валидный токен", func(t *testing.T) {
		rec := serve(newEcho(staticVerifier{id: sessionID}), "Bearer abc")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, sessionID.String(), rec.Body.String())
	})

	t.Run("Схема без учета регистра", func(t *testing.T) {
		rec := serve(newEcho(staticVerifier{id: sessionID}), "bearer abc")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Неверный формат заголовка", func(t *testing.T) {
		for _, header := range []string{"", "abc", "Basic abc", "Bearer "} {
			rec := serve(newEcho(staticVerifier{id: sessionID}), header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		}
	})

	t.Run("Истекший токен", func(t *testing.T) {
		rec := serve(newEcho(staticVerifier{err: models.ErrTokenExpired}), "Bearer abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})
}

func TestEchoZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	e.Use(EchoZapLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return c.NoContent(http.StatusNotFound) })
	e.GET("/fail", func(c echo.Context) error { return errors.New("boom") })

	for _, path := range []string{"/ok", "/missing", "/fail"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[2].ContextMap()["status"])
}
