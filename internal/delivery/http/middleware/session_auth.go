package middleware

import (
	"errors"
	"net/http"
	"strings"

	"fate-server/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionIDKey = "sessionID"

// TokenVerifier проверяет токен сессии и возвращает ее ID.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type errorBody struct {
	Message string `json:"message"`
}

// SessionAuth требует заголовок "Authorization: Bearer <token>" и
// кладет ID сессии в контекст Echo.
func SessionAuth(verifier TokenVerifier, log *zap.Logger) echo.MiddlewareFunc {
	log = log.Named("SessionAuth")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "Missing or malformed Authorization header"})
			}

			sessionID, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				log.Debug("Session token rejected", zap.Error(err))
				message := "Token is invalid or malformed"
				if errors.Is(err, models.ErrTokenExpired) {
					message = "Token has expired"
				}
				return c.JSON(http.StatusUnauthorized, errorBody{Message: message})
			}

			c.Set(sessionIDKey, sessionID)
			return next(c)
		}
	}
}

// SessionIDFrom возвращает ID сессии, сохраненный SessionAuth.
func SessionIDFrom(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(sessionIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
