package auth

import (
	"testing"
	"time"

	"fate-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	t.Run("Выпуск и проверка", func(t *testing.T) {
		tm, err := NewTokenManager("secret", time.Hour)
		require.NoError(t, err)

		sessionID := uuid.New()
		token, expiresAt, err := tm.Issue(sessionID)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

		got, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, sessionID, got)
	})

	t.Run("Истекший токен", func(t *testing.T) {
		tm, err := NewTokenManager("secret", time.Minute)
		require.NoError(t, err)
		tm.now = func() time.Time { return time.Now().Add(-time.Hour) }

		token, _, err := tm.Issue(uuid.New())
		require.NoError(t, err)

		tm.now = time.Now
		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("Чужой секрет", func(t *testing.T) {
		issuerTM, err := NewTokenManager("secret-a", time.Hour)
		require.NoError(t, err)
		verifierTM, err := NewTokenManager("secret-b", time.Hour)
		require.NoError(t, err)

		token, _, err := issuerTM.Issue(uuid.New())
		require.NoError(t, err)

		_, err = verifierTM.Verify(token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("Мусор вместо токена", func(t *testing.T) {
		tm, err := NewTokenManager("secret", time.Hour)
		require.NoError(t, err)

		_, err = tm.Verify("not-a-token")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("Пустой секрет", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		assert.Error(t, err)
	})
}
