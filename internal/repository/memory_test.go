package repository_test

import (
	"context"
	"testing"
	"time"

	"fate-server/internal/game"
	"fate-server/internal/models"
	"fate-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Сохранение и чтение", func(t *testing.T) {
		repo := repository.NewMemorySessionRepository(zap.NewNop())
		session := models.NewSession(uuid.New(), now)
		session.State = game.Apply(session.State, game.SetInsurance{Enabled: true})

		require.NoError(t, repo.Save(ctx, session))
		loaded, err := repo.Get(ctx, session.ID)

		require.NoError(t, err)
		assert.Equal(t, session, loaded)
	})

	t.Run("Отсутствующая сессия", func(t *testing.T) {
		repo := repository.NewMemorySessionRepository(zap.NewNop())

		_, err := repo.Get(ctx, uuid.New())

		assert.ErrorIs(t, err, models.ErrSessionNotFound)
	})

	t.Run("Изменение загруженной копии не влияет на хранилище", func(t *testing.T) {
		repo := repository.NewMemorySessionRepository(zap.NewNop())
		session := models.NewSession(uuid.New(), now)
		require.NoError(t, repo.Save(ctx, session))

		loaded, err := repo.Get(ctx, session.ID)
		require.NoError(t, err)
		loaded.State.History = append(loaded.State.History, game.HistoryEntry{Title: "x"})
		session.State.Balance = 1

		again, err := repo.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Empty(t, again.State.History)
		assert.Equal(t, game.InitialBalance, again.State.Balance)
	})

	t.Run("Удаление", func(t *testing.T) {
		repo := repository.NewMemorySessionRepository(zap.NewNop())
		session := models.NewSession(uuid.New(), now)
		require.NoError(t, repo.Save(ctx, session))

		require.NoError(t, repo.Delete(ctx, session.ID))
		require.NoError(t, repo.Delete(ctx, session.ID))

		_, err := repo.Get(ctx, session.ID)
		assert.ErrorIs(t, err, models.ErrSessionNotFound)
	})

	t.Run("Очистка простаивающих", func(t *testing.T) {
		repo := repository.NewMemorySessionRepository(zap.NewNop())
		stale := models.NewSession(uuid.New(), now.Add(-2*time.Hour))
		fresh := models.NewSession(uuid.New(), now)
		require.NoError(t, repo.Save(ctx, stale))
		require.NoError(t, repo.Save(ctx, fresh))

		purged, err := repo.PurgeIdle(ctx, now.Add(-time.Hour))

		require.NoError(t, err)
		assert.Equal(t, int64(1), purged)
		_, err = repo.Get(ctx, stale.ID)
		assert.ErrorIs(t, err, models.ErrSessionNotFound)
		_, err = repo.Get(ctx, fresh.ID)
		assert.NoError(t, err)
	})
}
