package scheduler

import (
	"errors"
	"testing"
	"time"

	"fate-server/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPurgeNow(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Порог считается от текущего времени", func(t *testing.T) {
		repo := new(mocks.SessionRepository)
		s := NewScheduler(repo, 24*time.Hour, zap.NewNop())
		s.now = func() time.Time { return fixed }

		repo.On("PurgeIdle", mock.Anything, fixed.Add(-24*time.Hour)).Return(int64(3), nil).Once()

		s.PurgeNow()
		repo.AssertExpectations(t)
	})

	t.Run("Ошибка хранилища не паникует", func(t *testing.T) {
		repo := new(mocks.SessionRepository)
		s := NewScheduler(repo, time.Hour, zap.NewNop())

		repo.On("PurgeIdle", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), errors.New("db down")).Once()

		assert.NotPanics(t, s.PurgeNow)
	})
}

func TestRegister(t *testing.T) {
	repo := new(mocks.SessionRepository)

	assert.NoError(t, NewScheduler(repo, time.Hour, zap.NewNop()).Register("@every 1h"))
	assert.NoError(t, NewScheduler(repo, time.Hour, zap.NewNop()).Register("*/5 * * * *"))
	assert.Error(t, NewScheduler(repo, time.Hour, zap.NewNop()).Register("not a schedule"))
	assert.Error(t, NewScheduler(repo, 0, zap.NewNop()).Register("@every 1h"))
}

func TestStartStop(t *testing.T) {
	repo := new(mocks.SessionRepository)
	s := NewScheduler(repo, time.Hour, zap.NewNop())
	assert.NoError(t, s.Register("@every 1h"))

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
