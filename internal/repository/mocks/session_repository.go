package mocks

import (
	"context"
	"time"

	"fate-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// SessionRepository - мок repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	args := m.Called(ctx, id)
	var session *models.Session
	if s := args.Get(0); s != nil {
		session = s.(*models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) PurgeIdle(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
