package repository

import (
	"context"
	"sync"
	"time"

	"fate-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ SessionRepository = (*memorySessionRepository)(nil)

// memorySessionRepository хранит сессии в памяти процесса.
// Подходит для одного инстанса и тестов.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
	logger   *zap.Logger
}

// NewMemorySessionRepository создает хранилище в памяти.
func NewMemorySessionRepository(logger *zap.Logger) SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
		logger:   logger.Named("MemorySessionRepo"),
	}
}

func (r *memorySessionRepository) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *memorySessionRepository) Save(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepository) PurgeIdle(_ context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(olderThan) {
			delete(r.sessions, id)
			purged++
		}
	}
	if purged > 0 {
		r.logger.Debug("Purged idle sessions", zap.Int64("count", purged))
	}
	return purged, nil
}
