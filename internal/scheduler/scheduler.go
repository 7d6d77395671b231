package scheduler

import (
	"context"
	"fmt"
	"time"

	"fate-server/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const purgeTimeout = time.Minute

// Purger удаляет сессии, не изменявшиеся с момента olderThan.
type Purger interface {
	PurgeIdle(ctx context.Context, olderThan time.Time) (int64, error)
}

var _ Purger = (repository.SessionRepository)(nil)

// Scheduler запускает периодическую очистку неактивных сессий.
type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	idleTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewScheduler создает планировщик. Задачи регистрируются через Register.
func NewScheduler(purger Purger, idleTTL time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		purger:  purger,
		idleTTL: idleTTL,
		now:     time.Now,
		logger:  logger.Named("Scheduler"),
	}
}

// Register добавляет задачу очистки с расписанием schedule (cron или @every).
func (s *Scheduler) Register(schedule string) error {
	if s.idleTTL <= 0 {
		return fmt.Errorf("invalid idle ttl: %s", s.idleTTL)
	}
	if _, err := s.cron.AddFunc(schedule, s.PurgeNow); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop останавливает планировщик и ждет завершения запущенной задачи.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// PurgeNow выполняет очистку немедленно.
func (s *Scheduler) PurgeNow() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	cutoff := s.now().Add(-s.idleTTL)
	purged, err := s.purger.PurgeIdle(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to purge idle sessions", zap.Time("cutoff", cutoff), zap.Error(err))
		return
	}
	s.logger.Info("Idle sessions purged", zap.Int64("count", purged), zap.Time("cutoff", cutoff))
}
