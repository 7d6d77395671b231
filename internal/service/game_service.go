package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fate-server/internal/game"
	"fate-server/internal/messaging"
	"fate-server/internal/models"
	"fate-server/internal/provider"
	"fate-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionContext явно передается во все операции сервиса: какая сессия
// выполняет действие. Заполняется middleware аутентификации.
type SessionContext struct {
	SessionID uuid.UUID
}

// ScenarioSource - внешний источник сценариев (provider.ScenarioProvider).
type ScenarioSource interface {
	Generate(ctx context.Context, state game.FinancialState, apiKey string) (game.Scenario, provider.Source)
}

// ScenarioView - сценарий текущего месяца и его происхождение.
type ScenarioView struct {
	Month    int
	Source   provider.Source
	Scenario game.Scenario
}

// ChoiceOutcome - результат выбора варианта.
type ChoiceOutcome struct {
	Resolution game.Resolution
	State      game.FinancialState
	Completed  bool
}

// SummaryView - итоги игры и статистика.
type SummaryView struct {
	Summary game.Summary
	Stats   game.Stats
}

// GameService - бизнес-логика игровой сессии.
type GameService interface {
	CreateSession(ctx context.Context) (*models.Session, error)
	GetState(ctx context.Context, sc SessionContext) (game.FinancialState, error)
	CurrentScenario(ctx context.Context, sc SessionContext) (ScenarioView, error)
	GenerateScenario(ctx context.Context, sc SessionContext) (ScenarioView, error)
	ResolveChoice(ctx context.Context, sc SessionContext, choiceID string) (ChoiceOutcome, error)
	SetInsurance(ctx context.Context, sc SessionContext, enabled bool) (game.FinancialState, error)
	Reset(ctx context.Context, sc SessionContext) (game.FinancialState, error)
	UpdateSettings(ctx context.Context, sc SessionContext, aiAPIKey string) error
	Summary(ctx context.Context, sc SessionContext) (SummaryView, error)
}

type gameServiceImpl struct {
	repo          repository.SessionRepository
	catalog       *game.Catalog
	scenarios     ScenarioSource
	publisher     messaging.EventPublisher
	defaultAPIKey string
	locks         *sessionLocks
	now           func() time.Time
	logger        *zap.Logger
}

// NewGameService создает GameService. defaultAPIKey используется, если
// игрок не задал собственный ключ; пустой ключ означает запасные сценарии.
func NewGameService(
	repo repository.SessionRepository,
	catalog *game.Catalog,
	scenarios ScenarioSource,
	publisher messaging.EventPublisher,
	defaultAPIKey string,
	logger *zap.Logger,
) GameService {
	return &gameServiceImpl{
		repo:          repo,
		catalog:       catalog,
		scenarios:     scenarios,
		publisher:     publisher,
		defaultAPIKey: defaultAPIKey,
		locks:         newSessionLocks(),
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger.Named("GameService"),
	}
}

func (s *gameServiceImpl) CreateSession(ctx context.Context) (*models.Session, error) {
	session := models.NewSession(uuid.New(), s.now())
	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Error("Failed to save new session", zap.String("sessionID", session.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to create session", models.ErrInternalServer)
	}
	s.logger.Info("Session created", zap.String("sessionID", session.ID.String()))
	return session, nil
}

func (s *gameServiceImpl) GetState(ctx context.Context, sc SessionContext) (game.FinancialState, error) {
	unlock := s.locks.lock(sc.SessionID)
	defer unlock()

	session, err := s.loadOrCreate(ctx, sc)
	if err != nil {
		return game.FinancialState{}, err
	}
	return session.State, nil
}

func (s *gameServiceImpl) SetInsurance(ctx context.Context, sc SessionContext, enabled bool) (game.FinancialState, error) {
	return s.mutate(ctx, sc, "SetInsurance", func(session *models.Session) error {
		session.State = game.Apply(session.State, game.SetInsurance{Enabled: enabled})
		return nil
	})
}

func (s *gameServiceImpl) Reset(ctx context.Context, sc SessionContext) (game.FinancialState, error) {
	state, err := s.mutate(ctx, sc, "Reset", func(session *models.Session) error {
		session.State = game.Apply(session.State, game.Reset{})
		session.ActiveScenario = nil
		return nil
	})
	if err != nil {
		return game.FinancialState{}, err
	}
	s.publish(ctx, messaging.GameEvent{
		Type:      messaging.EventSessionReset,
		SessionID: sc.SessionID.String(),
		Month:     state.Month,
	})
	return state, nil
}

func (s *gameServiceImpl) UpdateSettings(ctx context.Context, sc SessionContext, aiAPIKey string) error {
	_, err := s.mutate(ctx, sc, "UpdateSettings", func(session *models.Session) error {
		session.Settings.AIAPIKey = strings.TrimSpace(aiAPIKey)
		return nil
	})
	return err
}

func (s *gameServiceImpl) Summary(ctx context.Context, sc SessionContext) (SummaryView, error) {
	state, err := s.GetState(ctx, sc)
	if err != nil {
		return SummaryView{}, err
	}
	return SummaryView{
		Summary: game.Summarize(state),
		Stats:   game.ComputeStats(state),
	}, nil
}

// mutate выполняет изменение сессии под ее блокировкой и сохраняет результат.
func (s *gameServiceImpl) mutate(ctx context.Context, sc SessionContext, op string, fn func(*models.Session) error) (game.FinancialState, error) {
	unlock := s.locks.lock(sc.SessionID)
	defer unlock()

	session, err := s.loadOrCreate(ctx, sc)
	if err != nil {
		return game.FinancialState{}, err
	}
	if err := fn(session); err != nil {
		return game.FinancialState{}, err
	}
	if err := s.save(ctx, session); err != nil {
		return game.FinancialState{}, err
	}
	s.logger.Debug("Session updated", zap.String("op", op), zap.String("sessionID", sc.SessionID.String()), zap.Int("month", session.State.Month))
	return session.State, nil
}

// loadOrCreate загружает сессию или начинает новую игру с тем же ID,
// если снимок не найден (например, истек TTL в Redis).
// Вызывать только под блокировкой сессии.
func (s *gameServiceImpl) loadOrCreate(ctx context.Context, sc SessionContext) (*models.Session, error) {
	if sc.SessionID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	session, err := s.repo.Get(ctx, sc.SessionID)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, models.ErrSessionNotFound) {
		s.logger.Info("Session snapshot not found, starting a new game", zap.String("sessionID", sc.SessionID.String()))
		return models.NewSession(sc.SessionID, s.now()), nil
	}
	s.logger.Error("Failed to load session", zap.String("sessionID", sc.SessionID.String()), zap.Error(err))
	return nil, fmt.Errorf("%w: failed to load session", models.ErrInternalServer)
}

func (s *gameServiceImpl) save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Error("Failed to save session", zap.String("sessionID", session.ID.String()), zap.Error(err))
		return fmt.Errorf("%w: failed to save session", models.ErrInternalServer)
	}
	return nil
}

// publish отправляет событие. Ошибка брокера не влияет на результат операции.
func (s *gameServiceImpl) publish(ctx context.Context, event messaging.GameEvent) {
	event.EventID = uuid.NewString()
	event.OccurredAt = s.now()
	if err := s.publisher.PublishGameEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish game event", zap.String("type", string(event.Type)), zap.String("sessionID", event.SessionID), zap.Error(err))
	}
}

func (s *gameServiceImpl) apiKeyFor(session *models.Session) string {
	if session.Settings.AIAPIKey != "" {
		return session.Settings.AIAPIKey
	}
	return s.defaultAPIKey
}
