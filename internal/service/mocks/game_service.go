package mocks

import (
	"context"

	"fate-server/internal/game"
	"fate-server/internal/models"
	"fate-server/internal/service"

	"github.com/stretchr/testify/mock"
)

// GameService - мок service.GameService.
type GameService struct {
	mock.Mock
}

func (m *GameService) CreateSession(ctx context.Context) (*models.Session, error) {
	args := m.Called(ctx)
	var session *models.Session
	if s := args.Get(0); s != nil {
		session = s.(*models.Session)
	}
	return session, args.Error(1)
}

func (m *GameService) GetState(ctx context.Context, sc service.SessionContext) (game.FinancialState, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(game.FinancialState), args.Error(1)
}

func (m *GameService) CurrentScenario(ctx context.Context, sc service.SessionContext) (service.ScenarioView, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(service.ScenarioView), args.Error(1)
}

func (m *GameService) GenerateScenario(ctx context.Context, sc service.SessionContext) (service.ScenarioView, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(service.ScenarioView), args.Error(1)
}

func (m *GameService) ResolveChoice(ctx context.Context, sc service.SessionContext, choiceID string) (service.ChoiceOutcome, error) {
	args := m.Called(ctx, sc, choiceID)
	return args.Get(0).(service.ChoiceOutcome), args.Error(1)
}

func (m *GameService) SetInsurance(ctx context.Context, sc service.SessionContext, enabled bool) (game.FinancialState, error) {
	args := m.Called(ctx, sc, enabled)
	return args.Get(0).(game.FinancialState), args.Error(1)
}

func (m *GameService) Reset(ctx context.Context, sc service.SessionContext) (game.FinancialState, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(game.FinancialState), args.Error(1)
}

func (m *GameService) UpdateSettings(ctx context.Context, sc service.SessionContext, aiAPIKey string) error {
	args := m.Called(ctx, sc, aiAPIKey)
	return args.Error(0)
}

func (m *GameService) Summary(ctx context.Context, sc service.SessionContext) (service.SummaryView, error) {
	args := m.Called(ctx, sc)
	return args.Get(0).(service.SummaryView), args.Error(1)
}
