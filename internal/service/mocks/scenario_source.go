package mocks

import (
	"context"

	"fate-server/internal/game"
	"fate-server/internal/provider"

	"github.com/stretchr/testify/mock"
)

// ScenarioSource - мок service.ScenarioSource.
type ScenarioSource struct {
	mock.Mock
}

func (m *ScenarioSource) Generate(ctx context.Context, state game.FinancialState, apiKey string) (game.Scenario, provider.Source) {
	args := m.Called(ctx, state, apiKey)
	return args.Get(0).(game.Scenario), args.Get(1).(provider.Source)
}
