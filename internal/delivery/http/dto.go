package http

import (
	"time"

	"fate-server/internal/game"
	"fate-server/internal/provider"
)

// APIError - тело ответа с ошибкой.
type APIError struct {
	Message string `json:"message"`
}

type createSessionResponse struct {
	SessionID string              `json:"sessionId"`
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	State     game.FinancialState `json:"state"`
}

type stateResponse struct {
	State     game.FinancialState `json:"state"`
	NetWorth  int64               `json:"netWorth"`
	Level     game.PlayerLevel    `json:"level"`
	Completed bool                `json:"completed"`
}

type scenarioResponse struct {
	Month    int             `json:"month"`
	Source   provider.Source `json:"source"`
	Scenario game.Scenario   `json:"scenario"`
}

type choiceRequest struct {
	ChoiceID string `json:"choiceId" validate:"required,max=64"`
}

type choiceResponse struct {
	Resolution game.Resolution     `json:"resolution"`
	State      game.FinancialState `json:"state"`
	Completed  bool                `json:"completed"`
}

type insuranceRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type settingsRequest struct {
	AIAPIKey string `json:"aiApiKey" validate:"max=512"`
}

type summaryResponse struct {
	Summary game.Summary `json:"summary"`
	Stats   game.Stats   `json:"stats"`
}

func newStateResponse(state game.FinancialState) stateResponse {
	return stateResponse{
		State:     state,
		NetWorth:  state.NetWorth(),
		Level:     game.LevelFor(state),
		Completed: state.Completed(),
	}
}
