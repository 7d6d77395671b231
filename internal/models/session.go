package models

import (
	"time"

	"fate-server/internal/game"

	"github.com/google/uuid"
)

// ActiveScenario - сценарий, выданный генератором для конкретного месяца.
// Действует только пока Month совпадает с месяцем состояния.
type ActiveScenario struct {
	Month    int           `json:"month"`
	Source   string        `json:"source"`
	Scenario game.Scenario `json:"scenario"`
}

// Settings - пользовательские настройки сессии.
type Settings struct {
	AIAPIKey string `json:"aiApiKey,omitempty"`
}

// Session - снимок игровой сессии в хранилище.
type Session struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	State          game.FinancialState `json:"state" db:"-"`
	ActiveScenario *ActiveScenario     `json:"activeScenario,omitempty" db:"-"`
	Settings       Settings            `json:"settings" db:"-"`
	CreatedAt      time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time           `json:"updatedAt" db:"updated_at"`
}

// NewSession создает сессию с начальным состоянием.
func NewSession(id uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     game.NewFinancialState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ScenarioFor возвращает активный сценарий, если он выдан для month.
func (s *Session) ScenarioFor(month int) (game.Scenario, bool) {
	if s.ActiveScenario == nil || s.ActiveScenario.Month != month {
		return game.Scenario{}, false
	}
	return s.ActiveScenario.Scenario, true
}

// Clone - глубокая копия сессии.
func (s *Session) Clone() *Session {
	out := *s
	out.State = s.State.Clone()
	if s.ActiveScenario != nil {
		active := *s.ActiveScenario
		active.Scenario = s.ActiveScenario.Scenario.Clone()
		out.ActiveScenario = &active
	}
	return &out
}
