package messaging

import (
	"time"

	"fate-server/internal/game"
)

// EventType - тип доменного события игровой сессии.
type EventType string

const (
	EventChoiceResolved EventType = "choice_resolved"
	EventGameCompleted  EventType = "game_completed"
	EventSessionReset   EventType = "session_reset"
)

// GameEvent - сообщение, публикуемое после изменения состояния сессии.
// Поля, не относящиеся к типу события, остаются пустыми.
type GameEvent struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	Month      int       `json:"month"`
	OccurredAt time.Time `json:"occurred_at"`

	// choice_resolved
	ChoiceID        string               `json:"choice_id,omitempty"`
	InsightCategory game.InsightCategory `json:"insight_category,omitempty"`
	BalanceChange   int64                `json:"balance_change,omitempty"`
	RiskChange      int                  `json:"risk_change,omitempty"`

	// game_completed
	NetWorth int64            `json:"net_worth,omitempty"`
	Tier     game.OutcomeTier `json:"tier,omitempty"`
}
