package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fate-server/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNoopEventPublisher(t *testing.T) {
	p := NewNoopEventPublisher(zap.NewNop())
	assert.NoError(t, p.PublishGameEvent(context.Background(), GameEvent{Type: EventSessionReset}))
}

func TestRabbitMQPublisherWithoutChannel(t *testing.T) {
	p := &rabbitMQPublisher{queueName: "q", logger: zap.NewNop()}
	assert.Error(t, p.PublishGameEvent(context.Background(), GameEvent{Type: EventChoiceResolved}))
}

func TestGameEventOmitsUnrelatedFields(t *testing.T) {
	event := GameEvent{
		EventID:    "e-1",
		Type:       EventGameCompleted,
		SessionID:  "s-1",
		Month:      12,
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		NetWorth:   52000,
		Tier:       game.TierWellBalanced,
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "game_completed", raw["type"])
	assert.Equal(t, "WELL BALANCED", raw["tier"])
	assert.NotContains(t, raw, "choice_id")
	assert.NotContains(t, raw, "insight_category")
}
