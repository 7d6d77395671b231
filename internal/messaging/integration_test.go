//go:build integration

package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fate-server/internal/messaging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestRabbitMQEventPublisher(t *testing.T) {
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx,
		"rabbitmq:3-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate rabbitmq container: %v", err)
		}
	})

	url, err := container.AmqpURL(ctx)
	require.NoError(t, err)

	conn, err := messaging.Connect(ctx, url, 5, time.Second, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	const queue = "fate_game_events_test"
	publisher, err := messaging.NewRabbitMQEventPublisher(conn, queue, zap.NewNop())
	require.NoError(t, err)

	event := messaging.GameEvent{
		EventID:   "evt-1",
		Type:      messaging.EventChoiceResolved,
		SessionID: "session-1",
		Month:     3,
		ChoiceID:  "choice_3c",
	}
	require.NoError(t, publisher.PublishGameEvent(ctx, event))

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	var delivery amqp.Delivery
	require.Eventually(t, func() bool {
		d, ok, err := ch.Get(queue, true)
		if err != nil || !ok {
			return false
		}
		delivery = d
		return true
	}, 10*time.Second, 100*time.Millisecond)

	assert.Equal(t, "application/json", delivery.ContentType)
	assert.Equal(t, "fate-server", delivery.AppId)

	var got messaging.GameEvent
	require.NoError(t, json.Unmarshal(delivery.Body, &got))
	assert.Equal(t, event.Type, got.Type)
	assert.Equal(t, event.ChoiceID, got.ChoiceID)
	assert.Equal(t, 3, got.Month)
}
