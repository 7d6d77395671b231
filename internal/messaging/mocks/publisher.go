package mocks

import (
	"context"

	"fate-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// EventPublisher - мок messaging.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishGameEvent(ctx context.Context, event messaging.GameEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
